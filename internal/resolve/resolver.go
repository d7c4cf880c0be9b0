// Package resolve selects a disjoint set of pattern occurrences from the
// matcher's overlapping candidates.
//
// The selection is a deliberately simple single-pass greedy policy, not an
// optimal weighted-interval cover: candidates are processed in descending
// value order and occurrences are accepted first-come within a candidate.
// The ordering and tie-breaks below are the documented contract; callers
// (and tests asserting exact macro selection on ambiguous inputs) rely on
// them being stable across runs.
package resolve

import (
	"sort"

	"github.com/fyrsmithlabs/circuitfold/internal/pattern"
)

// Macro is a retained pattern: its generic gate list in signature order and
// the accepted, pairwise-disjoint occurrences. Labels are assigned by the
// label synthesizer after resolution.
type Macro struct {
	Label       string
	WindowSize  int
	Signature   pattern.Signature
	Occurrences []pattern.Occurrence
}

// Count returns the number of accepted occurrences.
func (m Macro) Count() int {
	return len(m.Occurrences)
}

// FirstStart returns the earliest accepted occurrence position.
func (m Macro) FirstStart() int {
	if len(m.Occurrences) == 0 {
		return 0
	}
	return m.Occurrences[0].Start
}

// Resolve chooses disjoint occurrence ranges from cands over a sequence of
// seqLen positions.
//
// Candidates are ordered by value = windowSize × occurrenceCount descending,
// ties broken by smaller window size, then earliest first occurrence. Each
// candidate's occurrences are walked in position order and accepted when
// they do not overlap any previously accepted range. A candidate whose
// accepted occurrences fall below minRepetitions is discarded and its
// tentatively claimed ranges are released for the remaining candidates in
// the same pass.
func Resolve(cands []pattern.Candidate, minRepetitions, seqLen int) []Macro {
	if len(cands) == 0 || seqLen == 0 {
		return nil
	}

	ordered := make([]pattern.Candidate, len(cands))
	copy(ordered, cands)
	sort.SliceStable(ordered, func(i, j int) bool {
		vi, vj := ordered[i].Value(), ordered[j].Value()
		if vi != vj {
			return vi > vj
		}
		if ordered[i].WindowSize != ordered[j].WindowSize {
			return ordered[i].WindowSize < ordered[j].WindowSize
		}
		return ordered[i].FirstStart() < ordered[j].FirstStart()
	})

	claimed := make([]bool, seqLen)
	var macros []Macro

	for _, cand := range ordered {
		var accepted []pattern.Occurrence
		for _, occ := range cand.Occurrences {
			if occ.End > seqLen || !rangeFree(claimed, occ.Start, occ.End) {
				continue
			}
			markRange(claimed, occ.Start, occ.End, true)
			accepted = append(accepted, occ)
		}

		if len(accepted) < minRepetitions {
			for _, occ := range accepted {
				markRange(claimed, occ.Start, occ.End, false)
			}
			continue
		}

		macros = append(macros, Macro{
			WindowSize:  cand.WindowSize,
			Signature:   cand.Signature,
			Occurrences: accepted,
		})
	}

	return macros
}

func rangeFree(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return false
		}
	}
	return true
}

func markRange(claimed []bool, start, end int, v bool) {
	for i := start; i < end; i++ {
		claimed[i] = v
	}
}
