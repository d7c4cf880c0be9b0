package pattern

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
)

// Occurrence is one concrete placement of a signature: the half-open
// position range [Start, End) and the binding from local qubit indices to
// the global qubits of this placement.
type Occurrence struct {
	Start   int
	End     int
	Binding []int
}

// Overlaps reports whether two occurrence ranges intersect.
func (o Occurrence) Overlaps(other Occurrence) bool {
	return o.Start < other.End && other.Start < o.End
}

// Candidate groups all occurrences of one signature at one window size.
// Occurrences may overlap each other and other candidates' occurrences.
type Candidate struct {
	Signature   Signature
	WindowSize  int
	Occurrences []Occurrence
}

// Value is the collapse value the resolver orders candidates by.
func (c Candidate) Value() int {
	return c.WindowSize * len(c.Occurrences)
}

// FirstStart returns the start of the earliest occurrence. Occurrences are
// recorded in position order, so this is the first element.
func (c Candidate) FirstStart() int {
	if len(c.Occurrences) == 0 {
		return 0
	}
	return c.Occurrences[0].Start
}

// Matcher slides windows of size 1..MaxWindowSize over a sequence and groups
// them by canonical signature. Cost is O(N·w) signature constructions and
// O(N·w) candidate index memory; callers with very large sequences should
// bound N·w.
type Matcher struct {
	maxWindowSize  int
	minRepetitions int
	workers        int
}

// NewMatcher creates a matcher. workers bounds the number of concurrent
// per-window-size passes; values below 1 mean sequential.
func NewMatcher(maxWindowSize, minRepetitions, workers int) *Matcher {
	if workers < 1 {
		workers = 1
	}
	return &Matcher{
		maxWindowSize:  maxWindowSize,
		minRepetitions: minRepetitions,
		workers:        workers,
	}
}

// Candidates returns every signature group meeting the repetition threshold,
// ordered by window size then first occurrence position. The per-window-size
// passes are independent and run concurrently; results are merged
// deterministically before return.
func (m *Matcher) Candidates(ctx context.Context, seq circuit.Sequence) ([]Candidate, error) {
	n := len(seq)
	if n == 0 || m.maxWindowSize < 1 {
		return nil, nil
	}

	maxK := m.maxWindowSize
	if maxK > n {
		maxK = n
	}

	perSize := make([][]Candidate, maxK)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for k := 1; k <= maxK; k++ {
		k := k
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			perSize[k-1] = m.windowPass(seq, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Candidate
	for _, cands := range perSize {
		out = append(out, cands...)
	}
	return out, nil
}

// windowPass computes all candidates for one window size. Grouping preserves
// first-seen order so the merged result is deterministic.
func (m *Matcher) windowPass(seq circuit.Sequence, k int) []Candidate {
	n := len(seq)
	groups := make(map[string]int)
	var ordered []Candidate

	for start := 0; start+k <= n; start++ {
		sig, binding := FromWindow(seq[start : start+k])
		occ := Occurrence{Start: start, End: start + k, Binding: binding}

		key := sig.Key()
		idx, ok := groups[key]
		if !ok {
			idx = len(ordered)
			groups[key] = idx
			ordered = append(ordered, Candidate{Signature: sig, WindowSize: k})
		}
		ordered[idx].Occurrences = append(ordered[idx].Occurrences, occ)
	}

	var out []Candidate
	for _, c := range ordered {
		if len(c.Occurrences) >= m.minRepetitions {
			out = append(out, c)
		}
	}
	return out
}
