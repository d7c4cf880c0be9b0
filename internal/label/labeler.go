// Package label assigns deterministic human-readable names to retained
// macros.
//
// Naming is a pluggable Strategy so the rule vocabulary can evolve without
// touching the hierarchy builder or its tests. The default RuleTable maps a
// macro's structural shape through an ordered rule list; unmatched shapes
// fall back to a signature-derived generic label. Apply guarantees label
// uniqueness across a macro set by suffixing duplicates.
package label

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/pattern"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

// Shape is the structural view of a macro a Strategy names: the generic gate
// list in signature order and the number of distinct qubit roles.
type Shape struct {
	Gates     []pattern.SigOp
	NumQubits int
}

// Strategy maps a macro shape to a base label. Implementations must be
// deterministic and side-effect free.
type Strategy interface {
	Label(Shape) string
}

// Apply assigns a unique label to every macro using strat. When several
// macros share a base label, suffix letters are appended in order of the
// macros' earliest occurrence position.
func Apply(macros []resolve.Macro, strat Strategy) {
	byBase := make(map[string][]int)
	for i := range macros {
		base := strat.Label(Shape{
			Gates:     macros[i].Signature.Ops,
			NumQubits: macros[i].Signature.NumQubits(),
		})
		macros[i].Label = base
		byBase[base] = append(byBase[base], i)
	}

	for _, group := range byBase {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(a, b int) bool {
			return macros[group[a]].FirstStart() < macros[group[b]].FirstStart()
		})
		for n, idx := range group {
			macros[idx].Label = macros[idx].Label + " " + suffix(n)
		}
	}
}

// suffix produces A, B, ..., Z, AA, AB, ... for duplicate base labels.
func suffix(n int) string {
	s := ""
	for {
		s = string(rune('A'+n%26)) + s
		n = n/26 - 1
		if n < 0 {
			return s
		}
	}
}

// RuleTable is the default Strategy: an ordered rule list recovering the
// vocabulary of the reference labeler, restricted to deterministic shape
// rules.
type RuleTable struct{}

// NewRuleTable returns the default rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{}
}

// Label walks the rules in order and returns the first match.
func (t *RuleTable) Label(s Shape) string {
	if len(s.Gates) == 0 {
		return "Macro Block"
	}

	counts := make(map[string]int)
	for _, g := range s.Gates {
		counts[g.Gate]++
	}

	if name, ok := uniformEntangling(s, counts); ok {
		return name
	}
	if name, ok := uniformHadamard(s, counts); ok {
		return name
	}
	if name, ok := rotationRule(s, counts); ok {
		return name
	}
	if name, ok := phaseLadder(s, counts); ok {
		return name
	}
	if name, ok := entanglingMix(s, counts); ok {
		return name
	}
	if allSingleQubit(s) {
		return "Single Qubit Layer"
	}
	return generic(s)
}

// uniformEntangling names pure chains of a single two-qubit gate type.
func uniformEntangling(s Shape, counts map[string]int) (string, bool) {
	if len(counts) != 1 {
		return "", false
	}
	gate := s.Gates[0].Gate
	if !circuit.IsEntangling(gate) {
		return "", false
	}
	switch gate {
	case "swap":
		return "Swap Network", true
	case "cx":
		if s.NumQubits == 2 {
			return "CNOT Pair", true
		}
		return "CNOT Ladder", true
	case "cz":
		if len(s.Gates) == 1 {
			return "CZ Gate", true
		}
		return "CZ Ladder", true
	default:
		if s.NumQubits == 2 {
			return "Entangling Pair", true
		}
		return "Entangling Block", true
	}
}

func uniformHadamard(s Shape, counts map[string]int) (string, bool) {
	if len(counts) != 1 || s.Gates[0].Gate != "h" {
		return "", false
	}
	if len(s.Gates) == s.NumQubits {
		return "Hadamard Layer", true
	}
	return "Hadamard Ladder", true
}

// rotationRule names rotation-only and rotation-plus-entangling shapes.
func rotationRule(s Shape, counts map[string]int) (string, bool) {
	families := make(map[string]struct{})
	rotations, entangling, other := 0, 0, 0
	family := ""
	for _, g := range s.Gates {
		switch {
		case circuit.RotationFamily(g.Gate) != "":
			family = circuit.RotationFamily(g.Gate)
			families[family] = struct{}{}
			rotations++
		case circuit.IsEntangling(g.Gate):
			entangling++
		default:
			other++
		}
	}
	if rotations == 0 || other > 0 {
		return "", false
	}

	mixed := len(families) > 1
	switch {
	case entangling == 0 && mixed:
		return "Mixed Rotation Block", true
	case entangling == 0 && rotations == s.NumQubits:
		return family + " Rotation Layer", true
	case entangling == 0:
		return family + " Rotation Block", true
	case mixed:
		return "Rotation-Entangling Block", true
	default:
		return family + " Rotation with Entangling Layer", true
	}
}

// phaseLadder names Hadamard plus controlled-phase mixes.
func phaseLadder(s Shape, counts map[string]int) (string, bool) {
	if counts["h"] == 0 {
		return "", false
	}
	phase := 0
	for gate, n := range counts {
		if gate == "h" {
			continue
		}
		if !circuit.IsPhase(gate) {
			return "", false
		}
		phase += n
	}
	if phase == 0 {
		return "", false
	}
	return "Phase Ladder", true
}

func entanglingMix(s Shape, counts map[string]int) (string, bool) {
	hadamard, entangling := 0, 0
	for gate, n := range counts {
		switch {
		case gate == "h":
			hadamard += n
		case circuit.IsEntangling(gate):
			entangling += n
		default:
			return "", false
		}
	}
	if entangling == 0 {
		return "", false
	}
	if hadamard > 0 {
		return "Hadamard-Entangling Block", true
	}
	if s.NumQubits == 2 {
		return "Entangling Pair", true
	}
	return "Entangling Block", true
}

func allSingleQubit(s Shape) bool {
	for _, g := range s.Gates {
		if len(g.Locals) != 1 {
			return false
		}
	}
	return true
}

// generic derives a stable fallback label from the signature itself.
func generic(s Shape) string {
	h := fnv.New32a()
	h.Write([]byte(pattern.Signature{Ops: s.Gates}.Key()))
	return fmt.Sprintf("Macro %dg%dq-%06x", len(s.Gates), s.NumQubits, h.Sum32()&0xffffff)
}
