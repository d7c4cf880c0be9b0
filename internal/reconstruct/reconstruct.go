// Package reconstruct rebuilds a flat operation sequence from the
// hierarchical representation.
//
// Gate items pass through unchanged; macro instances expand their generic
// gate list through the occurrence's qubit binding. Correctness is defined
// by per-qubit projections: for every qubit, the reconstructed subsequence
// of operations touching it must equal the original's. On top of that, a
// structural adjacency policy forbids two two-qubit entangling operations on
// the same qubit pair from sitting back-to-back; the repair move reorders
// only operations on fully disjoint qubit sets, which is always
// order-safe. When no safe reorder exists the reconstruction fails rather
// than violate the policy.
package reconstruct

import (
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/hierarchy"
)

// Consistency errors.
var (
	ErrBindingTooShort     = errors.New("occurrence binding is missing a local qubit")
	ErrAdjacencyUnresolved = errors.New("no commuting reorder breaks entangling adjacency")
)

// Reconstruct expands items into a flat sequence and enforces the adjacency
// policy. Positions are reassigned 0..N-1 in the final order.
func Reconstruct(items []hierarchy.Item) (circuit.Sequence, error) {
	ops, err := expand(items)
	if err != nil {
		return nil, err
	}
	if err := breakAdjacencies(ops); err != nil {
		return nil, err
	}
	for i := range ops {
		ops[i].Position = i
	}
	return ops, nil
}

// expand flattens items in order. Macro gates are generic (local indices);
// each is rebound to the occurrence's concrete qubits.
func expand(items []hierarchy.Item) (circuit.Sequence, error) {
	var ops circuit.Sequence
	for _, it := range items {
		if it.Kind == hierarchy.KindGate {
			ops = append(ops, *it.Op)
			continue
		}
		for _, sop := range it.Macro.Signature.Ops {
			qubits := make([]int, len(sop.Locals))
			for j, local := range sop.Locals {
				if local >= len(it.Binding) {
					return nil, fmt.Errorf("%w: local %d, binding size %d (macro %q)",
						ErrBindingTooShort, local, len(it.Binding), it.Macro.Label)
				}
				qubits[j] = it.Binding[local]
			}
			var params []float64
			if len(sop.Params) > 0 {
				params = append(params, sop.Params...)
			}
			ops = append(ops, circuit.Operation{Gate: sop.Gate, Qubits: qubits, Params: params})
		}
	}
	return ops, nil
}

// breakAdjacencies scans the flat order for back-to-back entangling
// operations on the same unordered qubit pair and pulls the nearest
// commuting operation in between. Pulling op j forward is safe only when its
// qubit set is disjoint from every operation it hops over, so the move is a
// chain of commuting swaps and no per-qubit projection changes.
func breakAdjacencies(ops circuit.Sequence) error {
	for i := 0; i+1 < len(ops); i++ {
		if !samePairAdjacent(ops[i], ops[i+1]) {
			continue
		}
		j, ok := findCommuting(ops, i+1)
		if !ok {
			return fmt.Errorf("%w: %s on qubits %v at flat positions %d and %d",
				ErrAdjacencyUnresolved, ops[i].Gate, ops[i].Qubits, i, i+1)
		}
		pullForward(ops, i+1, j)
	}
	return nil
}

func samePairAdjacent(a, b circuit.Operation) bool {
	alo, ahi, ok := circuit.EntanglingPair(a)
	if !ok {
		return false
	}
	blo, bhi, ok := circuit.EntanglingPair(b)
	if !ok {
		return false
	}
	return alo == blo && ahi == bhi
}

// findCommuting returns the first index j > from such that ops[j] is
// disjoint from every operation in (from, j).
func findCommuting(ops circuit.Sequence, from int) (int, bool) {
	for j := from + 1; j < len(ops); j++ {
		disjoint := true
		for k := from; k < j; k++ {
			if !ops[j].DisjointFrom(ops[k]) {
				disjoint = false
				break
			}
		}
		if disjoint {
			return j, true
		}
	}
	return 0, false
}

// pullForward moves ops[j] to position at, shifting ops[at:j] right by one.
func pullForward(ops circuit.Sequence, at, j int) {
	moved := ops[j]
	copy(ops[at+1:j+1], ops[at:j])
	ops[at] = moved
}
