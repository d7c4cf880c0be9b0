package circuit

import (
	"fmt"
	"math"
)

// ParamPrecision is the number of decimal places gate parameters are
// normalized to. Matching more precisely than this is fragile against
// floating-point noise introduced upstream.
const ParamPrecision = 6

// Operation is a single gate application at a fixed position in the
// linearized sequence. Qubit order is significant for asymmetric gates
// (control before target for cx, cp, and friends).
type Operation struct {
	Position int       `json:"position"`
	Gate     string    `json:"gate"`
	Qubits   []int     `json:"qubits"`
	Params   []float64 `json:"params,omitempty"`
}

// Touches reports whether the operation acts on qubit q.
func (o Operation) Touches(q int) bool {
	for _, oq := range o.Qubits {
		if oq == q {
			return true
		}
	}
	return false
}

// DisjointFrom reports whether the operation shares no qubits with other.
// Operations on fully disjoint qubit sets commute and may be reordered
// without changing any per-qubit projection.
func (o Operation) DisjointFrom(other Operation) bool {
	for _, q := range o.Qubits {
		if other.Touches(q) {
			return false
		}
	}
	return true
}

// Sequence is an ordered list of operations with positions 0..N-1.
type Sequence []Operation

// Validate checks the sequence invariants: positions match indices (which
// implies no gaps or repeats), every operation names at least one qubit,
// qubit ids are non-negative, and no operation lists a qubit twice.
func (s Sequence) Validate() error {
	for i, op := range s {
		if op.Position != i {
			return fmt.Errorf("operation %d: %w (got %d)", i, ErrPositionMismatch, op.Position)
		}
		if op.Gate == "" {
			return fmt.Errorf("operation %d: %w", i, ErrEmptyGate)
		}
		if len(op.Qubits) == 0 {
			return fmt.Errorf("operation %d: %w", i, ErrNoQubits)
		}
		seen := make(map[int]struct{}, len(op.Qubits))
		for _, q := range op.Qubits {
			if q < 0 {
				return fmt.Errorf("operation %d: %w (got %d)", i, ErrNegativeQubit, q)
			}
			if _, dup := seen[q]; dup {
				return fmt.Errorf("operation %d: %w (qubit %d)", i, ErrDuplicateQubit, q)
			}
			seen[q] = struct{}{}
		}
	}
	return nil
}

// QubitSet returns the distinct qubit ids the sequence touches.
func (s Sequence) QubitSet() map[int]struct{} {
	set := make(map[int]struct{})
	for _, op := range s {
		for _, q := range op.Qubits {
			set[q] = struct{}{}
		}
	}
	return set
}

// NumQubits returns the size of the qubit id set.
func (s Sequence) NumQubits() int {
	return len(s.QubitSet())
}

// NumWires returns the number of qubit wires, counting from wire 0 through
// the highest qubit id the sequence touches. Unused low wires still exist as
// wires; the graph exporter draws them as empty chains.
func (s Sequence) NumWires() int {
	wires := 0
	for _, op := range s {
		for _, q := range op.Qubits {
			if q+1 > wires {
				wires = q + 1
			}
		}
	}
	return wires
}

// Projection returns the subsequence of operations touching qubit q, in
// order. Reconstruction correctness is defined in terms of this view: a
// rewrite is equivalence-preserving iff it leaves every projection intact.
func (s Sequence) Projection(q int) []Operation {
	var out []Operation
	for _, op := range s {
		if op.Touches(q) {
			out = append(out, op)
		}
	}
	return out
}

// Depth returns the length of the longest per-qubit-respecting dependency
// chain: each operation depends on the most recent prior operation touching
// any of its qubits. An empty sequence has depth 0.
func (s Sequence) Depth() int {
	lastLayer := make(map[int]int)
	depth := 0
	for _, op := range s {
		layer := 1
		for _, q := range op.Qubits {
			if l, ok := lastLayer[q]; ok && l+1 > layer {
				layer = l + 1
			}
		}
		for _, q := range op.Qubits {
			lastLayer[q] = layer
		}
		if layer > depth {
			depth = layer
		}
	}
	return depth
}

// NormalizeParam rounds a gate parameter to ParamPrecision decimal places.
func NormalizeParam(p float64) float64 {
	const scale = 1e6
	return math.Round(p*scale) / scale
}
