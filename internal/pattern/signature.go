package pattern

import (
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
)

// SigOp is one operation of a canonical signature: the gate type, the local
// qubit indices it acts on, and its normalized parameters. Local indices are
// assigned in order of first appearance across the window, which makes the
// signature independent of concrete qubit labels while preserving wiring
// order.
type SigOp struct {
	Gate   string
	Locals []int
	Params []float64
}

// Signature is the canonical structural fingerprint of a window.
type Signature struct {
	Ops []SigOp
}

// FromWindow computes the canonical signature of a window and the concrete
// binding from local indices back to the window's global qubit ids.
func FromWindow(window []circuit.Operation) (Signature, []int) {
	localOf := make(map[int]int)
	var binding []int

	ops := make([]SigOp, len(window))
	for i, op := range window {
		locals := make([]int, len(op.Qubits))
		for j, q := range op.Qubits {
			local, ok := localOf[q]
			if !ok {
				local = len(binding)
				localOf[q] = local
				binding = append(binding, q)
			}
			locals[j] = local
		}
		var params []float64
		if len(op.Params) > 0 {
			params = make([]float64, len(op.Params))
			for j, p := range op.Params {
				params[j] = circuit.NormalizeParam(p)
			}
		}
		ops[i] = SigOp{Gate: op.Gate, Locals: locals, Params: params}
	}
	return Signature{Ops: ops}, binding
}

// Equal reports structural equality of two signatures.
func (s Signature) Equal(o Signature) bool {
	if len(s.Ops) != len(o.Ops) {
		return false
	}
	for i := range s.Ops {
		a, b := s.Ops[i], o.Ops[i]
		if a.Gate != b.Gate || len(a.Locals) != len(b.Locals) || len(a.Params) != len(b.Params) {
			return false
		}
		for j := range a.Locals {
			if a.Locals[j] != b.Locals[j] {
				return false
			}
		}
		for j := range a.Params {
			if a.Params[j] != b.Params[j] {
				return false
			}
		}
	}
	return true
}

// Key returns an injective encoding of the signature for use as an exact
// grouping key. Fields are joined with control separators that cannot occur
// in gate names, so distinct signatures never collide.
func (s Signature) Key() string {
	var b strings.Builder
	for _, op := range s.Ops {
		b.WriteString(op.Gate)
		b.WriteByte(0x1f)
		for j, l := range op.Locals {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(l))
		}
		b.WriteByte(0x1f)
		for j, p := range op.Params {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(p, 'f', circuit.ParamPrecision, 64))
		}
		b.WriteByte(0x1e)
	}
	return b.String()
}

// NumQubits returns the number of distinct local qubit roles in the
// signature.
func (s Signature) NumQubits() int {
	max := -1
	for _, op := range s.Ops {
		for _, l := range op.Locals {
			if l > max {
				max = l
			}
		}
	}
	return max + 1
}
