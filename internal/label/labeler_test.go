package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/circuitfold/internal/pattern"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

func shape(numQubits int, gates ...pattern.SigOp) Shape {
	return Shape{Gates: gates, NumQubits: numQubits}
}

func g(gate string, locals ...int) pattern.SigOp {
	return pattern.SigOp{Gate: gate, Locals: locals}
}

func TestRuleTable_Label(t *testing.T) {
	table := NewRuleTable()

	tests := []struct {
		name  string
		shape Shape
		want  string
	}{
		{"cnot ladder", shape(3, g("cx", 0, 1), g("cx", 1, 2)), "CNOT Ladder"},
		{"cnot pair", shape(2, g("cx", 0, 1), g("cx", 0, 1)), "CNOT Pair"},
		{"swap network", shape(3, g("swap", 0, 1), g("swap", 1, 2)), "Swap Network"},
		{"cz ladder", shape(3, g("cz", 0, 1), g("cz", 1, 2)), "CZ Ladder"},
		{"cz gate", shape(2, g("cz", 0, 1)), "CZ Gate"},
		{"hadamard layer", shape(3, g("h", 0), g("h", 1), g("h", 2)), "Hadamard Layer"},
		{"hadamard ladder", shape(1, g("h", 0), g("h", 0)), "Hadamard Ladder"},
		{"ry rotation layer", shape(2, g("ry", 0), g("ry", 1)), "RY Rotation Layer"},
		{"rz rotation block", shape(1, g("rz", 0), g("rz", 0)), "RZ Rotation Block"},
		{"mixed rotation block", shape(2, g("rx", 0), g("rz", 1)), "Mixed Rotation Block"},
		{"rotation with entangling", shape(2, g("cx", 0, 1), g("ry", 0), g("ry", 1)), "RY Rotation with Entangling Layer"},
		{"phase ladder", shape(2, g("h", 0), g("cp", 0, 1)), "Phase Ladder"},
		{"hadamard entangling", shape(2, g("h", 0), g("cx", 0, 1)), "Hadamard-Entangling Block"},
		{"entangling mix", shape(3, g("cx", 0, 1), g("cz", 1, 2)), "Entangling Block"},
		{"single qubit layer", shape(2, g("x", 0), g("z", 1)), "Single Qubit Layer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Label(tt.shape))
		})
	}
}

func TestRuleTable_GenericFallbackIsStable(t *testing.T) {
	table := NewRuleTable()
	s := shape(3, g("x", 0), g("cx", 0, 1), g("ccx", 0, 1, 2))

	first := table.Label(s)
	second := table.Label(s)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "Macro 3g3q-"), "got %q", first)
}

func TestApply_SuffixesDuplicateBaseLabels(t *testing.T) {
	// Two distinct cx-ladder macros share a base label; the one occurring
	// earlier in the circuit must take suffix A.
	later := resolve.Macro{
		WindowSize: 2,
		Signature:  pattern.Signature{Ops: []pattern.SigOp{g("cx", 0, 1), g("cx", 1, 2)}},
		Occurrences: []pattern.Occurrence{
			{Start: 10, End: 12, Binding: []int{0, 1, 2}},
			{Start: 14, End: 16, Binding: []int{0, 1, 2}},
		},
	}
	earlier := resolve.Macro{
		WindowSize: 2,
		Signature:  pattern.Signature{Ops: []pattern.SigOp{g("cx", 0, 1), g("cx", 2, 0)}},
		Occurrences: []pattern.Occurrence{
			{Start: 0, End: 2, Binding: []int{0, 1, 2}},
			{Start: 4, End: 6, Binding: []int{0, 1, 2}},
		},
	}

	macros := []resolve.Macro{later, earlier}
	Apply(macros, NewRuleTable())

	assert.Equal(t, "CNOT Ladder B", macros[0].Label)
	assert.Equal(t, "CNOT Ladder A", macros[1].Label)
}

func TestApply_UniqueBaseLabelsKeptBare(t *testing.T) {
	macros := []resolve.Macro{
		{
			WindowSize:  2,
			Signature:   pattern.Signature{Ops: []pattern.SigOp{g("h", 0), g("h", 1)}},
			Occurrences: []pattern.Occurrence{{Start: 0, End: 2}},
		},
	}
	Apply(macros, NewRuleTable())
	assert.Equal(t, "Hadamard Layer", macros[0].Label)
}

func TestSuffix(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"}
	for n, want := range cases {
		assert.Equal(t, want, suffix(n), "suffix(%d)", n)
	}
}
