package analyzer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansatz returns three structurally identical entangle-rotate blocks on
// shifted qubit pairs: cx(q,q+1), ry(q), ry(q+1) for q = 0, 1, 2.
func ansatz() []Operation {
	var ops []Operation
	pos := 0
	for q := 0; q < 3; q++ {
		ops = append(ops,
			Operation{Position: pos, Gate: "cx", Qubits: []int{q, q + 1}},
			Operation{Position: pos + 1, Gate: "ry", Qubits: []int{q}, Params: []float64{0.5}},
			Operation{Position: pos + 2, Gate: "ry", Qubits: []int{q + 1}, Params: []float64{0.5}},
		)
		pos += 3
	}
	return ops
}

func newService(t *testing.T, cfg Config, opts ...Option) *Service {
	t.Helper()
	svc, err := New(cfg, opts...)
	require.NoError(t, err)
	return svc
}

func TestAnalyze_DetectsShiftedAnsatzBlocks(t *testing.T) {
	svc := newService(t, DefaultConfig())

	res, err := svc.Analyze(context.Background(), ansatz())
	require.NoError(t, err)

	require.Len(t, res.Macros, 1)
	m := res.Macros[0]
	assert.Equal(t, 3, m.Count)
	assert.Equal(t, 3, m.WindowSize)
	assert.Equal(t, "RY Rotation with Entangling Layer", m.Label)
	assert.Equal(t, []PositionRange{{0, 3}, {3, 6}, {6, 9}}, m.Positions)
	require.Len(t, m.Gates, 3)
	assert.Equal(t, MacroGate{Name: "cx", Qubits: []int{0, 1}}, m.Gates[0])
	assert.Equal(t, MacroGate{Name: "ry", Qubits: []int{0}}, m.Gates[1])
	assert.Equal(t, MacroGate{Name: "ry", Qubits: []int{1}}, m.Gates[2])

	require.Len(t, res.Hierarchy, 3)
	for _, item := range res.Hierarchy {
		assert.Equal(t, "macro", item.Type)
		assert.Equal(t, 3, item.Size)
	}

	assert.Equal(t, 9, res.Statistics.OriginalGateCount)
	assert.Equal(t, 3, res.Statistics.HierarchicalItemCount)
	assert.InDelta(t, 3.0, res.Statistics.CompressionRatio, 1e-9)
	assert.Equal(t, 1, res.Statistics.NumMacros)
	assert.Equal(t, 3, res.Statistics.TotalMacroInstances)
	assert.Equal(t, 4, res.Statistics.NumQubits)

	// One graph group per occurrence.
	require.Len(t, res.Graph.Macros, 3)
	assert.Equal(t, []string{"gate_0", "gate_1", "gate_2"}, res.Graph.Macros[0].GateIDs)
}

func TestAnalyze_ReconstructionPreservesProjections(t *testing.T) {
	svc := newService(t, DefaultConfig())
	ops := ansatz()

	res, err := svc.Analyze(context.Background(), ops)
	require.NoError(t, err)
	require.Len(t, res.Reconstructed, len(ops))

	projections := func(flat []FlatOp) map[int][]FlatOp {
		out := make(map[int][]FlatOp)
		for _, op := range flat {
			for _, q := range op.Qubits {
				stripped := op
				stripped.Position = 0
				out[q] = append(out[q], stripped)
			}
		}
		return out
	}
	assert.Equal(t, projections(res.Flat), projections(res.Reconstructed))
}

func TestAnalyze_NoRepetition(t *testing.T) {
	svc := newService(t, DefaultConfig())
	ops := []Operation{
		{Position: 0, Gate: "h", Qubits: []int{0}},
		{Position: 1, Gate: "x", Qubits: []int{1}},
		{Position: 2, Gate: "cx", Qubits: []int{0, 1}},
		{Position: 3, Gate: "t", Qubits: []int{0}},
	}

	res, err := svc.Analyze(context.Background(), ops)
	require.NoError(t, err)

	assert.Empty(t, res.Macros)
	require.Len(t, res.Hierarchy, 4)
	for i, item := range res.Hierarchy {
		assert.Equal(t, "gate", item.Type)
		assert.Equal(t, ops[i].Gate, item.Name)
	}
	assert.InDelta(t, 1.0, res.Statistics.CompressionRatio, 1e-9)
	assert.Equal(t, res.Flat, res.Reconstructed)
}

func TestAnalyze_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 4
	svc := newService(t, cfg)

	ops := ansatz()
	first, err := svc.Analyze(context.Background(), ops)
	require.NoError(t, err)
	want, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		res, err := svc.Analyze(context.Background(), ops)
		require.NoError(t, err)
		got, err := json.Marshal(res)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestAnalyze_EmptySequence(t *testing.T) {
	svc := newService(t, DefaultConfig())

	res, err := svc.Analyze(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, res.Flat)
	assert.Empty(t, res.Hierarchy)
	assert.Empty(t, res.Macros)
	assert.Empty(t, res.Reconstructed)
	assert.Equal(t, Statistics{}, res.Statistics)
}

func TestAnalyze_InvalidSequence(t *testing.T) {
	svc := newService(t, DefaultConfig())
	ops := []Operation{
		{Position: 5, Gate: "h", Qubits: []int{0}},
	}

	_, err := svc.Analyze(context.Background(), ops)
	require.ErrorIs(t, err, ErrInvalidSequence)
}

func TestAnalyze_InputNotMutated(t *testing.T) {
	svc := newService(t, DefaultConfig())
	ops := ansatz()
	qubits := ops[0].Qubits

	_, err := svc.Analyze(context.Background(), ops)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, qubits)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	svc := newService(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, ansatz())
	require.ErrorIs(t, err, context.Canceled)
}

type constantStrategy struct{ name string }

func (s constantStrategy) Label(gates []MacroGate, numQubits int) string {
	return s.name
}

func TestAnalyze_CustomLabelStrategy(t *testing.T) {
	svc := newService(t, DefaultConfig(), WithLabelStrategy(constantStrategy{name: "Ansatz Layer"}))

	res, err := svc.Analyze(context.Background(), ansatz())
	require.NoError(t, err)
	require.Len(t, res.Macros, 1)
	assert.Equal(t, "Ansatz Layer", res.Macros[0].Label)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"min repetitions below two", func(c *Config) { c.MinRepetitions = 1 }, ErrMinRepetitionsTooSmall},
		{"zero window size", func(c *Config) { c.MaxWindowSize = 0 }, ErrMaxWindowSizeTooSmall},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrWorkersTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
