package hierarchy

import (
	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

// Statistics summarizes one analysis run. All fields derive from the input
// sequence and the final macro set; computed once, never mutated.
type Statistics struct {
	OriginalGateCount     int     `json:"original_gate_count"`
	HierarchicalItemCount int     `json:"hierarchical_item_count"`
	CompressionRatio      float64 `json:"compression_ratio"`
	NumMacros             int     `json:"num_macros"`
	TotalMacroInstances   int     `json:"total_macro_instances"`
	CircuitDepth          int     `json:"circuit_depth"`
	NumQubits             int     `json:"num_qubits"`
}

// ComputeStatistics derives statistics from the sequence, item list, and
// macro set. An empty sequence yields zero values throughout.
func ComputeStatistics(seq circuit.Sequence, items []Item, macros []resolve.Macro) Statistics {
	stats := Statistics{
		OriginalGateCount:     len(seq),
		HierarchicalItemCount: len(items),
		NumMacros:             len(macros),
		CircuitDepth:          seq.Depth(),
		NumQubits:             seq.NumQubits(),
	}
	for _, m := range macros {
		stats.TotalMacroInstances += m.Count()
	}
	if len(items) > 0 {
		stats.CompressionRatio = float64(len(seq)) / float64(len(items))
	}
	return stats
}
