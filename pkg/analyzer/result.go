package analyzer

import (
	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/graphexport"
	"github.com/fyrsmithlabs/circuitfold/internal/hierarchy"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

// Operation is one gate application handed in by the upstream compilation
// collaborator. Positions must run 0..N-1; qubit order is significant for
// asymmetric gates.
type Operation struct {
	Position int       `json:"position"`
	Gate     string    `json:"gate"`
	Qubits   []int     `json:"qubits"`
	Params   []float64 `json:"params,omitempty"`
}

// FlatOp is one operation of the flat result views.
type FlatOp struct {
	Position int    `json:"position"`
	Gate     string `json:"gate"`
	Qubits   []int  `json:"qubits"`
}

// MacroGate is one generic operation of a macro body. Qubits are local
// role indices, not concrete wires.
type MacroGate struct {
	Name   string `json:"name"`
	Qubits []int  `json:"qubits"`
}

// PositionRange is a half-open occurrence range.
type PositionRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MacroView describes one retained macro.
type MacroView struct {
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	WindowSize int             `json:"window_size"`
	Gates      []MacroGate     `json:"gates"`
	Positions  []PositionRange `json:"positions"`
}

// HierarchicalItem is one top-level unit of the compressed view: a gate
// (type "gate" with name, qubits, position) or a macro instance (type
// "macro" with label, size, gates, start/end positions).
type HierarchicalItem struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	Qubits        []int       `json:"qubits,omitempty"`
	Position      *int        `json:"position,omitempty"`
	Label         string      `json:"label,omitempty"`
	Size          int         `json:"size,omitempty"`
	Gates         []MacroGate `json:"gates,omitempty"`
	StartPosition *int        `json:"start_position,omitempty"`
	EndPosition   *int        `json:"end_position,omitempty"`
}

// Statistics re-exports the derived scalar view.
type Statistics = hierarchy.Statistics

// Graph re-exports the visualization export.
type Graph = graphexport.Graph

// Result bundles the independent result views of one analysis call. All
// views are plain nested values, cycle-free and directly serializable.
type Result struct {
	Flat          []FlatOp           `json:"flat"`
	Hierarchy     []HierarchicalItem `json:"hierarchy"`
	Macros        []MacroView        `json:"macros"`
	Statistics    Statistics         `json:"statistics"`
	Reconstructed []FlatOp           `json:"reconstructed"`
	Graph         Graph              `json:"graph"`
}

func buildResult(seq circuit.Sequence, items []hierarchy.Item, macros []resolve.Macro,
	stats Statistics, rebuilt circuit.Sequence, graph Graph) *Result {
	res := &Result{
		Flat:          flatView(seq),
		Hierarchy:     make([]HierarchicalItem, 0, len(items)),
		Macros:        make([]MacroView, 0, len(macros)),
		Statistics:    stats,
		Reconstructed: flatView(rebuilt),
		Graph:         graph,
	}

	for _, it := range items {
		if it.Kind == hierarchy.KindGate {
			pos := it.Start
			res.Hierarchy = append(res.Hierarchy, HierarchicalItem{
				Type:     "gate",
				Name:     it.Op.Gate,
				Qubits:   append([]int(nil), it.Op.Qubits...),
				Position: &pos,
			})
			continue
		}
		start, end := it.Start, it.End
		res.Hierarchy = append(res.Hierarchy, HierarchicalItem{
			Type:          "macro",
			Label:         it.Macro.Label,
			Size:          it.Span(),
			Gates:         macroGates(it.Macro),
			StartPosition: &start,
			EndPosition:   &end,
		})
	}

	for _, m := range macros {
		view := MacroView{
			Label:      m.Label,
			Count:      m.Count(),
			WindowSize: m.WindowSize,
			Gates:      macroGates(&m),
			Positions:  make([]PositionRange, 0, len(m.Occurrences)),
		}
		for _, occ := range m.Occurrences {
			view.Positions = append(view.Positions, PositionRange{Start: occ.Start, End: occ.End})
		}
		res.Macros = append(res.Macros, view)
	}

	return res
}

func flatView(seq circuit.Sequence) []FlatOp {
	out := make([]FlatOp, len(seq))
	for i, op := range seq {
		out[i] = FlatOp{
			Position: op.Position,
			Gate:     op.Gate,
			Qubits:   append([]int(nil), op.Qubits...),
		}
	}
	return out
}

func macroGates(m *resolve.Macro) []MacroGate {
	gates := make([]MacroGate, len(m.Signature.Ops))
	for i, sop := range m.Signature.Ops {
		gates[i] = MacroGate{
			Name:   sop.Gate,
			Qubits: append([]int(nil), sop.Locals...),
		}
	}
	return gates
}
