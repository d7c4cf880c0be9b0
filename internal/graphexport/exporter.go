// Package graphexport renders an analyzed circuit into the node/edge/group
// description consumed by the external visualization front-end.
//
// Every qubit wire gets an init and an end node; every operation gets one
// gate node. Edges chain the nodes touching each qubit in position order, so
// per qubit the edge set is exactly one linear path from init to end — the
// single-writer nature of the circuit model rules out branching and cycles.
// Each retained macro contributes one group per occurrence, listing its
// member gate node ids in order.
package graphexport

import (
	"fmt"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

// Node kinds.
const (
	NodeInit = "init"
	NodeGate = "gate"
	NodeEnd  = "end"
)

// Node is one vertex of the exported graph. Layer is the dependency layer
// used for horizontal placement: init nodes sit at -1, gate nodes at their
// per-qubit dependency depth, end nodes one past the deepest gate.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Position int    `json:"position"`
	Qubits   []int  `json:"qubits"`
	Layer    int    `json:"layer"`
}

// Edge connects two nodes along one qubit wire.
type Edge struct {
	Name  string `json:"name"`
	From  string `json:"from-node"`
	To    string `json:"to-node"`
	Qubit int    `json:"qubit"`
}

// Group marks the gate nodes belonging to one macro occurrence.
type Group struct {
	Name    string   `json:"name"`
	GateIDs []string `json:"gate_ids"`
}

// Graph is the complete export.
type Graph struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Macros []Group `json:"macros"`
}

// Export builds the graph description for seq and its retained macros.
func Export(seq circuit.Sequence, macros []resolve.Macro) Graph {
	g := Graph{}
	wires := seq.NumWires()

	last := make(map[int]string, wires)
	layers := make(map[string]int, len(seq)+2*wires)

	for q := 0; q < wires; q++ {
		id := initID(q)
		g.Nodes = append(g.Nodes, Node{
			ID:       id,
			Name:     fmt.Sprintf("q%d_init", q),
			Type:     NodeInit,
			Position: -1,
			Qubits:   []int{q},
			Layer:    -1,
		})
		last[q] = id
		layers[id] = -1
	}

	maxLayer := 0
	for _, op := range seq {
		id := gateID(op.Position)
		layer := 0
		for _, q := range op.Qubits {
			if pl := layers[last[q]]; pl+1 > layer {
				layer = pl + 1
			}
		}
		if layer > maxLayer {
			maxLayer = layer
		}
		layers[id] = layer

		qubits := make([]int, len(op.Qubits))
		copy(qubits, op.Qubits)
		g.Nodes = append(g.Nodes, Node{
			ID:       id,
			Name:     op.Gate,
			Type:     NodeGate,
			Position: op.Position,
			Qubits:   qubits,
			Layer:    layer,
		})

		// One edge per (predecessor, qubit) pair: a two-qubit gate following
		// another gate on both wires yields two labeled edges between the
		// same nodes.
		for _, q := range op.Qubits {
			g.Edges = append(g.Edges, Edge{
				Name:  fmt.Sprintf("q%d", q),
				From:  last[q],
				To:    id,
				Qubit: q,
			})
			last[q] = id
		}
	}

	endLayer := maxLayer + 1
	for q := 0; q < wires; q++ {
		id := endID(q)
		g.Nodes = append(g.Nodes, Node{
			ID:       id,
			Name:     fmt.Sprintf("q%d_end", q),
			Type:     NodeEnd,
			Position: len(seq),
			Qubits:   []int{q},
			Layer:    endLayer,
		})
		g.Edges = append(g.Edges, Edge{
			Name:  fmt.Sprintf("q%d", q),
			From:  last[q],
			To:    id,
			Qubit: q,
		})
	}

	for _, m := range macros {
		for _, occ := range m.Occurrences {
			ids := make([]string, 0, occ.End-occ.Start)
			for pos := occ.Start; pos < occ.End; pos++ {
				ids = append(ids, gateID(pos))
			}
			g.Macros = append(g.Macros, Group{Name: m.Label, GateIDs: ids})
		}
	}

	return g
}

func initID(q int) string { return fmt.Sprintf("q_start_%d", q) }
func endID(q int) string  { return fmt.Sprintf("q_end_%d", q) }
func gateID(pos int) string {
	return fmt.Sprintf("gate_%d", pos)
}
