// Package hierarchy partitions a flat operation sequence into gate and
// macro-instance items and computes analysis statistics.
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

// Item kinds.
const (
	KindGate  = "gate"
	KindMacro = "macro"
)

// Internal-invariant violations. These indicate a bug in resolution, not bad
// caller input.
var (
	ErrOccurrenceOutOfRange = errors.New("macro occurrence exceeds sequence bounds")
	ErrOccurrenceCollision  = errors.New("macro occurrences share a start position")
	ErrOccurrenceOverlap    = errors.New("macro occurrence overlaps a previous item")
)

// Item is one top-level unit of the compressed representation: either a
// single gate or a macro instance spanning [Start, End).
type Item struct {
	Kind    string
	Op      *circuit.Operation // gate items only
	Macro   *resolve.Macro     // macro items only
	Binding []int              // local→global qubit map of this instance
	Start   int
	End     int
}

// Span returns the number of positions the item covers.
func (it Item) Span() int {
	return it.End - it.Start
}

// Build walks positions 0..N-1 and emits one item per gate or accepted macro
// occurrence. The returned list partitions the position range exactly once,
// in order; any gap or overlap is reported as an internal-invariant error.
func Build(seq circuit.Sequence, macros []resolve.Macro) ([]Item, error) {
	n := len(seq)

	type occRef struct {
		macro *resolve.Macro
		end   int
		bind  []int
	}
	starts := make(map[int]occRef)
	for i := range macros {
		for _, occ := range macros[i].Occurrences {
			if occ.Start < 0 || occ.End > n {
				return nil, fmt.Errorf("%w: [%d, %d) with %d operations", ErrOccurrenceOutOfRange, occ.Start, occ.End, n)
			}
			if _, dup := starts[occ.Start]; dup {
				return nil, fmt.Errorf("%w: position %d", ErrOccurrenceCollision, occ.Start)
			}
			starts[occ.Start] = occRef{macro: &macros[i], end: occ.End, bind: occ.Binding}
		}
	}

	var items []Item
	for pos := 0; pos < n; {
		if ref, ok := starts[pos]; ok {
			if ref.end <= pos {
				return nil, fmt.Errorf("%w: position %d", ErrOccurrenceOverlap, pos)
			}
			items = append(items, Item{
				Kind:    KindMacro,
				Macro:   ref.macro,
				Binding: ref.bind,
				Start:   pos,
				End:     ref.end,
			})
			pos = ref.end
			continue
		}
		op := seq[pos]
		items = append(items, Item{
			Kind:  KindGate,
			Op:    &op,
			Start: pos,
			End:   pos + 1,
		})
		pos++
	}

	// A macro start strictly inside a previous item's range would have been
	// skipped silently; detect it by checking coverage.
	covered := 0
	for _, it := range items {
		if it.Start != covered {
			return nil, fmt.Errorf("%w: item starts at %d, expected %d", ErrOccurrenceOverlap, it.Start, covered)
		}
		covered = it.End
	}
	if covered != n {
		return nil, fmt.Errorf("%w: covered %d of %d positions", ErrOccurrenceOverlap, covered, n)
	}
	for start, ref := range starts {
		if !containsStart(items, start) {
			return nil, fmt.Errorf("%w: occurrence at %d (ends %d) buried inside another item", ErrOccurrenceOverlap, start, ref.end)
		}
	}

	return items, nil
}

func containsStart(items []Item, start int) bool {
	for _, it := range items {
		if it.Kind == KindMacro && it.Start == start {
			return true
		}
	}
	return false
}
