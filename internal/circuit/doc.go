// Package circuit defines the operation-sequence data model consumed by the
// analysis pipeline.
//
// A Sequence is an already-linearized list of gate operations produced by an
// upstream compilation step. The package performs no compilation itself; it
// only validates structure and provides derived views (per-qubit projections,
// dependency depth) that downstream components rely on.
//
// All types are immutable by convention: no component mutates a Sequence or
// Operation after construction, so values may be shared freely across
// goroutines.
package circuit
