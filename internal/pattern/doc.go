// Package pattern finds candidate repeated windows in an operation sequence.
//
// Two windows match iff their canonical signatures are identical: same gate
// types in the same order, same wiring shape after renaming qubits to local
// indices in order of first appearance, and same parameter buckets. The
// signature is label-independent but wiring-order-dependent, so cx(0,1) and
// cx(1,0) windows do not match.
//
// The matcher reports every window group meeting the repetition threshold.
// Occurrences may overlap freely at this stage; the resolver owns
// deduplication.
package pattern
