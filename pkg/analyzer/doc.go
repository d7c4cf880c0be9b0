// Package analyzer is the public entry point of the macro-gate detection
// engine.
//
// One Analyze call maps an already-linearized operation sequence plus
// configuration to a compressed hierarchical representation: detected
// macro-gates, a gate/macro item list partitioning the sequence, derived
// statistics, an equivalence-preserving reconstructed sequence, and a graph
// description for external visualization.
//
// The engine is a pure, synchronous batch computation. A Service holds no
// mutable state across calls, performs no I/O, and is safe for concurrent
// use; independent Analyze calls may run fully in parallel. Within one call
// the matcher parallelizes its per-window-size passes, bounded by
// Config.Workers.
//
// # Usage
//
//	cfg := analyzer.DefaultConfig()
//	svc, err := analyzer.New(cfg, analyzer.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	result, err := svc.Analyze(ctx, ops)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("compressed %d gates into %d items\n",
//	    result.Statistics.OriginalGateCount,
//	    result.Statistics.HierarchicalItemCount)
//
// The compression heuristic is a documented deterministic greedy policy,
// not a globally optimal cover; identical inputs always produce identical
// results.
package analyzer
