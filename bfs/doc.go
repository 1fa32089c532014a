// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a compiled automaton,
// returning unweighted shortest-path depths, an arena-indexed parent table,
// and visit order.
//
// What
//
//   - Explore states in non-decreasing distance (edge count) from a start state.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: state → distance from start (-1 if unreached)
//   - Parent: state → (predecessor, edge) that first discovered it
//   - Supports functional hooks at three stages:
//   - OnEnqueue (when a state is discovered)
//   - OnDequeue (immediately before visiting)
//   - OnVisit   (when visiting; may abort with an error)
//   - Allows filtering of individual transitions via WithFilterEdge.
//   - Honors MaxDepth limit (d>0) or explicit "no limit" (d==0).
//   - Stops at the first discovered target with WithStopAt.
//
// Why
//
//   - Shortest access paths to every automaton state (the skeleton of a
//     characteristic sample).
//   - Nearest accepting state from an arbitrary state (path completion).
//
// Determinism
//
//	Successors are enqueued in edge-index order, and only the first discovery
//	of a state is recorded. With a canonically ordered edge list the parent
//	table, and every path rebuilt from it, is fully reproducible.
//
// Complexity (Q = |states|, E = |edges|)
//
//   - Time:   O(Q·E)   (each transition examined at most once)
//   - Memory: O(Q)     (queue, Depth, Parent, visited)
//
// Usage
//
//	res, err := bfs.BFS(arena, arena.Initial())
//	path, err := res.PathTo(state)
//
//	// nearest accepting state from q
//	res, err := bfs.BFS(arena, q, bfs.WithStopAt(arena.IsAccepting))
//	if res.Found >= 0 { path, _ := res.PathTo(res.Found) }
//
// Errors
//
//   - ErrGraphNil          if the graph is nil.
//   - ErrStartOutOfRange   if the start index is not a state.
//   - ErrOptionViolation   if invalid Option (e.g. negative MaxDepth).
//   - ErrUnreached         from PathTo / EdgesTo for undiscovered states.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
