// SPDX-License-Identifier: MIT

// Package automaton defines the automaton-oracle contract consumed by the
// sample generators and compiles an oracle into a dense, index-addressed Arena.
//
// What
//
//   - Oracle[S]: initial state, state set, accepting set, a total deterministic
//     successor function over valuations, and a finite-trace truth evaluator.
//   - Compile: interns every state reachable from Initial() into an integer
//     index in discovery order (index 0 is the initial state), tabulates the
//     successor of every (state, edge) pair, and classifies sinks.
//   - Arena: the compiled view. State identity inside one generation call is the
//     index; indices are never persisted or compared across calls.
//   - Classes: Moore refinement of the arena into language-equivalence
//     classes, used to recognise states no suffix can tell apart.
//
// Why
//
//	Oracle states are opaque handles with no guaranteed stable representation.
//	The arena replaces identity comparisons ("is this the root object?") with
//	integer equality and lets traversals keep parent tables as plain slices.
//
// Sinks
//
//	A state is a sink iff every edge self-loops. A rejecting sink can never
//	reach acceptance; an accepting sink accepts every continuation.
//
// Complexity (Q = reachable states, E = 2^|literals| edges)
//
//   - Compile: O(Q·E) oracle calls, O(Q·E) memory for the transition table.
//   - Classes: O(Q²·E) worst case, usually a few rounds of O(Q·E).
//   - Successor / IsAccepting / IsSink: O(1).
//
// Errors
//
//   - ErrOracleNil        if the oracle is nil.
//   - ErrNoEdges          if the edge list is empty.
//   - ErrStateLimit       if more than the configured number of states is reached.
//   - ErrUnknownState     if Successor returns a state absent from States().
//   - ErrOptionViolation  for invalid options.
package automaton
