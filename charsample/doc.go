// SPDX-License-Identifier: MIT

// Package charsample generates characteristic samples: small sets of positive
// and negative traces that separate a regular language, given as a complete
// DFA oracle, from every language reachable by a short edit of its automaton.
//
// What
//
//	Generate runs one pipeline over an arena compiled from the oracle:
//
//	  1. Edge enumeration (alphabet.Edges) fixes the canonical edge order.
//	  2. Sink detection happens during arena compilation.
//	  3. Shortest paths: one BFS from the initial state, parent table indexed
//	     by arena state, ties broken by edge order.
//	  4. Extension: every shortest path times every edge, plus the initial
//	     state with the empty path.
//	  5. Completion: accepting ends are positive, rejecting sinks negative,
//	     other ends are continued by BFS to the nearest accepting state.
//	  6. Distinguishing suffixes: for each (shortest, extended) pair on
//	     different states, the first suffix by length and edge order on which
//	     the oracle's truth differs labels both sides.
//	  7. Finalization: structural dedup, empty path removed, right padding by
//	     repeating the last step, and a truth check on every padded trace.
//
// Guarantees
//
//   - Soundness: every positive trace satisfies the oracle's Truth, every
//     negative one does not. Padding can change a verdict; such traces are
//     filed under the verdict the padded trace actually gets.
//   - Disjointness and uniqueness by structural keys.
//   - Every trace has exactly the requested length. Longer candidates are
//     dropped, never truncated.
//   - Determinism: equal inputs give equal, sorted outputs.
//
// Policies
//
//   - Dead ends (a non-sink state with no accepting state reachable) follow
//     WithDeadEnd: fail (default), keep as negative, or skip.
//   - The suffix search is bounded by the arena size unless
//     WithMaxSuffixLength is given. Pairs of equivalent states are skipped;
//     they arise only from non-minimal oracles.
//
// Complexity (Q states, E = 2^k edges, L suffix bound)
//
//   - Paths and completion: O(Q²·E) with memoized completion searches.
//   - Suffix search: O(Q²·E·E^L) Truth calls worst case; minimal oracles
//     separate most pairs at length 0 or 1.
//
// Errors
//
//   - ErrDegenerateFormula      empty or universal language.
//   - ErrUnreachableAcceptance  dead end under DeadEndFail.
//   - ErrTraceTooShort          no trace of one polarity fits the length.
//   - ErrInvalidTraceLength     trace length below 1.
//   - ErrOptionViolation        invalid option.
package charsample
