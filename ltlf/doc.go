// SPDX-License-Identifier: MIT

// Package ltlf is a reference automaton oracle for linear temporal logic over
// finite traces: a parser, direct trace semantics, and a compiler to a
// complete, minimal DFA over the valuations of an alphabet.
//
// What
//
//   - Parse: surface syntax with atoms, true/false/last, unary ! ~ X WX N F G
//     and binary U R & | -> <->, parsed with explicit stacks.
//   - Bind / Evaluator.Truth: finite-trace semantics. Atoms are false at
//     positions past the end and for names outside the alphabet; X is strong,
//     WX weak; U and R range over the remaining steps only.
//   - Compile: formula progression. The formula is put in negation normal
//     form, and each obligation is a BDD (github.com/dalzilio/rudd) over the
//     literals, "a step exists" and the temporal subformulas. Boolean-equal
//     obligations are the same node and the same state, so construction
//     always terminates. A state accepts iff its obligation holds on the empty
//     remainder. The arena's Moore classes (automaton.Arena.Classes) then
//     merge equivalent states.
//
// The DFA satisfies automaton.Oracle[int]; its Truth uses the direct semantics
// rather than the automaton, which lets tests cross-check the two.
//
// Complexity
//
//   - Truth: O(|f|·n²) for a trace of n steps.
//   - Compile: O(Q·2^k·C·|f|) for Q progression states over k literals with at
//     most C cubes per obligation. Q is finite and bounded by WithMaxStates.
//
// Errors
//
//   - ErrSyntax          malformed text, with the byte offset.
//   - ErrFormulaNil      nil formula.
//   - ErrStateLimit      progression exceeded MaxStates.
//   - ErrOptionViolation invalid option.
package ltlf
