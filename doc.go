// SPDX-License-Identifier: MIT

// Package ltlsample generates labelled example traces for LTL formulas over
// finite traces (LTLf).
//
// A sample is a set of positive traces that satisfy a formula and negative
// traces that violate it, all of one fixed length over a fixed literal set.
// Two strategies are provided:
//
//	charsample/  characteristic samples: compile the formula to an automaton,
//	              reach every state by a shortest path, extend by every edge,
//	              complete each path to a verdict and add a distinguishing
//	              suffix for every pair of states
//	sampler/     rejection sampling: uniform random traces, then local
//	              perturbation when a polarity is hard to hit
//
// Supporting packages:
//
//	alphabet/    literals, valuations (edges) and the canonical edge order
//	trace/       boolean step traces, padding, trace sets and Sample
//	ltlf/        LTLf parser, direct semantics and formula-to-DFA compilation
//	automaton/   Oracle interface, interned state arena, Moore classes
//	bfs/         breadth-first search over arena states
//	config/      YAML batch files with validation
//	runner/      parallel batch execution and JSON output
//	metrics/     Prometheus counters for runs
//	logging/     slog logger construction
//
// The ltlsample command (cmd/ltlsample) exposes generate, check and edges.
//
// Quick example:
//
//	ab := alphabet.MustNew("a", "b", "c")
//	dfa, _ := ltlf.CompileString("a U b", ab)
//	s, err := charsample.Generate[int](dfa, ab, 4)
//	// s.Positive and s.Negative hold traces of length 4
package ltlsample
