// SPDX-License-Identifier: MIT

// Package sampler is the rejection-sampling strategy: it fills requested
// counts of positive and negative traces instead of computing a minimal
// separating set.
//
// Sample consumes only a truth evaluator and the alphabet. Uniform draws come
// first; when the draw budget runs out, local search flips single literals
// of traces already found. Both phases have hard iteration budgets, which
// are the termination guarantee for unsatisfiable or tautological formulas.
//
// Determinism
//
//	All randomness flows through one *rand.Rand, injected with WithRand or
//	built from WithSeed (seed 0 selects DefaultSeed). Equal seeds give equal
//	samples. DeriveSeed splits a run seed into per-job streams.
//
// Duplicates are allowed within a bucket unless WithDistinct is given.
package sampler
