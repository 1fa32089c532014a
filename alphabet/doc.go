// SPDX-License-Identifier: MIT

// Package alphabet defines the ordered literal set of a temporal formula,
// the valuations ("edges") over it, and the canonical edge enumeration.
//
// What
//
//   - Alphabet: an ordered, duplicate-free list of literal names. Literal order
//     fixes the layout of every boolean vector produced downstream.
//   - Valuation: a total assignment literal → bool, packed into a bitmask where
//     bit i belongs to literal i.
//   - Path: an ordered sequence of valuations.
//   - Edges: all 2^n valuations of an Alphabet in a reproducible order.
//
// Determinism
//
//	Edges starts from product order (first literal varies slowest, true before
//	false) and stable-sorts by Weight, the sum of the ordinals of the true
//	literals. A literal's ordinal is the sum of the code points of its name, so
//	single-letter literals weigh exactly their character code. The resulting
//	order is identical on every call and in every process for the same Alphabet,
//	and is the basis of every later tie-break.
//
// Complexity (n = |literals|)
//
//   - Edges: O(n·2^n) time, O(2^n) memory.
//   - Weight, Has, With: O(n) / O(1).
//
// Errors
//
//   - ErrEmptyAlphabet    if no literal is given.
//   - ErrInvalidLiteral   for an empty literal name.
//   - ErrDuplicateLiteral if a name repeats.
//   - ErrTooManyLiterals  beyond MaxLiterals.
//   - ErrUnknownLiteral   when a name is looked up that is not in the Alphabet.
package alphabet
