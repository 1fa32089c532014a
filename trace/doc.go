// SPDX-License-Identifier: MIT

// Package trace holds the output contract shared by both generation strategies:
// fixed-length boolean-vector traces and the positive/negative Sample.
//
// A Trace is an ordered sequence of Steps; a Step has one bool per literal, in
// alphabet order. Traces are compared structurally through Key, never by
// identity, and Set keeps insertion-independent, canonically sorted contents so
// two runs over the same inputs render identical samples.
//
// Pad extends a trace to a target length by repeating its final step. It never
// truncates: an overlong trace is reported with ErrTooLong.
package trace
