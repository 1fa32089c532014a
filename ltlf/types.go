// SPDX-License-Identifier: MIT

package ltlf

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for parsing and compilation.
var (
	// ErrSyntax is returned for malformed formula text.
	ErrSyntax = errors.New("ltlf: syntax error")

	// ErrStateLimit is returned when progression discovers too many states.
	ErrStateLimit = errors.New("ltlf: state limit exceeded")

	// ErrFormulaNil is returned when a nil Formula is compiled or bound.
	ErrFormulaNil = errors.New("ltlf: formula is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("ltlf: invalid option supplied")
)

// DefaultMaxStates bounds DFA construction when no WithMaxStates is given.
const DefaultMaxStates = 4096

// Option configures Compile.
type Option func(*Options)

// Options holds Compile parameters.
type Options struct {
	// Ctx allows cancellation of long constructions.
	Ctx context.Context

	// MaxStates caps the number of progression states before minimization.
	MaxStates int

	// Minimize merges language-equivalent states (Moore refinement).
	Minimize bool

	err error
}

// DefaultOptions returns background context, DefaultMaxStates and minimization on.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		MaxStates: DefaultMaxStates,
		Minimize:  true,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxStates caps progression states; n must be positive.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxStates must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithoutMinimize keeps the raw progression automaton. Useful to exercise
// consumers against a complete but non-minimal DFA.
func WithoutMinimize() Option {
	return func(o *Options) { o.Minimize = false }
}
