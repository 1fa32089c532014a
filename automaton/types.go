// SPDX-License-Identifier: MIT

package automaton

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// Sentinel errors for oracle compilation.
var (
	// ErrOracleNil is returned when a nil oracle is compiled.
	ErrOracleNil = errors.New("automaton: oracle is nil")

	// ErrNoEdges is returned when the edge list is empty.
	ErrNoEdges = errors.New("automaton: empty edge list")

	// ErrStateLimit is returned when discovery exceeds the state limit.
	ErrStateLimit = errors.New("automaton: state limit exceeded")

	// ErrUnknownState is returned when Successor leaves the declared state set.
	ErrUnknownState = errors.New("automaton: successor outside declared states")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("automaton: invalid option supplied")
)

// DefaultMaxStates bounds Compile when no WithMaxStates option is given.
const DefaultMaxStates = 1 << 14

// Oracle is the automaton collaborator: a complete DFA over valuations with a
// truth evaluator for finite traces.
//
// Successor must be total and deterministic. Truth(p, i) reports whether the
// formula holds on p from offset i; it is used by suffix search and sampling,
// never by path construction.
type Oracle[S comparable] interface {
	Initial() S
	States() []S
	Accepting() []S
	Successor(s S, v alphabet.Valuation) S
	Truth(p alphabet.Path, start int) bool
}

// Option configures Compile.
type Option func(*Options)

// Options holds Compile parameters.
type Options struct {
	// Ctx allows cancellation of long compilations.
	Ctx context.Context

	// MaxStates caps the number of interned states.
	MaxStates int

	// CheckClosed verifies every successor belongs to States().
	CheckClosed bool

	err error
}

// DefaultOptions returns background context, DefaultMaxStates and closure checking on.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		MaxStates:   DefaultMaxStates,
		CheckClosed: true,
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

// WithMaxStates caps the number of states; n must be positive.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxStates must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithoutClosureCheck skips the States() membership check, for oracles whose
// state set is expensive to enumerate.
func WithoutClosureCheck() Option {
	return func(o *Options) { o.CheckClosed = false }
}
