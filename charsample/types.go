// SPDX-License-Identifier: MIT

package charsample

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/ltlsample/automaton"
)

// Sentinel errors for characteristic-sample generation.
var (
	// ErrDegenerateFormula is returned when the language is empty or universal,
	// so no positive or no negative trace exists.
	ErrDegenerateFormula = errors.New("charsample: degenerate formula")

	// ErrUnreachableAcceptance is returned under DeadEndFail when an extended
	// path lands on a state from which no accepting state is reachable.
	ErrUnreachableAcceptance = errors.New("charsample: no accepting state reachable")

	// ErrTraceTooShort is returned when every candidate of one polarity is
	// longer than the requested trace length.
	ErrTraceTooShort = errors.New("charsample: trace length too short for sample")

	// ErrInvalidTraceLength is returned for a trace length below 1.
	ErrInvalidTraceLength = errors.New("charsample: trace length must be >= 1")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("charsample: invalid option supplied")
)

// DeadEnd selects how PathCompleter treats a non-accepting, non-sink state
// with no accepting state reachable.
type DeadEnd int

const (
	// DeadEndFail aborts generation with ErrUnreachableAcceptance.
	DeadEndFail DeadEnd = iota
	// DeadEndNegative keeps the path as a negative candidate.
	DeadEndNegative
	// DeadEndSkip drops the path.
	DeadEndSkip
)

var deadEndNames = [...]string{"fail", "negative", "skip"}

func (d DeadEnd) String() string {
	if d < 0 || int(d) >= len(deadEndNames) {
		return fmt.Sprintf("DeadEnd(%d)", int(d))
	}
	return deadEndNames[d]
}

// ParseDeadEnd maps "fail", "negative" or "skip" to a policy. The empty
// string is DeadEndFail.
func ParseDeadEnd(s string) (DeadEnd, error) {
	if s == "" {
		return DeadEndFail, nil
	}
	for i, name := range deadEndNames {
		if name == s {
			return DeadEnd(i), nil
		}
	}
	return DeadEndFail, fmt.Errorf("%w: unknown dead-end policy %q", ErrOptionViolation, s)
}

// Stats reports the size of each pipeline stage of one Generate call.
type Stats struct {
	States     int // reachable oracle states
	Sinks      int
	Shortest   int // shortest-path entries, the initial state included
	Extended   int // extended paths
	Pairs      int // (shortest, extended) pairs with differing states
	Equivalent int // pairs skipped because no suffix separates them
	DeadEnds   int // extended paths with no reachable acceptance
	Dropped    int // candidates longer than the trace length
	Relabelled int // padded traces whose label changed
}

// Option configures Generate.
type Option func(*Options)

// Options holds Generate parameters.
type Options struct {
	// Ctx allows cancellation; checked once per BFS dequeue and per suffix length.
	Ctx context.Context

	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// MaxSuffixLength bounds the distinguishing-suffix search. 0 means the
	// number of reachable states.
	MaxSuffixLength int

	// DeadEnd is the policy for extended paths that cannot reach acceptance.
	DeadEnd DeadEnd

	// MaxStates caps oracle compilation.
	MaxStates int

	// Stats, if non-nil, is filled in on return.
	Stats *Stats

	err error
}

// DefaultOptions returns background context, a silent logger, the automatic
// suffix bound, DeadEndFail and automaton.DefaultMaxStates.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		DeadEnd:   DeadEndFail,
		MaxStates: automaton.DefaultMaxStates,
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

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxSuffixLength bounds the suffix search; n must be >= 0.
func WithMaxSuffixLength(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSuffixLength must be >= 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSuffixLength = n
	}
}

// WithDeadEnd selects the dead-end policy.
func WithDeadEnd(p DeadEnd) Option {
	return func(o *Options) {
		if p < DeadEndFail || p > DeadEndSkip {
			o.err = fmt.Errorf("%w: unknown dead-end policy %d", ErrOptionViolation, int(p))
			return
		}
		o.DeadEnd = p
	}
}

// WithMaxStates caps oracle compilation; n must be positive.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxStates must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithStats fills s with stage sizes when Generate returns.
func WithStats(s *Stats) Option {
	return func(o *Options) { o.Stats = s }
}
