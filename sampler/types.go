// SPDX-License-Identifier: MIT

package sampler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// Sentinel errors for rejection sampling.
var (
	// ErrSamplingExhausted is returned when both budgets run out before the
	// requested counts are met. Partial buckets are discarded.
	ErrSamplingExhausted = errors.New("sampler: sampling budgets exhausted")

	// ErrInvalidRequest is returned for bad counts, lengths or a nil evaluator.
	ErrInvalidRequest = errors.New("sampler: invalid request")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("sampler: invalid option supplied")
)

// Default iteration budgets.
const (
	DefaultDrawBudget    = 250000
	DefaultPerturbBudget = 250000
)

// Evaluator decides whether a finite trace satisfies the formula from an
// offset. *ltlf.Evaluator and every automaton.Oracle satisfy it.
type Evaluator interface {
	Truth(p alphabet.Path, start int) bool
}

// Stats reports how a Sample call spent its budgets.
type Stats struct {
	Draws         int
	Perturbations int
	Positive      int
	Negative      int
}

// Option configures Sample.
type Option func(*Options)

// Options holds Sample parameters.
type Options struct {
	// Rand is the only randomness source. Defaults to NewRand(Seed).
	Rand *rand.Rand

	// Seed feeds NewRand when Rand is nil; 0 means DefaultSeed.
	Seed int64

	// DrawBudget caps uniform draws; PerturbBudget caps perturbation rounds.
	DrawBudget    int
	PerturbBudget int

	// Distinct rejects duplicate traces within a bucket.
	Distinct bool

	// Logger receives phase diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// Stats, if non-nil, is filled in on return.
	Stats *Stats

	err error
}

// DefaultOptions returns the default budgets, seed 0 and a silent logger.
func DefaultOptions() Options {
	return Options{
		DrawBudget:    DefaultDrawBudget,
		PerturbBudget: DefaultPerturbBudget,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithRand injects the randomness source. It takes precedence over WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r == nil {
			o.err = fmt.Errorf("%w: nil *rand.Rand", ErrOptionViolation)
			return
		}
		o.Rand = r
	}
}

// WithSeed seeds the default source.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithDrawBudget sets the number of uniform draws; n must be >= 0.
func WithDrawBudget(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: DrawBudget must be >= 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.DrawBudget = n
	}
}

// WithPerturbBudget sets the number of perturbation rounds; n must be >= 0.
func WithPerturbBudget(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: PerturbBudget must be >= 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.PerturbBudget = n
	}
}

// WithDistinct requires every trace of a bucket to be unique.
func WithDistinct() Option {
	return func(o *Options) { o.Distinct = true }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStats fills s when Sample returns.
func WithStats(s *Stats) Option {
	return func(o *Options) { o.Stats = s }
}
