// SPDX-License-Identifier: MIT

package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/trace"
)

// bucket collects traces of one polarity up to a target count.
type bucket struct {
	want  int
	paths []alphabet.Path
	seen  map[string]struct{} // nil unless distinct
}

func newBucket(want int, distinct bool) *bucket {
	b := &bucket{want: want, paths: make([]alphabet.Path, 0, want)}
	if distinct {
		b.seen = make(map[string]struct{}, want)
	}
	return b
}

func (b *bucket) short() bool { return len(b.paths) < b.want }

// offer adds p if the bucket is short and, when distinct, p is new.
func (b *bucket) offer(p alphabet.Path) {
	if !b.short() {
		return
	}
	if b.seen != nil {
		k := p.Key()
		if _, dup := b.seen[k]; dup {
			return
		}
		b.seen[k] = struct{}{}
	}
	b.paths = append(b.paths, p)
}

func (b *bucket) pick(r *rand.Rand) alphabet.Path { return b.paths[r.Intn(len(b.paths))] }

// run owns the state of one Sample call.
type run struct {
	ctx      context.Context
	eval     Evaluator
	r        *rand.Rand
	width    int
	pos, neg *bucket
	stats    Stats
}

func (s *run) done() bool { return !s.pos.short() && !s.neg.short() }

func (s *run) file(p alphabet.Path) {
	if s.eval.Truth(p, 0) {
		s.pos.offer(p)
	} else {
		s.neg.offer(p)
	}
}

// Sample draws numPos satisfying and numNeg violating traces of traceLength
// steps over a.
//
// Phase one draws uniformly random traces and files each into its bucket
// until DrawBudget draws are spent. Phase two perturbs random members of each
// short bucket by flipping one literal at one step, filing the result, for at
// most PerturbBudget rounds; it needs every short bucket to hold a trace
// already. If the counts are still unmet, Sample fails with
// ErrSamplingExhausted and returns nothing.
func Sample(ctx context.Context, eval Evaluator, a alphabet.Alphabet, traceLength, numPos, numNeg int, opts ...Option) (*trace.Sample, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	switch {
	case eval == nil:
		return nil, fmt.Errorf("%w: nil evaluator", ErrInvalidRequest)
	case traceLength < 1:
		return nil, fmt.Errorf("%w: trace length %d < 1", ErrInvalidRequest, traceLength)
	case numPos < 0 || numNeg < 0:
		return nil, fmt.Errorf("%w: negative count (%d, %d)", ErrInvalidRequest, numPos, numNeg)
	case numPos == 0 && numNeg == 0:
		return nil, fmt.Errorf("%w: nothing requested", ErrInvalidRequest)
	case a.Len() == 0:
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidRequest)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r := cfg.Rand
	if r == nil {
		r = NewRand(cfg.Seed)
	}

	s := &run{
		ctx:   ctx,
		eval:  eval,
		r:     r,
		width: a.Len(),
		pos:   newBucket(numPos, cfg.Distinct),
		neg:   newBucket(numNeg, cfg.Distinct),
	}
	if cfg.Stats != nil {
		defer func() {
			s.stats.Positive, s.stats.Negative = len(s.pos.paths), len(s.neg.paths)
			*cfg.Stats = s.stats
		}()
	}

	if err := s.draw(traceLength, cfg.DrawBudget); err != nil {
		return nil, err
	}
	if !s.done() {
		cfg.Logger.Info("draw budget spent, switching to local perturbation",
			slog.Int("positive", len(s.pos.paths)),
			slog.Int("negative", len(s.neg.paths)))
		if (s.pos.short() && len(s.pos.paths) == 0) || (s.neg.short() && len(s.neg.paths) == 0) {
			return nil, fmt.Errorf("%w: a requested bucket is empty after %d draws", ErrSamplingExhausted, s.stats.Draws)
		}
		if err := s.perturbAll(cfg.PerturbBudget); err != nil {
			return nil, err
		}
	}
	if !s.done() {
		cfg.Logger.Warn("sampling exhausted",
			slog.Int("positive", len(s.pos.paths)), slog.Int("want_positive", numPos),
			slog.Int("negative", len(s.neg.paths)), slog.Int("want_negative", numNeg))
		return nil, fmt.Errorf("%w: %d/%d positive, %d/%d negative",
			ErrSamplingExhausted, len(s.pos.paths), numPos, len(s.neg.paths), numNeg)
	}

	out := &trace.Sample{
		Literals:    a.Names(),
		TraceLength: traceLength,
		Strategy:    trace.StrategyRejection,
		Positive:    make([]trace.Trace, len(s.pos.paths)),
		Negative:    make([]trace.Trace, len(s.neg.paths)),
	}
	for i, p := range s.pos.paths {
		out.Positive[i] = trace.FromPath(p, s.width)
	}
	for i, p := range s.neg.paths {
		out.Negative[i] = trace.FromPath(p, s.width)
	}
	return out, nil
}

// draw is phase one.
func (s *run) draw(length, budget int) error {
	for s.stats.Draws < budget && !s.done() {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		s.file(randomPath(s.r, length, s.width))
		s.stats.Draws++
	}
	return nil
}

// perturbAll is phase two. Seeds for a short bucket come from that bucket.
func (s *run) perturbAll(budget int) error {
	for s.stats.Perturbations < budget && !s.done() {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if s.pos.short() {
			s.file(perturb(s.r, s.pos.pick(s.r), s.width))
		}
		if s.neg.short() {
			s.file(perturb(s.r, s.neg.pick(s.r), s.width))
		}
		s.stats.Perturbations++
	}
	return nil
}
