// SPDX-License-Identifier: MIT

package charsample

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/automaton"
	"github.com/katalvlaran/ltlsample/trace"
)

// entry is a path together with the arena state it reaches.
type entry struct {
	state int
	path  alphabet.Path
}

// generator owns the mutable state of one Generate call.
type generator struct {
	ar    *automaton.Arena
	ab    alphabet.Alphabet
	opts  Options
	log   *slog.Logger
	truth func(p alphabet.Path, start int) bool
	stats Stats

	pos, neg []alphabet.Path

	length  int    // requested trace length
	live    []bool // states that can still reach acceptance
	clipped int    // positive completions dropped for length

	// nearest accepting continuation per state, filled lazily
	tails map[int]tail
}

// tail is a memoized completion. A miss records the depth it was searched to.
type tail struct {
	path  alphabet.Path
	ok    bool
	depth int
}

// Generate computes the characteristic sample of the oracle's language over a:
// positive and negative traces of exactly traceLength steps that separate the
// language from its one-edit neighbours.
//
// The oracle is compiled to an arena first; an empty or universal language
// fails with ErrDegenerateFormula before any search runs.
func Generate[S comparable](o automaton.Oracle[S], a alphabet.Alphabet, traceLength int, opts ...Option) (*trace.Sample, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if traceLength < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTraceLength, traceLength)
	}

	ar, err := automaton.Compile[S](o, alphabet.Edges(a),
		automaton.WithContext(cfg.Ctx),
		automaton.WithMaxStates(cfg.MaxStates))
	if err != nil {
		return nil, fmt.Errorf("charsample: compile oracle: %w", err)
	}

	g := &generator{
		ar:     ar,
		ab:     a,
		opts:   cfg,
		log:    cfg.Logger,
		truth:  o.Truth,
		length: traceLength,
		live:   ar.CanAccept(),
		tails:  make(map[int]tail),
	}
	g.stats.States = ar.Len()
	g.stats.Sinks = len(ar.Sinks())
	if cfg.Stats != nil {
		defer func() { *cfg.Stats = g.stats }()
	}

	if len(ar.Accepting()) == 0 {
		return nil, fmt.Errorf("%w: empty language (no reachable accepting state)", ErrDegenerateFormula)
	}
	if !ar.HasRejecting() {
		return nil, fmt.Errorf("%w: universal language (every reachable state accepts)", ErrDegenerateFormula)
	}

	short, err := g.shortestPaths(ar.Initial())
	if err != nil {
		return nil, err
	}
	ext := g.extend(short)
	if err := g.complete(ext); err != nil {
		return nil, err
	}
	if err := g.distinguish(short, ext); err != nil {
		return nil, err
	}

	s, err := g.finalize(traceLength)
	if err != nil {
		return nil, err
	}
	g.log.Debug("characteristic sample generated",
		slog.Int("states", g.stats.States),
		slog.Int("pairs", g.stats.Pairs),
		slog.Int("positive", len(s.Positive)),
		slog.Int("negative", len(s.Negative)))
	return s, nil
}

// label files a as positive and b as negative when aPositive, else the reverse.
func (g *generator) label(aPositive bool, a, b alphabet.Path) {
	if aPositive {
		g.pos = append(g.pos, a)
		g.neg = append(g.neg, b)
		return
	}
	g.pos = append(g.pos, b)
	g.neg = append(g.neg, a)
}
