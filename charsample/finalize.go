// SPDX-License-Identifier: MIT

package charsample

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/trace"
)

// finalize deduplicates the candidates, drops the empty path, pads to length
// and files each padded trace by the oracle's verdict on it.
func (g *generator) finalize(length int) (*trace.Sample, error) {
	pos, neg := g.collect(g.pos), g.collect(g.neg)
	// positives lost to the length bound are a short trace, not an empty language
	if (pos.Len() == 0 && g.clipped == 0) || neg.Len() == 0 {
		return nil, fmt.Errorf("%w: %d positive and %d negative candidates", ErrDegenerateFormula, pos.Len(), neg.Len())
	}

	outPos, outNeg := trace.NewSet(), trace.NewSet()
	place := func(set *trace.Set, label bool) error {
		for _, t := range set.Sorted() {
			if t.Len() > length {
				g.stats.Dropped++
				g.log.Debug("candidate longer than trace length dropped",
					slog.Int("steps", t.Len()), slog.Int("trace_length", length))
				continue
			}
			padded, err := trace.Pad(t, length)
			if err != nil {
				return fmt.Errorf("charsample: pad: %w", err)
			}
			verdict := g.truth(padded.Path(), 0)
			if verdict != label {
				g.stats.Relabelled++
				g.log.Debug("padding changed the label",
					slog.String("trace", padded.Key()), slog.Bool("positive", verdict))
			}
			if verdict {
				outPos.Add(padded)
			} else {
				outNeg.Add(padded)
			}
		}
		return nil
	}
	if err := place(pos, true); err != nil {
		return nil, err
	}
	if err := place(neg, false); err != nil {
		return nil, err
	}

	if outPos.Len() == 0 || outNeg.Len() == 0 {
		return nil, fmt.Errorf("%w: %d positive and %d negative traces fit %d steps",
			ErrTraceTooShort, outPos.Len(), outNeg.Len(), length)
	}
	return &trace.Sample{
		Literals:    g.ab.Names(),
		TraceLength: length,
		Strategy:    trace.StrategyCharacteristic,
		Positive:    outPos.Sorted(),
		Negative:    outNeg.Sorted(),
	}, nil
}

// collect converts paths into a structural trace set, skipping the empty path.
func (g *generator) collect(paths []alphabet.Path) *trace.Set {
	set := trace.NewSet()
	n := g.ab.Len()
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		set.Add(trace.FromPath(p, n))
	}
	return set
}
