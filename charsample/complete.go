// SPDX-License-Identifier: MIT

package charsample

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ltlsample/bfs"
)

// complete labels every extended path. Accepting ends are positive, rejecting
// sinks negative; any other end is continued to its nearest accepting state
// and the completed path is positive. Ends with no reachable acceptance follow
// the dead-end policy. Completions that cannot fit the trace length are
// dropped without searching past it.
func (g *generator) complete(ext []entry) error {
	for _, x := range ext {
		switch {
		case g.ar.IsAccepting(x.state):
			g.pos = append(g.pos, x.path)
		case g.ar.IsRejectingSink(x.state):
			g.neg = append(g.neg, x.path)
		case g.live[x.state]:
			budget := g.length - len(x.path)
			t := tail{}
			if budget > 0 {
				var err error
				if t, err = g.nearestAccepting(x.state, budget); err != nil {
					return err
				}
			}
			if !t.ok {
				g.stats.Dropped++
				g.clipped++
				g.log.Debug("completion longer than trace length dropped",
					slog.Int("state", x.state),
					slog.String("path", g.ab.FormatPath(x.path)))
				continue
			}
			g.pos = append(g.pos, x.path.Append(t.path...))
		default:
			g.stats.DeadEnds++
			switch g.opts.DeadEnd {
			case DeadEndNegative:
				g.neg = append(g.neg, x.path)
			case DeadEndSkip:
				g.log.Debug("dead-end path skipped",
					slog.Int("state", x.state),
					slog.String("path", g.ab.FormatPath(x.path)))
			default:
				return fmt.Errorf("%w: state %d after %q", ErrUnreachableAcceptance, x.state, g.ab.FormatPath(x.path))
			}
		}
	}
	return nil
}

// nearestAccepting finds the canonical shortest path of at most limit steps
// from state to an accepting state. Results are memoized per state: a found
// path answers every limit it fits, a miss answers every limit up to the one
// it was searched with.
func (g *generator) nearestAccepting(state, limit int) (tail, error) {
	if t, ok := g.tails[state]; ok {
		switch {
		case t.ok && len(t.path) <= limit:
			return t, nil
		case t.ok, limit <= t.depth:
			return tail{}, nil
		}
	}
	res, err := bfs.BFS(g.ar, state,
		bfs.WithContext(g.opts.Ctx),
		bfs.WithStopAt(g.ar.IsAccepting),
		bfs.WithMaxDepth(limit))
	if err != nil {
		return tail{}, err
	}
	t := tail{depth: limit}
	if res.Found >= 0 {
		p, err := res.PathTo(res.Found)
		if err != nil {
			return tail{}, err
		}
		t = tail{path: p, ok: true}
	}
	g.tails[state] = t
	return t, nil
}
