// SPDX-License-Identifier: MIT

package charsample

import (
	"log/slog"
	"strconv"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// distinguish separates every (shortest, extended) pair that ends on
// different states. An acceptance mismatch is separated by the empty suffix;
// otherwise suffixes are tried by increasing length in edge order and the
// first one on which the oracle's truth differs labels both paths.
//
// Pairs whose states are language-equivalent, or which stay unseparated
// within the suffix bound, are skipped.
func (g *generator) distinguish(short, ext []entry) error {
	classes := g.ar.Classes()
	bound := g.opts.MaxSuffixLength
	if bound == 0 {
		bound = g.ar.Len()
	}

	seen := make(map[string]struct{}, len(short)*len(ext))
	for _, s := range short {
		for _, x := range ext {
			if s.state == x.state {
				continue
			}
			key := strconv.Itoa(s.state) + "/" + x.path.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			g.stats.Pairs++

			sAcc, xAcc := g.ar.IsAccepting(s.state), g.ar.IsAccepting(x.state)
			if sAcc != xAcc {
				g.label(sAcc, s.path, x.path)
				continue
			}
			if classes[s.state] == classes[x.state] {
				g.stats.Equivalent++
				g.log.Debug("equivalent states, pair skipped",
					slog.Int("short", s.state), slog.Int("extended", x.state))
				continue
			}
			found, err := g.searchSuffix(s.path, x.path, bound)
			if err != nil {
				return err
			}
			if !found {
				g.stats.Equivalent++
				g.log.Debug("no distinguishing suffix within bound",
					slog.Int("short", s.state),
					slog.Int("extended", x.state),
					slog.Int("bound", bound))
			}
		}
	}
	return nil
}

// searchSuffix enumerates the Cartesian powers of the edge list for lengths
// 1..bound, first position slowest, and labels the first separating pair.
func (g *generator) searchSuffix(sp, xp alphabet.Path, bound int) (bool, error) {
	n := g.ar.NumEdges()
	for l := 1; l <= bound; l++ {
		// cancellation check (once per suffix length)
		select {
		case <-g.opts.Ctx.Done():
			return false, g.opts.Ctx.Err()
		default:
		}

		idx := make([]int, l)
		suffix := make(alphabet.Path, l)
		for {
			for i, e := range idx {
				suffix[i] = g.ar.Edge(e)
			}
			a, b := sp.Append(suffix...), xp.Append(suffix...)
			ta, tb := g.truth(a, 0), g.truth(b, 0)
			if ta != tb {
				g.label(ta, a, b)
				return true, nil
			}
			// advance the odometer, last position fastest
			i := l - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < n {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				break
			}
		}
	}
	return false, nil
}
