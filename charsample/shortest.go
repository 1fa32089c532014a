// SPDX-License-Identifier: MIT

package charsample

import (
	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/bfs"
)

// shortestPaths returns, in BFS visit order, the canonical shortest path from
// start to every reachable state. start itself comes first with the empty path.
func (g *generator) shortestPaths(start int) ([]entry, error) {
	res, err := bfs.BFS(g.ar, start, bfs.WithContext(g.opts.Ctx))
	if err != nil {
		return nil, err
	}
	out := make([]entry, 0, len(res.Order))
	for _, s := range res.Order {
		p, err := res.PathTo(s)
		if err != nil {
			return nil, err
		}
		out = append(out, entry{state: s, path: p})
	}
	g.stats.Shortest = len(out)
	return out, nil
}

// extend crosses every shortest path with every edge. The initial state with
// the empty path leads the list.
func (g *generator) extend(short []entry) []entry {
	n := g.ar.NumEdges()
	out := make([]entry, 0, 1+len(short)*n)
	out = append(out, entry{state: g.ar.Initial(), path: alphabet.Path{}})
	for _, sp := range short {
		for e := 0; e < n; e++ {
			out = append(out, entry{
				state: g.ar.Successor(sp.state, e),
				path:  sp.path.Append(g.ar.Edge(e)),
			})
		}
	}
	g.stats.Extended = len(out)
	return out
}
