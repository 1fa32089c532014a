// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// Arena is an oracle compiled to dense integer states.
type Arena struct {
	edges     []alphabet.Valuation
	succ      [][]int
	accepting []bool
	sink      []bool
}

// Compile interns every state of o reachable from Initial() in BFS discovery
// order, exploring edges in the given order.
func Compile[S comparable](o Oracle[S], edges []alphabet.Valuation, opts ...Option) (*Arena, error) {
	if o == nil {
		return nil, ErrOracleNil
	}
	if len(edges) == 0 {
		return nil, ErrNoEdges
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	var declared map[S]struct{}
	if cfg.CheckClosed {
		declared = make(map[S]struct{})
		for _, s := range o.States() {
			declared[s] = struct{}{}
		}
	}
	acc := make(map[S]struct{})
	for _, s := range o.Accepting() {
		acc[s] = struct{}{}
	}

	a := &Arena{edges: append([]alphabet.Valuation(nil), edges...)}
	index := make(map[S]int)
	states := make([]S, 0)
	intern := func(s S) (int, error) {
		if i, ok := index[s]; ok {
			return i, nil
		}
		if declared != nil {
			if _, ok := declared[s]; !ok {
				return -1, fmt.Errorf("%w: %v", ErrUnknownState, s)
			}
		}
		if len(states) >= cfg.MaxStates {
			return -1, fmt.Errorf("%w: more than %d states", ErrStateLimit, cfg.MaxStates)
		}
		i := len(states)
		index[s] = i
		states = append(states, s)
		_, ok := acc[s]
		a.accepting = append(a.accepting, ok)
		a.succ = append(a.succ, nil)
		return i, nil
	}

	if _, err := intern(o.Initial()); err != nil {
		return nil, err
	}
	for head := 0; head < len(states); head++ {
		select {
		case <-cfg.Ctx.Done():
			return nil, cfg.Ctx.Err()
		default:
		}
		row := make([]int, len(a.edges))
		for e, v := range a.edges {
			j, err := intern(o.Successor(states[head], v))
			if err != nil {
				return nil, err
			}
			row[e] = j
		}
		a.succ[head] = row
	}

	a.sink = detectSinks(a.succ)
	return a, nil
}

// detectSinks marks every state whose successors are all itself.
func detectSinks(succ [][]int) []bool {
	out := make([]bool, len(succ))
	for i, row := range succ {
		loop := true
		for _, j := range row {
			if j != i {
				loop = false
				break
			}
		}
		out[i] = loop
	}
	return out
}

// Len returns the number of reachable states.
func (a *Arena) Len() int { return len(a.succ) }

// Initial returns the initial state index, always 0.
func (a *Arena) Initial() int { return 0 }

// NumEdges returns the size of the edge alphabet.
func (a *Arena) NumEdges() int { return len(a.edges) }

// Edge returns the valuation behind edge index e.
func (a *Arena) Edge(e int) alphabet.Valuation { return a.edges[e] }

// Edges returns a copy of the ordered edge list.
func (a *Arena) Edges() []alphabet.Valuation {
	return append([]alphabet.Valuation(nil), a.edges...)
}

// Successor returns the state reached from i along edge index e.
func (a *Arena) Successor(i, e int) int { return a.succ[i][e] }

// Run follows p from state i. Valuations outside the edge list are not
// expected; Run reports ok=false for them.
func (a *Arena) Run(i int, p alphabet.Path) (int, bool) {
	pos := make(map[alphabet.Valuation]int, len(a.edges))
	for e, v := range a.edges {
		pos[v] = e
	}
	for _, v := range p {
		e, ok := pos[v]
		if !ok {
			return -1, false
		}
		i = a.succ[i][e]
	}
	return i, true
}

// IsAccepting reports whether state i accepts.
func (a *Arena) IsAccepting(i int) bool { return a.accepting[i] }

// IsSink reports whether every edge self-loops on i.
func (a *Arena) IsSink(i int) bool { return a.sink[i] }

// IsRejectingSink reports a non-accepting sink.
func (a *Arena) IsRejectingSink(i int) bool { return a.sink[i] && !a.accepting[i] }

// Sinks returns the sink indices in ascending order.
func (a *Arena) Sinks() []int {
	out := make([]int, 0)
	for i, s := range a.sink {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// Accepting returns the accepting indices in ascending order.
func (a *Arena) Accepting() []int {
	out := make([]int, 0)
	for i, ok := range a.accepting {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// CanAccept reports, per state, whether some accepting state is reachable
// from it. Computed as a backward fixpoint over the successor rows.
func (a *Arena) CanAccept() []bool {
	live := append([]bool(nil), a.accepting...)
	for changed := true; changed; {
		changed = false
		for i, row := range a.succ {
			if live[i] {
				continue
			}
			for _, j := range row {
				if live[j] {
					live[i], changed = true, true
					break
				}
			}
		}
	}
	return live
}

// HasRejecting reports whether any reachable state rejects.
func (a *Arena) HasRejecting() bool {
	for _, ok := range a.accepting {
		if !ok {
			return true
		}
	}
	return false
}
