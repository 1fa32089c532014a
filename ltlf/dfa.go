// SPDX-License-Identifier: MIT

package ltlf

import (
	"context"
	"fmt"

	"github.com/dalzilio/rudd"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/automaton"
)

// DFA is the complete deterministic automaton of a formula over an alphabet.
// States are 0..Len()-1 with 0 initial. It implements automaton.Oracle[int].
type DFA struct {
	eval      *Evaluator
	trans     [][]int // trans[state][valuation]
	accepting []bool
	labels    []string
}

// Compile builds the DFA of f over a by formula progression, then minimizes it.
// Obligations are kept canonical as decision diagrams, so construction
// terminates for every formula; WithMaxStates still bounds its cost.
func Compile(f Formula, a alphabet.Alphabet, opts ...Option) (*DFA, error) {
	if f == nil {
		return nil, ErrFormulaNil
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	ev, err := Bind(f, a)
	if err != nil {
		return nil, err
	}

	init := newBuilder(a).nnf(f, false)
	sp, err := newSpace(a, init)
	if err != nil {
		return nil, err
	}
	edges := alphabet.Edges(a)
	width := 1 << uint(a.Len())

	first := sp.encode(init)
	ids := map[int]int{sp.id(first): 0}
	states := []rudd.Node{first}
	var trans [][]int
	for head := 0; head < len(states); head++ {
		select {
		case <-cfg.Ctx.Done():
			return nil, cfg.Ctx.Err()
		default:
		}
		row := make([]int, width)
		for _, v := range edges {
			nxt, err := sp.progress(states[head], v)
			if err != nil {
				return nil, err
			}
			id, ok := ids[sp.id(nxt)]
			if !ok {
				if len(states) >= cfg.MaxStates {
					return nil, fmt.Errorf("%w: more than %d states for %s", ErrStateLimit, cfg.MaxStates, f)
				}
				id = len(states)
				ids[sp.id(nxt)] = id
				states = append(states, nxt)
			}
			row[v] = id
		}
		trans = append(trans, row)
	}

	d := &DFA{
		eval:      ev,
		trans:     trans,
		accepting: make([]bool, len(states)),
		labels:    make([]string, len(states)),
	}
	for i, s := range states {
		d.accepting[i] = sp.accepts(s)
		d.labels[i] = sp.label(s)
	}
	if cfg.Minimize {
		return d.minimize(cfg.Ctx, edges)
	}
	return d, nil
}

// CompileString parses src and compiles it over a.
func CompileString(src string, a alphabet.Alphabet, opts ...Option) (*DFA, error) {
	f, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(f, a, opts...)
}

// minimize merges language-equivalent states using the Moore classes of the
// compiled arena. Construction above explores edges in the order
// automaton.Compile does, so arena state i is state i here, and class 0 holds
// the initial state.
func (d *DFA) minimize(ctx context.Context, edges []alphabet.Valuation) (*DFA, error) {
	ar, err := automaton.Compile[int](d, edges,
		automaton.WithContext(ctx),
		automaton.WithMaxStates(d.Len()))
	if err != nil {
		return nil, err
	}
	class := ar.Classes()
	count := 0
	for _, c := range class {
		if c >= count {
			count = c + 1
		}
	}

	m := &DFA{
		eval:      d.eval,
		trans:     make([][]int, count),
		accepting: make([]bool, count),
		labels:    make([]string, count),
	}
	for i := 0; i < ar.Len(); i++ {
		c := class[i]
		if m.trans[c] != nil {
			continue
		}
		row := make([]int, len(d.trans[i]))
		for e := 0; e < ar.NumEdges(); e++ {
			row[ar.Edge(e)] = class[ar.Successor(i, e)]
		}
		m.trans[c] = row
		m.accepting[c] = ar.IsAccepting(i)
		m.labels[c] = d.labels[i]
	}
	return m, nil
}

// Len returns the number of states.
func (d *DFA) Len() int { return len(d.trans) }

// Formula returns the compiled formula.
func (d *DFA) Formula() Formula { return d.eval.f }

// Alphabet returns the alphabet the DFA reads.
func (d *DFA) Alphabet() alphabet.Alphabet { return d.eval.ab }

// Label returns the progression obligation that represents state s.
func (d *DFA) Label(s int) string { return d.labels[s] }

// Initial implements automaton.Oracle.
func (d *DFA) Initial() int { return 0 }

// States implements automaton.Oracle.
func (d *DFA) States() []int {
	out := make([]int, len(d.trans))
	for i := range out {
		out[i] = i
	}
	return out
}

// Accepting implements automaton.Oracle.
func (d *DFA) Accepting() []int {
	out := make([]int, 0)
	for i, ok := range d.accepting {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// IsAccepting reports whether s accepts.
func (d *DFA) IsAccepting(s int) bool { return d.accepting[s] }

// Successor implements automaton.Oracle.
func (d *DFA) Successor(s int, v alphabet.Valuation) int { return d.trans[s][v] }

// Truth implements automaton.Oracle with the direct finite-trace semantics.
func (d *DFA) Truth(p alphabet.Path, start int) bool { return d.eval.Truth(p, start) }

// Accepts runs p through the automaton from the initial state.
func (d *DFA) Accepts(p alphabet.Path) bool {
	s := 0
	for _, v := range p {
		s = d.trans[s][v]
	}
	return d.accepting[s]
}
