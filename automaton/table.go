// SPDX-License-Identifier: MIT

package automaton

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// ErrIncompleteTable is returned by Table.Validate when a (state, edge) pair
// has no transition or a transition names an undeclared state.
var ErrIncompleteTable = errors.New("automaton: incomplete transition table")

// Table is an explicit DFA over string-named states, implementing Oracle[string].
// Truth runs the table itself, so the truth evaluator and acceptance agree by
// construction. A zero Table is not usable; build one with NewTable.
type Table struct {
	initial   string
	states    []string
	accepting map[string]bool
	delta     map[string]map[alphabet.Valuation]string
	fallback  map[string]string
}

// NewTable declares the state set and the initial state.
func NewTable(initial string, states ...string) *Table {
	t := &Table{
		initial:   initial,
		accepting: make(map[string]bool),
		delta:     make(map[string]map[alphabet.Valuation]string),
		fallback:  make(map[string]string),
	}
	seen := map[string]bool{}
	for _, s := range append([]string{initial}, states...) {
		if !seen[s] {
			seen[s] = true
			t.states = append(t.states, s)
		}
	}
	return t
}

// Accept marks states as accepting.
func (t *Table) Accept(states ...string) *Table {
	for _, s := range states {
		t.accepting[s] = true
	}
	return t
}

// On adds the transition from --v--> to.
func (t *Table) On(from string, v alphabet.Valuation, to string) *Table {
	row, ok := t.delta[from]
	if !ok {
		row = make(map[alphabet.Valuation]string)
		t.delta[from] = row
	}
	row[v] = to
	return t
}

// Otherwise sets the target for every valuation of from without an explicit On.
func (t *Table) Otherwise(from, to string) *Table {
	t.fallback[from] = to
	return t
}

// Validate checks totality over edges and closure over the declared states.
func (t *Table) Validate(edges []alphabet.Valuation) error {
	declared := make(map[string]bool, len(t.states))
	for _, s := range t.states {
		declared[s] = true
	}
	for _, s := range t.states {
		for _, v := range edges {
			to, ok := t.lookup(s, v)
			if !ok {
				return fmt.Errorf("%w: no transition from %q on %d", ErrIncompleteTable, s, v)
			}
			if !declared[to] {
				return fmt.Errorf("%w: %q -> undeclared %q", ErrIncompleteTable, s, to)
			}
		}
	}
	return nil
}

func (t *Table) lookup(s string, v alphabet.Valuation) (string, bool) {
	if to, ok := t.delta[s][v]; ok {
		return to, true
	}
	to, ok := t.fallback[s]
	return to, ok
}

// Initial implements Oracle.
func (t *Table) Initial() string { return t.initial }

// States implements Oracle.
func (t *Table) States() []string { return append([]string(nil), t.states...) }

// Accepting implements Oracle; the result is sorted.
func (t *Table) Accepting() []string {
	out := make([]string, 0, len(t.accepting))
	for s := range t.accepting {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Successor implements Oracle. A missing transition stays in place; call
// Validate first when totality matters.
func (t *Table) Successor(s string, v alphabet.Valuation) string {
	if to, ok := t.lookup(s, v); ok {
		return to
	}
	return s
}

// Truth implements Oracle by running p[start:] from the initial state.
func (t *Table) Truth(p alphabet.Path, start int) bool {
	s := t.initial
	for i := start; i < len(p); i++ {
		s = t.Successor(s, p[i])
	}
	return t.accepting[s]
}
