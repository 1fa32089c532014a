// SPDX-License-Identifier: MIT

package ltlf

import (
	"errors"
	"strings"

	"github.com/dalzilio/rudd"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// errBDD is returned when the decision diagram cannot allocate a node.
var errBDD = errors.New("ltlf: decision diagram operation failed")

// space holds progression obligations as reduced ordered BDDs.
//
// Variables are the literals (0..n-1), "a step exists" (n) and one variable
// per temporal subterm (X, WX, U, R) of the initial obligation. Progression
// only ever mentions those subterms, and two obligations with the same
// Boolean structure over them are the same node, so the state set is finite.
type space struct {
	bdd   *rudd.BDD
	names []string
	step  int
	leaf  []*term       // variable -> temporal subterm; nil up to step
	vars  map[*term]int // temporal subterm -> variable
	memo  map[leafStep]rudd.Node
	empty rudd.Node // the empty remainder as a full assignment
}

type leafStep struct {
	v   int
	val alphabet.Valuation
}

func newSpace(a alphabet.Alphabet, init *term) (*space, error) {
	n := a.Len()
	sp := &space{
		names: a.Names(),
		step:  n,
		leaf:  make([]*term, n+1),
		vars:  make(map[*term]int),
		memo:  make(map[leafStep]rudd.Node),
	}
	sp.collect(init)

	bdd, err := rudd.New(len(sp.leaf))
	if err != nil {
		return nil, err
	}
	sp.bdd = bdd

	// without a step, literals, X and U are false while WX and R hold
	parts := make([]rudd.Node, len(sp.leaf))
	for v, t := range sp.leaf {
		if t != nil && (t.kind == kWeakNext || t.kind == kRelease) {
			parts[v] = bdd.Ithvar(v)
		} else {
			parts[v] = bdd.NIthvar(v)
		}
	}
	sp.empty = bdd.And(parts...)
	if sp.empty == nil {
		return nil, errBDD
	}
	return sp, nil
}

// collect assigns a variable to every temporal subterm of t.
func (sp *space) collect(t *term) {
	switch t.kind {
	case kAnd, kOr:
		for _, c := range t.kids {
			sp.collect(c)
		}
	case kNext, kWeakNext, kUntil, kRelease:
		if _, ok := sp.vars[t]; ok {
			return
		}
		sp.vars[t] = len(sp.leaf)
		sp.leaf = append(sp.leaf, t)
		for _, c := range t.kids {
			sp.collect(c)
		}
	}
}

// id is the node address; equal obligations share it.
func (sp *space) id(n rudd.Node) int { return *n }

func (sp *space) isFalse(n rudd.Node) bool { return *n == *sp.bdd.False() }

// encode translates a term into its node.
func (sp *space) encode(t *term) rudd.Node {
	switch t.kind {
	case kTrue:
		return sp.bdd.True()
	case kFalse:
		return sp.bdd.False()
	case kAtom:
		return sp.bdd.Ithvar(t.atom)
	case kNotAtom:
		return sp.bdd.NIthvar(t.atom)
	case kStep:
		return sp.bdd.Ithvar(sp.step)
	case kNoStep:
		return sp.bdd.NIthvar(sp.step)
	case kAnd, kOr:
		parts := make([]rudd.Node, len(t.kids))
		for i, c := range t.kids {
			parts[i] = sp.encode(c)
		}
		if t.kind == kAnd {
			return sp.bdd.And(parts...)
		}
		return sp.bdd.Or(parts...)
	}
	return sp.bdd.Ithvar(sp.vars[t])
}

// progressTerm is the obligation left by t after reading val at a step.
func (sp *space) progressTerm(t *term, val alphabet.Valuation) rudd.Node {
	switch t.kind {
	case kTrue, kStep:
		return sp.bdd.True()
	case kFalse, kNoStep:
		return sp.bdd.False()
	case kAtom:
		return sp.constant(val.Has(t.atom))
	case kNotAtom:
		return sp.constant(!val.Has(t.atom))
	case kAnd, kOr:
		parts := make([]rudd.Node, len(t.kids))
		for i, c := range t.kids {
			parts[i] = sp.progressTerm(c, val)
		}
		if t.kind == kAnd {
			return sp.bdd.And(parts...)
		}
		return sp.bdd.Or(parts...)
	}
	return sp.progressVar(sp.vars[t], val)
}

func (sp *space) constant(b bool) rudd.Node {
	if b {
		return sp.bdd.True()
	}
	return sp.bdd.False()
}

// progressVar progresses the positive literal of variable v.
func (sp *space) progressVar(v int, val alphabet.Valuation) rudd.Node {
	switch {
	case v < sp.step:
		return sp.constant(val.Has(v))
	case v == sp.step:
		return sp.bdd.True()
	}
	key := leafStep{v: v, val: val}
	if n, ok := sp.memo[key]; ok {
		return n
	}
	t := sp.leaf[v]
	next, ended, self := sp.bdd.Ithvar(sp.step), sp.bdd.NIthvar(sp.step), sp.bdd.Ithvar(v)
	var n rudd.Node
	switch t.kind {
	case kNext:
		n = sp.bdd.And(next, sp.encode(t.kids[0]))
	case kWeakNext:
		n = sp.bdd.Or(ended, sp.encode(t.kids[0]))
	case kUntil:
		l, r := t.kids[0], t.kids[1]
		n = sp.bdd.Or(sp.progressTerm(r, val), sp.bdd.And(sp.progressTerm(l, val), next, self))
	case kRelease:
		l, r := t.kids[0], t.kids[1]
		n = sp.bdd.And(sp.progressTerm(r, val), sp.bdd.Or(sp.progressTerm(l, val), ended, self))
	}
	sp.memo[key] = n
	return n
}

// cubes lists the satisfying paths of n; entries are 0, 1 or -1 (free).
func (sp *space) cubes(n rudd.Node) [][]int {
	var out [][]int
	sp.bdd.Allsat(func(varset []int) error {
		out = append(out, append([]int(nil), varset...))
		return nil
	}, n)
	return out
}

// progress rewrites the obligation s after reading val. Each satisfying cube
// of s is progressed literal by literal; a negative literal progresses to
// the complement of its variable's progression.
func (sp *space) progress(s rudd.Node, val alphabet.Valuation) (rudd.Node, error) {
	out := sp.bdd.False()
	for _, c := range sp.cubes(s) {
		conj := sp.bdd.True()
		for v, bit := range c {
			switch bit {
			case 0:
				conj = sp.bdd.And(conj, sp.bdd.Not(sp.progressVar(v, val)))
			case 1:
				conj = sp.bdd.And(conj, sp.progressVar(v, val))
			default:
				continue
			}
			if conj == nil || sp.isFalse(conj) {
				break
			}
		}
		if conj == nil {
			return nil, errBDD
		}
		out = sp.bdd.Or(out, conj)
		if out == nil {
			return nil, errBDD
		}
	}
	return out, nil
}

// accepts reports whether s holds on the empty remainder.
func (sp *space) accepts(s rudd.Node) bool {
	return !sp.isFalse(sp.bdd.And(s, sp.empty))
}

// label renders s as a disjunction of cubes.
func (sp *space) label(s rudd.Node) string {
	cs := sp.cubes(s)
	if len(cs) == 0 {
		return "F"
	}
	var b strings.Builder
	for i, c := range cs {
		if i > 0 {
			b.WriteString(" | ")
		}
		empty := true
		for v, bit := range c {
			if bit < 0 {
				continue
			}
			if !empty {
				b.WriteString(" & ")
			}
			empty = false
			if bit == 0 {
				b.WriteByte('!')
			}
			b.WriteString(sp.varName(v))
		}
		if empty {
			b.WriteByte('T')
		}
	}
	return b.String()
}

func (sp *space) varName(v int) string {
	switch {
	case v < sp.step:
		return sp.names[v]
	case v == sp.step:
		return "step"
	}
	return sp.leaf[v].key
}
