// SPDX-License-Identifier: MIT

package ltlf

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// kind enumerates the negation-normal-form constructors used as DFA states.
type kind uint8

const (
	kTrue kind = iota
	kFalse
	kAtom    // literal true at the current step
	kNotAtom // no current step, or literal false at it
	kStep    // a current step exists
	kNoStep  // the trace has ended
	kAnd
	kOr
	kNext
	kWeakNext
	kUntil
	kRelease
)

// term is a hash-consed NNF formula. Terms with equal keys are the same
// pointer within one builder.
type term struct {
	kind kind
	atom int
	kids []*term
	key  string
}

// builder interns terms for one compilation.
type builder struct {
	index  map[string]int
	intern map[string]*term
	tt, ff *term
	step   *term
	noStep *term
}

func newBuilder(a alphabet.Alphabet) *builder {
	b := &builder{
		index:  make(map[string]int, a.Len()),
		intern: make(map[string]*term),
	}
	for i, n := range a.Names() {
		b.index[n] = i
	}
	b.tt = b.leaf(kTrue, 0, "T")
	b.ff = b.leaf(kFalse, 0, "F")
	b.step = b.leaf(kStep, 0, "S")
	b.noStep = b.leaf(kNoStep, 0, "~S")
	return b
}

func (b *builder) leaf(k kind, atom int, key string) *term {
	if t, ok := b.intern[key]; ok {
		return t
	}
	t := &term{kind: k, atom: atom, key: key}
	b.intern[key] = t
	return t
}

func (b *builder) node(k kind, tag string, kids ...*term) *term {
	var sb strings.Builder
	sb.WriteString(tag)
	sb.WriteByte('(')
	for i, c := range kids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.key)
	}
	sb.WriteByte(')')
	key := sb.String()
	if t, ok := b.intern[key]; ok {
		return t
	}
	t := &term{kind: k, kids: kids, key: key}
	b.intern[key] = t
	return t
}

func (b *builder) atom(i int) *term { return b.leaf(kAtom, i, "p"+strconv.Itoa(i)) }

func (b *builder) notAtom(i int) *term { return b.leaf(kNotAtom, i, "!p"+strconv.Itoa(i)) }

// complement reports whether x and y are a literal and its negation.
func complement(x, y *term) bool {
	switch {
	case x.kind == kAtom && y.kind == kNotAtom, x.kind == kNotAtom && y.kind == kAtom:
		return x.atom == y.atom
	case x.kind == kStep && y.kind == kNoStep, x.kind == kNoStep && y.kind == kStep:
		return true
	}
	return false
}

// junction builds a flattened, sorted, deduplicated And (k == kAnd) or Or.
func (b *builder) junction(k kind, parts ...*term) *term {
	unit, zero := b.tt, b.ff
	tag := "&"
	if k == kOr {
		unit, zero = b.ff, b.tt
		tag = "|"
	}
	flat := make([]*term, 0, len(parts))
	queue := append([]*term(nil), parts...)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		switch {
		case t == zero:
			return zero
		case t == unit:
		case t.kind == k:
			queue = append(queue, t.kids...)
		default:
			flat = append(flat, t)
		}
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].key < flat[j].key })
	uniq := make([]*term, 0, len(flat))
	for _, t := range flat {
		if len(uniq) > 0 && uniq[len(uniq)-1] == t {
			continue
		}
		uniq = append(uniq, t)
	}
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			if complement(uniq[i], uniq[j]) {
				return zero
			}
		}
	}
	switch len(uniq) {
	case 0:
		return unit
	case 1:
		return uniq[0]
	}
	return b.node(k, tag, uniq...)
}

func (b *builder) and(parts ...*term) *term { return b.junction(kAnd, parts...) }

func (b *builder) or(parts ...*term) *term { return b.junction(kOr, parts...) }

// nnf translates f into negation normal form; neg selects ¬f.
// Atoms outside the alphabet are constantly false.
func (b *builder) nnf(f Formula, neg bool) *term {
	switch n := f.(type) {
	case True:
		return b.pick(neg, b.ff, b.tt)
	case False:
		return b.pick(neg, b.tt, b.ff)
	case Last:
		if neg {
			return b.or(b.noStep, b.node(kNext, "X", b.tt))
		}
		return b.and(b.step, b.node(kWeakNext, "WX", b.ff))
	case Atom:
		i, ok := b.index[n.Name]
		if !ok {
			return b.pick(neg, b.tt, b.ff)
		}
		if neg {
			return b.notAtom(i)
		}
		return b.atom(i)
	case Not:
		return b.nnf(n.F, !neg)
	case And:
		if neg {
			return b.or(b.nnf(n.Left, true), b.nnf(n.Right, true))
		}
		return b.and(b.nnf(n.Left, false), b.nnf(n.Right, false))
	case Or:
		if neg {
			return b.and(b.nnf(n.Left, true), b.nnf(n.Right, true))
		}
		return b.or(b.nnf(n.Left, false), b.nnf(n.Right, false))
	case Implies:
		if neg {
			return b.and(b.nnf(n.Left, false), b.nnf(n.Right, true))
		}
		return b.or(b.nnf(n.Left, true), b.nnf(n.Right, false))
	case Iff:
		l, r := b.nnf(n.Left, false), b.nnf(n.Right, false)
		nl, nr := b.nnf(n.Left, true), b.nnf(n.Right, true)
		if neg {
			return b.or(b.and(l, nr), b.and(nl, r))
		}
		return b.or(b.and(l, r), b.and(nl, nr))
	case Next:
		if neg {
			return b.weakNext(b.nnf(n.F, true))
		}
		return b.next(b.nnf(n.F, false))
	case WeakNext:
		if neg {
			return b.next(b.nnf(n.F, true))
		}
		return b.weakNext(b.nnf(n.F, false))
	case Eventually:
		if neg {
			return b.release(b.ff, b.nnf(n.F, true))
		}
		return b.until(b.tt, b.nnf(n.F, false))
	case Always:
		if neg {
			return b.until(b.tt, b.nnf(n.F, true))
		}
		return b.release(b.ff, b.nnf(n.F, false))
	case Until:
		if neg {
			return b.release(b.nnf(n.Left, true), b.nnf(n.Right, true))
		}
		return b.until(b.nnf(n.Left, false), b.nnf(n.Right, false))
	case Release:
		if neg {
			return b.until(b.nnf(n.Left, true), b.nnf(n.Right, true))
		}
		return b.release(b.nnf(n.Left, false), b.nnf(n.Right, false))
	}
	return b.ff
}

func (b *builder) pick(neg bool, ifNeg, ifPos *term) *term {
	if neg {
		return ifNeg
	}
	return ifPos
}

func (b *builder) next(f *term) *term     { return b.node(kNext, "X", f) }
func (b *builder) weakNext(f *term) *term { return b.node(kWeakNext, "WX", f) }

func (b *builder) until(l, r *term) *term {
	// x U true needs only a current step; x U false never holds
	if r == b.tt {
		return b.step
	}
	if r == b.ff {
		return b.ff
	}
	return b.node(kUntil, "U", l, r)
}

func (b *builder) release(l, r *term) *term {
	// dual of until
	if r == b.tt {
		return b.tt
	}
	if r == b.ff {
		return b.noStep
	}
	return b.node(kRelease, "R", l, r)
}
