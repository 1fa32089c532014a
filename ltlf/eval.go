// SPDX-License-Identifier: MIT

package ltlf

import "github.com/katalvlaran/ltlsample/alphabet"

// env is the evaluation context of one Truth call.
type env struct {
	path  alphabet.Path
	index map[string]int
}

func (e *env) n() int { return len(e.path) }

// atom reports whether literal name is true at step i; names outside the
// alphabet and positions past the end are false.
func (e *env) atom(name string, i int) bool {
	if i < 0 || i >= e.n() {
		return false
	}
	k, ok := e.index[name]
	if !ok {
		return false
	}
	return e.path[i].Has(k)
}

func (True) holds(*env, int) bool  { return true }
func (False) holds(*env, int) bool { return false }

func (Last) holds(e *env, i int) bool { return i == e.n()-1 }

func (a Atom) holds(e *env, i int) bool { return e.atom(a.Name, i) }

func (n Not) holds(e *env, i int) bool { return !n.F.holds(e, i) }

func (a And) holds(e *env, i int) bool { return a.Left.holds(e, i) && a.Right.holds(e, i) }

func (o Or) holds(e *env, i int) bool { return o.Left.holds(e, i) || o.Right.holds(e, i) }

func (m Implies) holds(e *env, i int) bool { return !m.Left.holds(e, i) || m.Right.holds(e, i) }

func (q Iff) holds(e *env, i int) bool { return q.Left.holds(e, i) == q.Right.holds(e, i) }

func (x Next) holds(e *env, i int) bool { return i+1 < e.n() && x.F.holds(e, i+1) }

func (w WeakNext) holds(e *env, i int) bool { return i+1 >= e.n() || w.F.holds(e, i+1) }

func (f Eventually) holds(e *env, i int) bool {
	for j := i; j < e.n(); j++ {
		if f.F.holds(e, j) {
			return true
		}
	}
	return false
}

func (g Always) holds(e *env, i int) bool {
	for j := i; j < e.n(); j++ {
		if !g.F.holds(e, j) {
			return false
		}
	}
	return true
}

func (u Until) holds(e *env, i int) bool {
	for j := i; j < e.n(); j++ {
		if u.Right.holds(e, j) {
			return true
		}
		if !u.Left.holds(e, j) {
			return false
		}
	}
	return false
}

func (r Release) holds(e *env, i int) bool {
	for j := i; j < e.n(); j++ {
		if !r.Right.holds(e, j) {
			return false
		}
		if r.Left.holds(e, j) {
			return true
		}
	}
	return true
}

// Evaluator binds a formula to an alphabet so paths can be evaluated.
type Evaluator struct {
	f     Formula
	ab    alphabet.Alphabet
	index map[string]int
}

// Bind resolves the atoms of f against a.
func Bind(f Formula, a alphabet.Alphabet) (*Evaluator, error) {
	if f == nil {
		return nil, ErrFormulaNil
	}
	idx := make(map[string]int, a.Len())
	for i, name := range a.Names() {
		idx[name] = i
	}
	return &Evaluator{f: f, ab: a, index: idx}, nil
}

// Formula returns the bound formula.
func (ev *Evaluator) Formula() Formula { return ev.f }

// Alphabet returns the bound alphabet.
func (ev *Evaluator) Alphabet() alphabet.Alphabet { return ev.ab }

// Truth reports whether the formula holds on p from offset start.
func (ev *Evaluator) Truth(p alphabet.Path, start int) bool {
	return ev.f.holds(&env{path: p, index: ev.index}, start)
}
