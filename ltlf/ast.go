// SPDX-License-Identifier: MIT

package ltlf

// Formula is an LTLf formula. String renders it fully parenthesized in the
// surface syntax accepted by Parse.
type Formula interface {
	String() string
	holds(e *env, i int) bool
}

// True holds everywhere, including past the end of a trace.
type True struct{}

// False never holds.
type False struct{}

// Last holds at the final step of a trace.
type Last struct{}

// Atom holds at position i iff i is a step of the trace and Name is true there.
type Atom struct {
	Name string
}

// Not: ¬φ
type Not struct {
	F Formula
}

// And: (φ ∧ ψ)
type And struct {
	Left, Right Formula
}

// Or: (φ ∨ ψ)
type Or struct {
	Left, Right Formula
}

// Implies: (φ → ψ)
type Implies struct {
	Left, Right Formula
}

// Iff: (φ ↔ ψ)
type Iff struct {
	Left, Right Formula
}

// Next (strong): a next step exists and φ holds there.
type Next struct {
	F Formula
}

// WeakNext: there is no next step, or φ holds there.
type WeakNext struct {
	F Formula
}

// Eventually: φ holds at some remaining step.
type Eventually struct {
	F Formula
}

// Always: φ holds at every remaining step.
type Always struct {
	F Formula
}

// Until: ψ holds at some remaining step and φ holds at every step before it.
type Until struct {
	Left, Right Formula
}

// Release: ψ holds up to and including the first step where φ holds, or
// through the end of the trace.
type Release struct {
	Left, Right Formula
}

func (True) String() string { return "true" }
func (False) String() string { return "false" }
func (Last) String() string { return "last" }
func (a Atom) String() string { return a.Name }
func (n Not) String() string { return "!" + n.F.String() }
func (a And) String() string { return "(" + a.Left.String() + " & " + a.Right.String() + ")" }
func (o Or) String() string { return "(" + o.Left.String() + " | " + o.Right.String() + ")" }
func (m Implies) String() string { return "(" + m.Left.String() + " -> " + m.Right.String() + ")" }
func (q Iff) String() string { return "(" + q.Left.String() + " <-> " + q.Right.String() + ")" }
func (x Next) String() string { return "X " + x.F.String() }
func (w WeakNext) String() string { return "WX " + w.F.String() }
func (f Eventually) String() string { return "F " + f.F.String() }
func (g Always) String() string { return "G " + g.F.String() }
func (u Until) String() string { return "(" + u.Left.String() + " U " + u.Right.String() + ")" }
func (r Release) String() string { return "(" + r.Left.String() + " R " + r.Right.String() + ")" }

// Atoms returns the distinct atom names of f in first-occurrence order.
func Atoms(f Formula) []string {
	var out []string
	seen := map[string]bool{}
	stack := []Formula{f}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := cur.(type) {
		case Atom:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case Not:
			stack = append(stack, n.F)
		case Next:
			stack = append(stack, n.F)
		case WeakNext:
			stack = append(stack, n.F)
		case Eventually:
			stack = append(stack, n.F)
		case Always:
			stack = append(stack, n.F)
		case And:
			stack = append(stack, n.Right, n.Left)
		case Or:
			stack = append(stack, n.Right, n.Left)
		case Implies:
			stack = append(stack, n.Right, n.Left)
		case Iff:
			stack = append(stack, n.Right, n.Left)
		case Until:
			stack = append(stack, n.Right, n.Left)
		case Release:
			stack = append(stack, n.Right, n.Left)
		}
	}
	return out
}
