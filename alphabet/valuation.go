// SPDX-License-Identifier: MIT

package alphabet

import (
	"strconv"
	"strings"
)

// Valuation assigns a truth value to every literal of an Alphabet.
// Bit i holds literal i; bits at or above Alphabet.Len() are always zero.
type Valuation uint32

// Has reports whether literal i is true.
func (v Valuation) Has(i int) bool { return v&(1<<uint(i)) != 0 }

// With returns v with literal i set to b.
func (v Valuation) With(i int, b bool) Valuation {
	if b {
		return v | 1<<uint(i)
	}
	return v &^ (1 << uint(i))
}

// Flip returns v with literal i negated.
func (v Valuation) Flip(i int) Valuation { return v ^ 1<<uint(i) }

// Bools expands v into an ordered vector of n booleans.
func (v Valuation) Bools(n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = v.Has(i)
	}
	return out
}

// FromBools packs an ordered boolean vector into a Valuation.
func FromBools(b []bool) Valuation {
	var v Valuation
	for i, x := range b {
		if x {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Valuation builds the valuation in which exactly the named literals are true.
func (a Alphabet) Valuation(trueLits ...Literal) (Valuation, error) {
	var v Valuation
	for _, l := range trueLits {
		i, err := a.Index(l)
		if err != nil {
			return 0, err
		}
		v = v.With(i, true)
	}
	return v, nil
}

// Format renders v as "{a,c}" using the literal names of a.
func (a Alphabet) Format(v Valuation) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i, l := range a.lits {
		if !v.Has(i) {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		b.WriteString(string(l))
		first = false
	}
	b.WriteByte('}')
	return b.String()
}

// Path is an ordered sequence of valuations. Two paths are equal iff their
// valuation sequences are equal.
type Path []Valuation

// Append returns a fresh path p+q; neither input is aliased.
func (p Path) Append(q ...Valuation) Path {
	out := make(Path, 0, len(p)+len(q))
	out = append(out, p...)
	return append(out, q...)
}

// Key is a canonical, structural hash key for p.
func (p Path) Key() string {
	var b strings.Builder
	b.Grow(len(p) * 3)
	for i, v := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 36))
	}
	return b.String()
}

// Equal reports element-wise equality.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// FormatPath renders p as "{a};{};{b,c}".
func (a Alphabet) FormatPath(p Path) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = a.Format(v)
	}
	return strings.Join(parts, ";")
}
