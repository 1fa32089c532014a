// SPDX-License-Identifier: MIT

package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLiterals bounds the literal count. The edge alphabet has 2^n members and
// every search in this module enumerates it, so anything larger is intractable.
const MaxLiterals = 16

// Sentinel errors for alphabet construction and lookup.
var (
	// ErrEmptyAlphabet is returned when an Alphabet would have no literals.
	ErrEmptyAlphabet = errors.New("alphabet: no literals")

	// ErrInvalidLiteral is returned for an empty literal name.
	ErrInvalidLiteral = errors.New("alphabet: invalid literal")

	// ErrDuplicateLiteral is returned when a literal name appears twice.
	ErrDuplicateLiteral = errors.New("alphabet: duplicate literal")

	// ErrTooManyLiterals is returned when more than MaxLiterals are given.
	ErrTooManyLiterals = errors.New("alphabet: too many literals")

	// ErrUnknownLiteral is returned when a name is not part of the Alphabet.
	ErrUnknownLiteral = errors.New("alphabet: unknown literal")
)

// Literal is an atomic proposition name.
type Literal string

// Alphabet is an immutable ordered literal set.
type Alphabet struct {
	lits  []Literal
	index map[Literal]int
}

// New validates names and builds an Alphabet in the given order.
func New(names ...string) (Alphabet, error) {
	if len(names) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}
	if len(names) > MaxLiterals {
		return Alphabet{}, fmt.Errorf("%w: %d > %d", ErrTooManyLiterals, len(names), MaxLiterals)
	}
	a := Alphabet{
		lits:  make([]Literal, 0, len(names)),
		index: make(map[Literal]int, len(names)),
	}
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return Alphabet{}, fmt.Errorf("%w: empty name at position %d", ErrInvalidLiteral, i)
		}
		l := Literal(n)
		if _, dup := a.index[l]; dup {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateLiteral, n)
		}
		a.index[l] = i
		a.lits = append(a.lits, l)
	}
	return a, nil
}

// MustNew is New for fixtures and examples; it panics on error.
func MustNew(names ...string) Alphabet {
	a, err := New(names...)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of literals.
func (a Alphabet) Len() int { return len(a.lits) }

// Literals returns a copy of the ordered literal list.
func (a Alphabet) Literals() []Literal {
	out := make([]Literal, len(a.lits))
	copy(out, a.lits)
	return out
}

// Names returns the literal names as plain strings, in order.
func (a Alphabet) Names() []string {
	out := make([]string, len(a.lits))
	for i, l := range a.lits {
		out[i] = string(l)
	}
	return out
}

// Index returns the position of l, or ErrUnknownLiteral.
func (a Alphabet) Index(l Literal) (int, error) {
	i, ok := a.index[l]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownLiteral, l)
	}
	return i, nil
}

// Contains reports whether l belongs to the Alphabet.
func (a Alphabet) Contains(l Literal) bool {
	_, ok := a.index[l]
	return ok
}

// String renders the alphabet as "[a b c]".
func (a Alphabet) String() string {
	return "[" + strings.Join(a.Names(), " ") + "]"
}
