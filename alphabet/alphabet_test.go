// SPDX-License-Identifier: MIT
package alphabet_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// TestNew_Errors verifies every rejected literal set maps to its sentinel.
func TestNew_Errors(t *testing.T) {
	_, err := alphabet.New()
	assert.ErrorIs(t, err, alphabet.ErrEmptyAlphabet)

	_, err = alphabet.New("a", " ")
	assert.ErrorIs(t, err, alphabet.ErrInvalidLiteral)

	_, err = alphabet.New("a", "b", "a")
	assert.ErrorIs(t, err, alphabet.ErrDuplicateLiteral)

	many := make([]string, alphabet.MaxLiterals+1)
	for i := range many {
		many[i] = "p" + strings.Repeat("x", i)
	}
	_, err = alphabet.New(many...)
	assert.ErrorIs(t, err, alphabet.ErrTooManyLiterals)
}

// TestAlphabet_Lookup covers Index, Contains and Valuation construction.
func TestAlphabet_Lookup(t *testing.T) {
	a := alphabet.MustNew("a", "b", "c")
	require.Equal(t, 3, a.Len())
	require.Equal(t, []string{"a", "b", "c"}, a.Names())

	i, err := a.Index("c")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	_, err = a.Index("z")
	assert.True(t, errors.Is(err, alphabet.ErrUnknownLiteral))
	assert.False(t, a.Contains("z"))

	v, err := a.Valuation("a", "c")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, v.Bools(3))
	assert.Equal(t, "{a,c}", a.Format(v))
	assert.Equal(t, v, alphabet.FromBools([]bool{true, false, true}))
	assert.Equal(t, "{a}", a.Format(v.Flip(2)))
	assert.False(t, v.With(0, false).Has(0))
}

// TestEdges_Order pins the canonical enumeration for [a b c].
func TestEdges_Order(t *testing.T) {
	a := alphabet.MustNew("a", "b", "c")
	edges := alphabet.Edges(a)
	require.Len(t, edges, 8)

	got := make([]string, len(edges))
	for i, e := range edges {
		got[i] = a.Format(e)
	}
	want := []string{"{}", "{a}", "{b}", "{c}", "{a,b}", "{a,c}", "{b,c}", "{a,b,c}"}
	assert.Equal(t, want, got)

	// weights never decrease
	for i := 1; i < len(edges); i++ {
		assert.LessOrEqual(t, alphabet.Weight(a, edges[i-1]), alphabet.Weight(a, edges[i]))
	}
}

// TestEdges_TiesKeepProductOrder uses equal ordinals to expose the stable tie-break.
func TestEdges_TiesKeepProductOrder(t *testing.T) {
	// "ab" and "ba" have the same ordinal; product order puts {ab} (literal 0) first.
	a := alphabet.MustNew("ab", "ba")
	edges := alphabet.Edges(a)
	got := make([]string, len(edges))
	for i, e := range edges {
		got[i] = a.Format(e)
	}
	assert.Equal(t, []string{"{}", "{ab}", "{ba}", "{ab,ba}"}, got)
}

// TestEdges_Deterministic calls Edges repeatedly and expects identical output.
func TestEdges_Deterministic(t *testing.T) {
	a := alphabet.MustNew("p", "q", "r", "s")
	first := alphabet.Edges(a)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, alphabet.Edges(a))
	}
	seen := make(map[alphabet.Valuation]bool)
	for _, e := range first {
		seen[e] = true
	}
	assert.Len(t, seen, 16, "every valuation appears exactly once")
}

// TestPath_KeyAndAppend checks structural keys and alias-free appends.
func TestPath_KeyAndAppend(t *testing.T) {
	p := alphabet.Path{1, 2}
	q := p.Append(3)
	r := p.Append(4)
	assert.Equal(t, alphabet.Path{1, 2, 3}, q)
	assert.Equal(t, alphabet.Path{1, 2, 4}, r)
	assert.NotEqual(t, q.Key(), r.Key())
	assert.Equal(t, q.Key(), alphabet.Path{1, 2, 3}.Key())
	assert.True(t, q.Equal(alphabet.Path{1, 2, 3}))
	assert.Equal(t, "", alphabet.Path{}.Key())

	a := alphabet.MustNew("a", "b")
	assert.Equal(t, "{a};{b}", a.FormatPath(p))
}
