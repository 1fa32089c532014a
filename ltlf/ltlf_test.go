// SPDX-License-Identifier: MIT
package ltlf_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/ltlf"
)

// path builds a valuation path over ab from per-step literal lists.
func path(t *testing.T, ab alphabet.Alphabet, steps ...[]alphabet.Literal) alphabet.Path {
	t.Helper()
	p := make(alphabet.Path, len(steps))
	for i, s := range steps {
		v, err := ab.Valuation(s...)
		require.NoError(t, err)
		p[i] = v
	}
	return p
}

type lits = []alphabet.Literal

// TestParse_Precedence pins the rendered shape of tricky inputs.
func TestParse_Precedence(t *testing.T) {
	cases := map[string]string{
		"a U b":             "(a U b)",
		"a U b & c":         "((a U b) & c)",
		"!a U b":            "(!a U b)",
		"a | b & c":         "(a | (b & c))",
		"a -> b -> c":       "(a -> (b -> c))",
		"a & b & c":         "((a & b) & c)",
		"F a -> G b":        "(F a -> G b)",
		"X (a | b)":         "X (a | b)",
		"WX N a":            "WX WX a",
		"a <-> ~b":          "(a <-> !b)",
		"a U b U c":         "(a U (b U c))",
		"G (req -> F ack)":  "G (req -> F ack)",
		"true && last":      "(true & last)",
		"(a => b) || false": "((a -> b) | false)",
	}
	for in, want := range cases {
		f, err := ltlf.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f.String(), in)

		// rendering is itself parseable and stable
		again, err := ltlf.Parse(f.String())
		require.NoError(t, err)
		assert.Equal(t, want, again.String())
	}
}

// TestParse_Errors checks malformed inputs map to ErrSyntax.
func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "a U", "U a", "(a", "a)", "a b", "a # b", "!", "()", "a & & b"} {
		_, err := ltlf.Parse(in)
		assert.ErrorIs(t, err, ltlf.ErrSyntax, "input %q", in)
	}
}

// TestAtoms collects atoms in first-occurrence order.
func TestAtoms(t *testing.T) {
	f := ltlf.MustParse("(b U a) & G (c -> b)")
	assert.Equal(t, []string{"b", "a", "c"}, ltlf.Atoms(f))
}

// TestTruth_Semantics covers every operator on hand-picked traces.
func TestTruth_Semantics(t *testing.T) {
	ab := alphabet.MustNew("a", "b", "c")
	type tc struct {
		formula string
		steps   []lits
		want    bool
	}
	cases := []tc{
		{"a U b", []lits{{"b"}}, true},
		{"a U b", []lits{{"a"}, {"a"}, {"b"}}, true},
		{"a U b", []lits{{"a"}, {}, {"b"}}, false},
		{"a U b", []lits{{"a"}, {"a"}}, false},
		{"a U b", nil, false},
		{"X a", []lits{{}, {"a"}}, true},
		{"X a", []lits{{"a"}}, false},
		{"WX a", []lits{{"a"}}, true},
		{"WX a", []lits{{}, {}}, false},
		{"F c", []lits{{}, {}, {"c"}}, true},
		{"F c", nil, false},
		{"G a", nil, true},
		{"G a", []lits{{"a"}, {"a", "b"}}, true},
		{"G a", []lits{{"a"}, {"b"}}, false},
		{"a R b", []lits{{"b"}, {"b"}}, true},
		{"a R b", []lits{{"b"}, {"a", "b"}, {}}, true},
		{"a R b", []lits{{"b"}, {}}, false},
		{"F last", []lits{{}, {}}, true},
		{"last", []lits{{}, {}}, false},
		{"!a", nil, true},
		{"a -> b", []lits{{"a"}}, false},
		{"a <-> b", []lits{{"a", "b"}}, true},
		{"z", []lits{{"a", "b", "c"}}, false},
		{"true", nil, true},
		{"false", []lits{{}}, false},
	}
	for _, c := range cases {
		ev, err := ltlf.Bind(ltlf.MustParse(c.formula), ab)
		require.NoError(t, err)
		got := ev.Truth(path(t, ab, c.steps...), 0)
		assert.Equal(t, c.want, got, "%s on %v", c.formula, c.steps)
	}

	ev, _ := ltlf.Bind(ltlf.MustParse("a U b"), ab)
	p := path(t, ab, lits{}, lits{"b"})
	assert.False(t, ev.Truth(p, 0))
	assert.True(t, ev.Truth(p, 1), "offset evaluation starts mid-trace")
}

// allPaths enumerates every path of length 0..maxLen over edges.
func allPaths(edges []alphabet.Valuation, maxLen int) []alphabet.Path {
	out := []alphabet.Path{{}}
	frontier := []alphabet.Path{{}}
	for l := 1; l <= maxLen; l++ {
		var next []alphabet.Path
		for _, p := range frontier {
			for _, e := range edges {
				next = append(next, p.Append(e))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// TestCompile_AgreesWithTruth cross-checks automaton acceptance against the
// direct semantics on every short trace, minimized or not.
func TestCompile_AgreesWithTruth(t *testing.T) {
	ab := alphabet.MustNew("a", "b")
	edges := alphabet.Edges(ab)
	traces := allPaths(edges, 4)
	formulas := []string{
		"a U b", "a R b", "X a", "WX a", "F a", "G a", "G F a", "F G a",
		"G (a -> X b)", "G (a -> WX b)", "a & X X b", "F last", "last",
		"!(a U b) | X(b U a)", "(a <-> b) U last", "X true", "G z", "F z",
		"true", "false", "F (a & X (!a & F b))",
	}
	for _, src := range formulas {
		for _, minimize := range []bool{true, false} {
			var opts []ltlf.Option
			if !minimize {
				opts = append(opts, ltlf.WithoutMinimize())
			}
			d, err := ltlf.CompileString(src, ab, opts...)
			require.NoError(t, err, src)
			for _, p := range traces {
				require.Equal(t, d.Truth(p, 0), d.Accepts(p), "%s (minimize=%v) on %s", src, minimize, ab.FormatPath(p))
			}
		}
	}
}

// TestCompile_BooleanEqualObligationsConverge compiles formulas whose
// progression terms keep growing syntactically while staying Boolean-equal.
func TestCompile_BooleanEqualObligationsConverge(t *testing.T) {
	cases := []struct {
		src  string
		ab   alphabet.Alphabet
		want int
	}{
		// only the empty trace satisfies it
		{"(F b) R (G X true)", alphabet.MustNew("a", "b"), 2},
		// F (c U last) holds at every step, so the release always holds
		{"((G a) <-> !b) R (F (c U last))", alphabet.MustNew("a", "b", "c"), 1},
	}
	for _, c := range cases {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		d, err := ltlf.CompileString(c.src, c.ab, ltlf.WithContext(ctx))
		cancel()
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, d.Len(), c.src)
		for _, p := range allPaths(alphabet.Edges(c.ab), 3) {
			require.Equal(t, d.Truth(p, 0), d.Accepts(p), "%s on %s", c.src, c.ab.FormatPath(p))
		}
	}
	d, err := ltlf.CompileString("(F b) R (G X true)", alphabet.MustNew("a", "b"))
	require.NoError(t, err)
	assert.True(t, d.Accepts(alphabet.Path{}))
}

// randomFormula renders a random fully parenthesized formula of the given depth.
func randomFormula(r *rand.Rand, depth int) string {
	leaves := []string{"a", "b", "true", "false", "last"}
	if depth == 0 || r.Intn(4) == 0 {
		return leaves[r.Intn(len(leaves))]
	}
	unary := []string{"!", "X ", "WX ", "F ", "G "}
	binary := []string{"&", "|", "->", "<->", "U", "R"}
	if r.Intn(2) == 0 {
		return unary[r.Intn(len(unary))] + "(" + randomFormula(r, depth-1) + ")"
	}
	return "(" + randomFormula(r, depth-1) + ") " + binary[r.Intn(len(binary))] + " (" + randomFormula(r, depth-1) + ")"
}

// TestCompile_RandomAgreesWithTruth cross-checks seeded random formulas.
func TestCompile_RandomAgreesWithTruth(t *testing.T) {
	ab := alphabet.MustNew("a", "b")
	traces := allPaths(alphabet.Edges(ab), 4)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		src := randomFormula(r, 3)
		for _, minimize := range []bool{true, false} {
			var opts []ltlf.Option
			if !minimize {
				opts = append(opts, ltlf.WithoutMinimize())
			}
			d, err := ltlf.CompileString(src, ab, opts...)
			require.NoError(t, err, src)
			for _, p := range traces {
				require.Equal(t, d.Truth(p, 0), d.Accepts(p), "%s (minimize=%v) on %s", src, minimize, ab.FormatPath(p))
			}
		}
	}
}

// TestCompile_MinimalSizes pins the state counts of textbook automata.
func TestCompile_MinimalSizes(t *testing.T) {
	abc := alphabet.MustNew("a", "b", "c")
	a := alphabet.MustNew("a")
	cases := []struct {
		src  string
		ab   alphabet.Alphabet
		want int
	}{
		{"a U b", abc, 3},
		{"true", abc, 1},
		{"false", abc, 1},
		{"F a", a, 2},
		{"G a", a, 2},
		{"X a", a, 4},
	}
	for _, c := range cases {
		d, err := ltlf.CompileString(c.src, c.ab)
		require.NoError(t, err)
		assert.Equal(t, c.want, d.Len(), c.src)
		assert.Equal(t, 0, d.Initial())
		assert.Len(t, d.States(), d.Len())
	}
}

// TestCompile_UntilStructure checks the accepting/rejecting shape of "a U b".
func TestCompile_UntilStructure(t *testing.T) {
	ab := alphabet.MustNew("a", "b", "c")
	d, err := ltlf.CompileString("a U b", ab)
	require.NoError(t, err)
	assert.False(t, d.IsAccepting(0))
	require.Len(t, d.Accepting(), 1)

	vb, _ := ab.Valuation("b")
	va, _ := ab.Valuation("a")
	acc := d.Successor(0, vb)
	assert.True(t, d.IsAccepting(acc))
	assert.Equal(t, 0, d.Successor(0, va))
	dead := d.Successor(0, 0)
	assert.NotEqual(t, 0, dead)
	assert.False(t, d.IsAccepting(dead))
	assert.NotEmpty(t, d.Label(0))
	assert.Equal(t, "(a U b)", d.Formula().String())
	assert.Equal(t, 3, d.Alphabet().Len())
}

// TestCompile_Errors covers nil formulas, options, limits and cancellation.
func TestCompile_Errors(t *testing.T) {
	ab := alphabet.MustNew("a", "b")
	_, err := ltlf.Compile(nil, ab)
	assert.ErrorIs(t, err, ltlf.ErrFormulaNil)

	_, err = ltlf.CompileString("a U", ab)
	assert.ErrorIs(t, err, ltlf.ErrSyntax)

	_, err = ltlf.CompileString("a U b", ab, ltlf.WithMaxStates(0))
	assert.ErrorIs(t, err, ltlf.ErrOptionViolation)

	_, err = ltlf.CompileString("X X X a", ab, ltlf.WithMaxStates(2))
	assert.ErrorIs(t, err, ltlf.ErrStateLimit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ltlf.CompileString("a U b", ab, ltlf.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = ltlf.Bind(nil, ab)
	assert.ErrorIs(t, err, ltlf.ErrFormulaNil)
}
