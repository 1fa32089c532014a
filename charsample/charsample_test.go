// SPDX-License-Identifier: MIT
package charsample_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/automaton"
	"github.com/katalvlaran/ltlsample/charsample"
	"github.com/katalvlaran/ltlsample/ltlf"
	"github.com/katalvlaran/ltlsample/trace"
)

// compile builds the minimal DFA of src over lits.
func compile(t *testing.T, src string, lits ...string) (*ltlf.DFA, alphabet.Alphabet) {
	t.Helper()
	ab := alphabet.MustNew(lits...)
	d, err := ltlf.CompileString(src, ab)
	require.NoError(t, err, src)
	return d, ab
}

// step renders a boolean vector over lits for assertions.
func step(ab alphabet.Alphabet, lits ...alphabet.Literal) trace.Step {
	v, err := ab.Valuation(lits...)
	if err != nil {
		panic(err)
	}
	return v.Bools(ab.Len())
}

// requireSound checks soundness, disjointness, uniqueness and length.
func requireSound(t *testing.T, d *ltlf.DFA, s *trace.Sample, length int) {
	t.Helper()
	require.NoError(t, s.Validate())
	require.NotEmpty(t, s.Positive)
	require.NotEmpty(t, s.Negative)
	seen := map[string]bool{}
	for _, tr := range s.Positive {
		require.Len(t, tr, length)
		require.True(t, d.Truth(tr.Path(), 0), "positive %s", tr.Key())
		require.False(t, seen[tr.Key()], "duplicate %s", tr.Key())
		seen[tr.Key()] = true
	}
	for _, tr := range s.Negative {
		require.Len(t, tr, length)
		require.False(t, d.Truth(tr.Path(), 0), "negative %s", tr.Key())
		require.False(t, seen[tr.Key()], "duplicate or overlap %s", tr.Key())
		seen[tr.Key()] = true
	}
}

// TestGenerate_UntilScenario is the "a U b" over [a b c] walkthrough.
func TestGenerate_UntilScenario(t *testing.T) {
	d, ab := compile(t, "a U b", "a", "b", "c")
	s, err := charsample.Generate[int](d, ab, 4)
	require.NoError(t, err)
	requireSound(t, d, s, 4)

	assert.Equal(t, []string{"a", "b", "c"}, s.Literals)
	assert.Equal(t, trace.StrategyCharacteristic, s.Strategy)

	allB := trace.Trace{step(ab, "b"), step(ab, "b"), step(ab, "b"), step(ab, "b")}
	allFalse := trace.Trace{step(ab), step(ab), step(ab), step(ab)}
	assert.Contains(t, s.Positive, allB, "b at step 1 satisfies a U b")
	assert.Contains(t, s.Negative, allFalse, "a U b requires an eventual b")

	bAtFirst := false
	for _, tr := range s.Positive {
		if tr[0][1] {
			bAtFirst = true
		}
	}
	assert.True(t, bAtFirst)
}

// TestGenerate_SoundAcrossFormulas checks every sample property on a spread
// of formulas, minimized and raw.
func TestGenerate_SoundAcrossFormulas(t *testing.T) {
	formulas := []string{
		"a U b", "a R b", "X a", "WX a", "F a", "G a", "G (a -> X b)",
		"F a & F b", "!a U b", "F (a & X b)", "a <-> X b", "G F a", "F last",
		"a & WX !a",
	}
	ab := alphabet.MustNew("a", "b")
	for _, src := range formulas {
		for _, raw := range []bool{false, true} {
			var copts []ltlf.Option
			if raw {
				copts = append(copts, ltlf.WithoutMinimize())
			}
			d, err := ltlf.CompileString(src, ab, copts...)
			require.NoError(t, err)
			s, err := charsample.Generate[int](d, ab, 8, charsample.WithDeadEnd(charsample.DeadEndNegative))
			require.NoError(t, err, "%s raw=%v", src, raw)
			requireSound(t, d, s, 8)
		}
	}
}

// TestGenerate_Deterministic compares two independent runs.
func TestGenerate_Deterministic(t *testing.T) {
	for _, src := range []string{"a U b", "G (a -> X b)", "F a & F b"} {
		d1, ab := compile(t, src, "a", "b", "c")
		d2, _ := compile(t, src, "a", "b", "c")
		s1, err := charsample.Generate[int](d1, ab, 5)
		require.NoError(t, err)
		s2, err := charsample.Generate[int](d2, ab, 5)
		require.NoError(t, err)
		assert.Equal(t, s1, s2, src)
	}
}

// TestGenerate_Degenerate covers constant and constant-equivalent formulas.
func TestGenerate_Degenerate(t *testing.T) {
	for _, src := range []string{"true", "false", "a | !a", "a & !a", "G a & F !a"} {
		for _, lits := range [][]string{{"a"}, {"a", "b", "c"}} {
			d, ab := compile(t, src, lits...)
			s, err := charsample.Generate[int](d, ab, 4)
			assert.ErrorIs(t, err, charsample.ErrDegenerateFormula, "%s over %v", src, lits)
			assert.Nil(t, s)
		}
	}
}

// TestGenerate_PaddingRepeatsLastStep uses "X X a": its positive raw path is
// {};{};{a}, so steps 4 and 5 must both equal step 3.
func TestGenerate_PaddingRepeatsLastStep(t *testing.T) {
	d, ab := compile(t, "X X a", "a")
	s, err := charsample.Generate[int](d, ab, 5)
	require.NoError(t, err)
	requireSound(t, d, s, 5)

	want := trace.Trace{step(ab), step(ab), step(ab, "a"), step(ab, "a"), step(ab, "a")}
	require.Contains(t, s.Positive, want)
	for _, tr := range append(append([]trace.Trace{}, s.Positive...), s.Negative...) {
		assert.Len(t, tr, 5)
	}
}

// TestGenerate_TraceTooShort asks for fewer steps than any positive needs.
func TestGenerate_TraceTooShort(t *testing.T) {
	d, ab := compile(t, "X X X a", "a")
	var st charsample.Stats
	_, err := charsample.Generate[int](d, ab, 1, charsample.WithStats(&st))
	assert.ErrorIs(t, err, charsample.ErrTraceTooShort)
	assert.Positive(t, st.Dropped)
}

// TestGenerate_LongCompletionsDropped uses a table whose {} branch needs four
// steps to accept: at length 2 those completions are dropped, not dead ends.
func TestGenerate_LongCompletionsDropped(t *testing.T) {
	ab := alphabet.MustNew("a")
	va, _ := ab.Valuation("a")
	tbl := automaton.NewTable("q", "ok", "f1", "f2", "f3", "dead").
		Accept("ok").
		On("q", va, "ok").
		On("q", 0, "f1").
		Otherwise("f1", "f2").
		Otherwise("f2", "f3").
		Otherwise("f3", "ok").
		On("ok", va, "ok").
		On("ok", 0, "dead").
		Otherwise("dead", "dead")
	require.NoError(t, tbl.Validate(alphabet.Edges(ab)))

	var st charsample.Stats
	s, err := charsample.Generate[string](tbl, ab, 2, charsample.WithStats(&st))
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Positive(t, st.Dropped)
	assert.Zero(t, st.DeadEnds)
	for _, tr := range s.Positive {
		assert.Len(t, tr, 2)
		assert.True(t, tbl.Truth(tr.Path(), 0), "positive %s", tr.Key())
	}
	for _, tr := range s.Negative {
		assert.False(t, tbl.Truth(tr.Path(), 0), "negative %s", tr.Key())
	}
	assert.Contains(t, s.Positive, trace.Trace{{true}, {true}})

	// with room to spare the branch completes as {};{};{};{}, and padding
	// past ok falls into dead
	var roomy charsample.Stats
	s, err = charsample.Generate[string](tbl, ab, 8, charsample.WithStats(&roomy))
	require.NoError(t, err)
	assert.Positive(t, roomy.Relabelled)
	assert.Contains(t, s.Negative, trace.Trace{{false}, {false}, {false}, {false}, {false}, {false}, {false}, {false}})
}

// TestOptionsAndInputs exercises every validation path.
func TestOptionsAndInputs(t *testing.T) {
	d, ab := compile(t, "a U b", "a", "b")
	cases := []charsample.Option{
		charsample.WithMaxSuffixLength(-1),
		charsample.WithDeadEnd(charsample.DeadEnd(7)),
		charsample.WithMaxStates(0),
	}
	for _, opt := range cases {
		_, err := charsample.Generate[int](d, ab, 3, opt)
		assert.ErrorIs(t, err, charsample.ErrOptionViolation)
	}

	_, err := charsample.Generate[int](d, ab, 0)
	assert.ErrorIs(t, err, charsample.ErrInvalidTraceLength)

	_, err = charsample.Generate[int](nil, ab, 3)
	assert.ErrorIs(t, err, automaton.ErrOracleNil)

	_, err = charsample.Generate[int](d, ab, 3, charsample.WithMaxStates(1))
	assert.ErrorIs(t, err, automaton.ErrStateLimit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = charsample.Generate[int](d, ab, 3, charsample.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDeadEnd(t *testing.T) {
	for _, p := range []charsample.DeadEnd{charsample.DeadEndFail, charsample.DeadEndNegative, charsample.DeadEndSkip} {
		got, err := charsample.ParseDeadEnd(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := charsample.ParseDeadEnd("")
	require.NoError(t, err)
	assert.Equal(t, charsample.DeadEndFail, got)

	_, err = charsample.ParseDeadEnd("retry")
	assert.ErrorIs(t, err, charsample.ErrOptionViolation)
	assert.Equal(t, "DeadEnd(9)", charsample.DeadEnd(9).String())
}

// DeadEndSuite drives the dead-end policies with a hand-built, non-minimal
// table: from q, {a} accepts forever and {} falls into two traps that swap
// into each other, so neither trap is a sink.
type DeadEndSuite struct {
	suite.Suite
	ab  alphabet.Alphabet
	tbl *automaton.Table
}

func (s *DeadEndSuite) SetupTest() {
	s.ab = alphabet.MustNew("a")
	va, _ := s.ab.Valuation("a")
	s.tbl = automaton.NewTable("q", "ok", "t1", "t2").
		Accept("ok").
		On("q", va, "ok").
		On("q", 0, "t1").
		Otherwise("ok", "ok").
		Otherwise("t1", "t2").
		Otherwise("t2", "t1")
	s.Require().NoError(s.tbl.Validate(alphabet.Edges(s.ab)))
}

func (s *DeadEndSuite) TestFailByDefault() {
	_, err := charsample.Generate[string](s.tbl, s.ab, 4)
	s.ErrorIs(err, charsample.ErrUnreachableAcceptance)
}

func (s *DeadEndSuite) TestNegative() {
	var st charsample.Stats
	out, err := charsample.Generate[string](s.tbl, s.ab, 4,
		charsample.WithDeadEnd(charsample.DeadEndNegative),
		charsample.WithStats(&st))
	s.Require().NoError(err)
	s.NoError(out.Validate())
	s.Positive(st.DeadEnds)
	s.Positive(st.Equivalent, "t1 and t2 are indistinguishable")
	s.Equal(4, st.States)
	s.Equal(1, st.Sinks)

	for _, tr := range out.Positive {
		s.True(s.tbl.Truth(tr.Path(), 0))
	}
	for _, tr := range out.Negative {
		s.False(s.tbl.Truth(tr.Path(), 0))
	}
	allFalse := trace.Trace{{false}, {false}, {false}, {false}}
	s.Contains(out.Negative, allFalse)
}

func (s *DeadEndSuite) TestSkipLogs() {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	out, err := charsample.Generate[string](s.tbl, s.ab, 4,
		charsample.WithDeadEnd(charsample.DeadEndSkip),
		charsample.WithLogger(log))
	s.Require().NoError(err)
	s.NoError(out.Validate())
	s.NotEmpty(out.Negative, "suffix search still yields negatives")
	s.True(strings.Contains(buf.String(), "dead-end path skipped"))
}

func TestDeadEndSuite(t *testing.T) {
	suite.Run(t, new(DeadEndSuite))
}

// TestGenerate_StatsShape pins stage sizes for "a U b" over [a b].
func TestGenerate_StatsShape(t *testing.T) {
	d, ab := compile(t, "a U b", "a", "b")
	var st charsample.Stats
	_, err := charsample.Generate[int](d, ab, 4, charsample.WithStats(&st))
	require.NoError(t, err)
	assert.Equal(t, 3, st.States)
	assert.Equal(t, 2, st.Sinks)
	assert.Equal(t, 3, st.Shortest)
	assert.Equal(t, 1+3*4, st.Extended)
	assert.Zero(t, st.DeadEnds)
	assert.Zero(t, st.Equivalent)
	assert.Positive(t, st.Pairs)
}
