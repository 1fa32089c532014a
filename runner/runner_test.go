// SPDX-License-Identifier: MIT
package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/charsample"
	"github.com/katalvlaran/ltlsample/config"
	"github.com/katalvlaran/ltlsample/ltlf"
	"github.com/katalvlaran/ltlsample/metrics"
	"github.com/katalvlaran/ltlsample/runner"
	"github.com/katalvlaran/ltlsample/sampler"
)

func jobs() []config.Job {
	return []config.Job{
		{Name: "until", Formula: "a U b", Literals: []string{"a", "b", "c"}, TraceLength: 4,
			Strategy: config.StrategyCharacteristic},
		{Name: "until random", Formula: "a U b", Literals: []string{"a", "b", "c"}, TraceLength: 5,
			Strategy: config.StrategyRejection, NumPositive: 10, NumNegative: 10, Seed: 3},
		{Name: "tautology", Formula: "a | !a", Literals: []string{"a"}, TraceLength: 3,
			Strategy: config.StrategyCharacteristic},
	}
}

// TestRun_OutputDir runs a mixed batch and reads the JSON documents back.
func TestRun_OutputDir(t *testing.T) {
	dir := t.TempDir()
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	r := runner.New(config.Run{Parallelism: 2, OutputDir: dir}, runner.WithRecorder(rec), runner.WithRunID("run-1"))

	rep, err := r.Run(context.Background(), jobs())
	require.NoError(t, err)
	require.Len(t, rep.Results, 3)
	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, 1, rep.Failed())

	until, random, taut := rep.Results[0], rep.Results[1], rep.Results[2]
	require.True(t, until.OK(), "%v", until.Err)
	require.True(t, random.OK(), "%v", random.Err)
	assert.False(t, taut.OK())
	assert.Equal(t, runner.ReasonDegenerate, taut.Reason)
	assert.ErrorIs(t, taut.Err, charsample.ErrDegenerateFormula)
	assert.Nil(t, taut.Sample)

	data, err := os.ReadFile(filepath.Join(dir, "until.json"))
	require.NoError(t, err)
	var doc runner.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, until.ID, doc.ID)
	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, "a U b", doc.Formula)
	assert.Equal(t, []string{"a", "b", "c"}, doc.Literals)
	assert.Equal(t, 4, doc.TraceLength)
	assert.Equal(t, "characteristic", doc.Strategy)
	assert.Equal(t, until.Sample.Positive, doc.Positive)
	assert.Equal(t, until.Sample.Negative, doc.Negative)

	_, err = os.Stat(filepath.Join(dir, "until_random.json"))
	assert.NoError(t, err, "job names are sanitized into file names")
	_, err = os.Stat(filepath.Join(dir, "tautology.json"))
	assert.True(t, os.IsNotExist(err), "failed jobs write nothing")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.JobsTotal.WithLabelValues("characteristic", metrics.OutcomeFailed)))
	assert.Equal(t, 10.0, testutil.ToFloat64(rec.TracesTotal.WithLabelValues("rejection", "positive")))
}

// TestRun_SamplesAreSound re-checks every emitted trace with the formula.
func TestRun_SamplesAreSound(t *testing.T) {
	var out bytes.Buffer
	r := runner.New(config.Run{Parallelism: 3}, runner.WithStdout(&out))
	rep, err := r.Run(context.Background(), jobs()[:2])
	require.NoError(t, err)
	require.Zero(t, rep.Failed())

	for _, res := range rep.Results {
		ab := alphabet.MustNew("a", "b", "c")
		ev, err := ltlf.Bind(ltlf.MustParse("a U b"), ab)
		require.NoError(t, err)
		require.NoError(t, res.Sample.Validate())
		for _, tr := range res.Sample.Positive {
			assert.True(t, ev.Truth(tr.Path(), 0))
		}
		for _, tr := range res.Sample.Negative {
			assert.False(t, ev.Truth(tr.Path(), 0))
		}
	}

	// stdout mode writes one JSON document per line
	sc := bufio.NewScanner(&out)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<22)
	lines := 0
	for sc.Scan() {
		var doc runner.Document
		require.NoError(t, json.Unmarshal(sc.Bytes(), &doc))
		assert.Equal(t, r.RunID(), doc.RunID)
		lines++
	}
	assert.Equal(t, 2, lines)
}

// TestRun_FailFast stops the batch at the first failure.
func TestRun_FailFast(t *testing.T) {
	js := []config.Job{
		{Name: "bad", Formula: "false", Literals: []string{"a"}, TraceLength: 2, Strategy: config.StrategyCharacteristic},
	}
	for i := 0; i < 5; i++ {
		js = append(js, config.Job{Name: fmt.Sprintf("ok-%d", i), Formula: "F a", Literals: []string{"a"},
			TraceLength: 3, Strategy: config.StrategyCharacteristic})
	}
	var out bytes.Buffer
	r := runner.New(config.Run{Parallelism: 1, FailFast: true}, runner.WithStdout(&out))
	rep, err := r.Run(context.Background(), js)
	require.Error(t, err)
	assert.ErrorIs(t, err, charsample.ErrDegenerateFormula)
	assert.Equal(t, runner.ReasonDegenerate, rep.Results[0].Reason)
	for _, res := range rep.Results[1:] {
		if !res.OK() {
			assert.Equal(t, runner.ReasonCanceled, res.Reason)
		}
	}
}

// TestRun_DerivedSeedsAreReproducible reruns a seedless rejection job.
func TestRun_DerivedSeedsAreReproducible(t *testing.T) {
	job := []config.Job{{Name: "r", Formula: "F b", Literals: []string{"a", "b"}, TraceLength: 4,
		Strategy: config.StrategyRejection, NumPositive: 4, NumNegative: 4}}
	run := config.Run{Parallelism: 1, Seed: 21}
	var out bytes.Buffer

	a, err := runner.New(run, runner.WithStdout(&out)).Run(context.Background(), job)
	require.NoError(t, err)
	b, err := runner.New(run, runner.WithStdout(&out)).Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, a.Results[0].Sample, b.Results[0].Sample)

	ab := alphabet.MustNew("a", "b")
	ev, _ := ltlf.Bind(ltlf.MustParse("F b"), ab)
	direct, err := sampler.Sample(context.Background(), ev, ab, 4, 4, 4,
		sampler.WithSeed(sampler.DeriveSeed(21, 0)))
	require.NoError(t, err)
	assert.Equal(t, direct, a.Results[0].Sample)
}

// TestRun_Canceled reports canceled jobs and the context error.
func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	rep, err := runner.New(config.Run{Parallelism: 2}, runner.WithStdout(&out)).Run(ctx, jobs())
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range rep.Results {
		assert.Equal(t, runner.ReasonCanceled, res.Reason)
	}
	assert.Empty(t, out.String())
}

// TestRun_FileCollision refuses names that sanitize to one file.
func TestRun_FileCollision(t *testing.T) {
	dir := t.TempDir()
	js := []config.Job{
		{Name: "a b", Formula: "F a", Literals: []string{"a"}, TraceLength: 2, Strategy: config.StrategyCharacteristic},
		{Name: "a_b", Formula: "G a", Literals: []string{"a"}, TraceLength: 2, Strategy: config.StrategyCharacteristic},
	}
	rep, err := runner.New(config.Run{Parallelism: 2, OutputDir: dir}).Run(context.Background(), js)
	require.ErrorIs(t, err, runner.ErrFileCollision)
	assert.Zero(t, rep.Failed(), "no job ran")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// stdout mode has no files to collide
	var out bytes.Buffer
	rep, err = runner.New(config.Run{Parallelism: 2}, runner.WithStdout(&out)).Run(context.Background(), js)
	require.NoError(t, err)
	assert.Zero(t, rep.Failed())
}

// TestRun_ReleaseOfUnsatisfiableFinishes runs a job whose progression terms
// grow without bound unless obligations are kept canonical.
func TestRun_ReleaseOfUnsatisfiableFinishes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	js := []config.Job{{Name: "release", Formula: "(F b) R (G X true)", Literals: []string{"a", "b"},
		TraceLength: 4, Strategy: config.StrategyCharacteristic}}
	var out bytes.Buffer
	rep, err := runner.New(config.Run{Parallelism: 1}, runner.WithStdout(&out)).Run(ctx, js)
	require.NoError(t, err)
	// only the empty trace satisfies it, so no positive trace exists
	assert.Equal(t, runner.ReasonDegenerate, rep.Results[0].Reason)
}

func TestReason(t *testing.T) {
	cases := map[string]error{
		"":                       nil,
		runner.ReasonDegenerate:  fmt.Errorf("x: %w", charsample.ErrDegenerateFormula),
		runner.ReasonUnreachable: charsample.ErrUnreachableAcceptance,
		runner.ReasonTooShort:    charsample.ErrTraceTooShort,
		runner.ReasonExhausted:   sampler.ErrSamplingExhausted,
		runner.ReasonStateLimit:  ltlf.ErrStateLimit,
		runner.ReasonSyntax:      ltlf.ErrSyntax,
		runner.ReasonCanceled:    context.DeadlineExceeded,
		runner.ReasonOther:       errors.New("other"),
	}
	for want, err := range cases {
		assert.Equal(t, want, runner.Reason(err), "%v", err)
	}
}
