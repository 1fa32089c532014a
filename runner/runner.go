// SPDX-License-Identifier: MIT

// Package runner executes batches of generation jobs.
//
// Jobs run in parallel up to config.Run.Parallelism, each with its own
// automaton, evaluator and random stream. A failed job becomes a tagged
// Result and the batch continues, unless FailFast is set, in which case the
// first failure cancels the remaining jobs. Successful samples are written as
// JSON, one file per job under OutputDir, or one line per job on stdout.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/charsample"
	"github.com/katalvlaran/ltlsample/config"
	"github.com/katalvlaran/ltlsample/logging"
	"github.com/katalvlaran/ltlsample/ltlf"
	"github.com/katalvlaran/ltlsample/metrics"
	"github.com/katalvlaran/ltlsample/sampler"
	"github.com/katalvlaran/ltlsample/trace"
)

// Runner executes jobs under one batch configuration.
type Runner struct {
	run   config.Run
	log   *slog.Logger
	rec   *metrics.Recorder
	out   io.Writer
	runID string

	mu sync.Mutex // serializes writes to out
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger routes job logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRecorder records job metrics on rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(r *Runner) { r.rec = rec }
}

// WithStdout sets the writer used when OutputDir is empty.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithRunID fixes the run identifier instead of a random UUID.
func WithRunID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// New returns a Runner for run.
func New(run config.Run, opts ...Option) *Runner {
	r := &Runner{
		run:   run,
		log:   logging.Discard(),
		out:   os.Stdout,
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.run.Parallelism < 1 {
		r.run.Parallelism = 1
	}
	if r.run.MaxStates < 1 {
		r.run.MaxStates = ltlf.DefaultMaxStates
	}
	return r
}

// RunID returns the batch identifier stamped on every document.
func (r *Runner) RunID() string { return r.runID }

// Run executes jobs and returns one Result per job in input order. The error
// is non-nil only when FailFast stopped the batch or ctx was canceled.
func (r *Runner) Run(ctx context.Context, jobs []config.Job) (*Report, error) {
	rep := &Report{RunID: r.runID, Results: make([]Result, len(jobs))}
	if r.run.OutputDir != "" {
		if err := checkFileNames(jobs); err != nil {
			return rep, err
		}
		if err := os.MkdirAll(r.run.OutputDir, 0o750); err != nil {
			return rep, fmt.Errorf("%w: %v", errOutput, err)
		}
	}
	r.log.Info("batch started",
		slog.String("run_id", r.runID),
		slog.Int("jobs", len(jobs)),
		slog.Int("parallelism", r.run.Parallelism))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.run.Parallelism)
	for i := range jobs {
		i := i
		g.Go(func() error {
			res := r.runJob(gCtx, i, jobs[i])
			rep.Results[i] = res
			if !res.OK() && r.run.FailFast {
				return fmt.Errorf("runner: job %q: %w", res.Job, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	r.log.Info("batch finished",
		slog.String("run_id", r.runID),
		slog.Int("failed", rep.Failed()))
	return rep, err
}

// runJob generates, records and writes one job.
func (r *Runner) runJob(ctx context.Context, idx int, job config.Job) Result {
	res := Result{ID: uuid.NewString(), Job: job.Name, Strategy: job.Strategy}
	log := r.log.With(slog.String("job", job.Name), slog.String("job_id", res.ID))

	start := time.Now()
	s, err := r.generate(ctx, idx, job, log)
	if err == nil {
		err = r.write(res.ID, job, s)
	}
	res.Duration = time.Since(start)

	pos, neg := 0, 0
	if err == nil {
		res.Sample = s
		pos, neg = len(s.Positive), len(s.Negative)
		log.Info("job done", slog.Int("positive", pos), slog.Int("negative", neg),
			slog.Duration("took", res.Duration))
	} else {
		res.Err, res.Reason = err, Reason(err)
		log.Warn("job failed", slog.String("reason", res.Reason), slog.Any("error", err))
	}
	r.rec.ObserveJob(job.Strategy, err, res.Duration, pos, neg)
	return res
}

func (r *Runner) generate(ctx context.Context, idx int, job config.Job, log *slog.Logger) (*trace.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ab, err := alphabet.New(job.Literals...)
	if err != nil {
		return nil, err
	}
	f, err := ltlf.Parse(job.Formula)
	if err != nil {
		return nil, err
	}

	switch job.Strategy {
	case config.StrategyRejection:
		ev, err := ltlf.Bind(f, ab)
		if err != nil {
			return nil, err
		}
		seed := job.Seed
		if seed == 0 {
			seed = sampler.DeriveSeed(r.run.Seed, uint64(idx))
		}
		opts := []sampler.Option{
			sampler.WithSeed(seed),
			sampler.WithLogger(log),
		}
		if job.DrawBudget > 0 {
			opts = append(opts, sampler.WithDrawBudget(job.DrawBudget))
		}
		if job.PerturbBudget > 0 {
			opts = append(opts, sampler.WithPerturbBudget(job.PerturbBudget))
		}
		if job.Distinct {
			opts = append(opts, sampler.WithDistinct())
		}
		var st sampler.Stats
		opts = append(opts, sampler.WithStats(&st))
		s, err := sampler.Sample(ctx, ev, ab, job.TraceLength, job.NumPositive, job.NumNegative, opts...)
		r.rec.ObserveSampler(st)
		return s, err

	case config.StrategyCharacteristic, "":
		dfa, err := ltlf.Compile(f, ab,
			ltlf.WithContext(ctx),
			ltlf.WithMaxStates(r.run.MaxStates))
		if err != nil {
			return nil, err
		}
		dead, err := charsample.ParseDeadEnd(job.DeadEnd)
		if err != nil {
			return nil, err
		}
		var st charsample.Stats
		s, err := charsample.Generate[int](dfa, ab, job.TraceLength,
			charsample.WithContext(ctx),
			charsample.WithLogger(log),
			charsample.WithDeadEnd(dead),
			charsample.WithMaxSuffixLength(job.MaxSuffixLength),
			charsample.WithMaxStates(r.run.MaxStates),
			charsample.WithStats(&st))
		r.rec.ObserveCharacteristic(st)
		return s, err
	}
	return nil, fmt.Errorf("runner: unknown strategy %q", job.Strategy)
}

// write emits the JSON document of a finished job.
func (r *Runner) write(id string, job config.Job, s *trace.Sample) error {
	doc := Document{
		ID:          id,
		RunID:       r.runID,
		Name:        job.Name,
		Formula:     job.Formula,
		Literals:    s.Literals,
		TraceLength: s.TraceLength,
		Strategy:    string(s.Strategy),
		Positive:    s.Positive,
		Negative:    s.Negative,
	}
	if r.run.OutputDir == "" {
		r.mu.Lock()
		defer r.mu.Unlock()
		if err := json.NewEncoder(r.out).Encode(doc); err != nil {
			return fmt.Errorf("%w: %v", errOutput, err)
		}
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", errOutput, err)
	}
	path := filepath.Join(r.run.OutputDir, fileName(job.Name))
	if err := os.WriteFile(path, append(data, '\n'), 0o640); err != nil {
		return fmt.Errorf("%w: %v", errOutput, err)
	}
	return nil
}

// fileName maps a job name to a safe file name.
func fileName(name string) string {
	clean := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
			return c
		}
		return '_'
	}, name)
	return clean + ".json"
}

// checkFileNames rejects batches in which two jobs would write one file.
func checkFileNames(jobs []config.Job) error {
	owner := make(map[string]string, len(jobs))
	for _, j := range jobs {
		name := fileName(j.Name)
		if prev, ok := owner[name]; ok {
			return fmt.Errorf("%w: %q and %q both write %s", ErrFileCollision, prev, j.Name, name)
		}
		owner[name] = j.Name
	}
	return nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
