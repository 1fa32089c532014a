// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"time"

	"github.com/katalvlaran/ltlsample/automaton"
	"github.com/katalvlaran/ltlsample/charsample"
	"github.com/katalvlaran/ltlsample/ltlf"
	"github.com/katalvlaran/ltlsample/sampler"
	"github.com/katalvlaran/ltlsample/trace"
)

// Failure reasons reported in Result.Reason.
const (
	ReasonDegenerate  = "degenerate_formula"
	ReasonUnreachable = "unreachable_acceptance"
	ReasonTooShort    = "trace_too_short"
	ReasonExhausted   = "sampling_exhausted"
	ReasonStateLimit  = "state_limit"
	ReasonSyntax      = "syntax"
	ReasonCanceled    = "canceled"
	ReasonOutput      = "output"
	ReasonOther       = "error"
)

// errOutput tags failures writing a finished sample.
var errOutput = errors.New("runner: write output")

// ErrFileCollision is returned by Run when two job names map to the same
// output file.
var ErrFileCollision = errors.New("runner: job names share an output file")

// Result is the tagged outcome of one job. Exactly one of Sample and Err is set.
type Result struct {
	ID       string
	Job      string
	Strategy string
	Sample   *trace.Sample
	Err      error
	Reason   string
	Duration time.Duration
}

// OK reports whether the job produced a sample.
func (r Result) OK() bool { return r.Err == nil }

// Report collects the results of one batch in job order.
type Report struct {
	RunID   string
	Results []Result
}

// Failed counts failed jobs.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Document is the JSON shape written per successful job.
type Document struct {
	ID          string        `json:"id"`
	RunID       string        `json:"run_id"`
	Name        string        `json:"name"`
	Formula     string        `json:"formula"`
	Literals    []string      `json:"literals"`
	TraceLength int           `json:"trace_length"`
	Strategy    string        `json:"strategy"`
	Positive    []trace.Trace `json:"positive"`
	Negative    []trace.Trace `json:"negative"`
}

// Reason classifies err into one of the Reason constants.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, charsample.ErrDegenerateFormula):
		return ReasonDegenerate
	case errors.Is(err, charsample.ErrUnreachableAcceptance):
		return ReasonUnreachable
	case errors.Is(err, charsample.ErrTraceTooShort):
		return ReasonTooShort
	case errors.Is(err, sampler.ErrSamplingExhausted):
		return ReasonExhausted
	case errors.Is(err, ltlf.ErrStateLimit), errors.Is(err, automaton.ErrStateLimit):
		return ReasonStateLimit
	case errors.Is(err, ltlf.ErrSyntax):
		return ReasonSyntax
	case errors.Is(err, errOutput):
		return ReasonOutput
	case isCanceled(err):
		return ReasonCanceled
	}
	return ReasonOther
}
