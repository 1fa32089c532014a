// SPDX-License-Identifier: MIT

// Package config loads batch job files for the ltlsample runner.
//
// A file is YAML with three sections:
//
//	log:
//	  level: info
//	  format: text
//	run:
//	  parallelism: 4
//	  fail_fast: false
//	  output_dir: out
//	jobs:
//	  - name: until
//	    formula: a U b
//	    literals: [a, b, c]
//	    trace_length: 4
//	  - name: until-random
//	    formula: a U b
//	    literals: [a, b, c]
//	    trace_length: 5
//	    strategy: rejection
//	    num_positive: 10
//	    num_negative: 10
//	    seed: 7
//
// Unknown keys are rejected. Zero values mean "use the default"; see
// ApplyDefaults. Environment variables LTLSAMPLE_LOG_LEVEL,
// LTLSAMPLE_LOG_FORMAT, LTLSAMPLE_PARALLELISM and LTLSAMPLE_OUTPUT_DIR
// override the file when loaded through Load.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/logging"
	"github.com/katalvlaran/ltlsample/ltlf"
	"github.com/katalvlaran/ltlsample/sampler"
)

// Sentinel errors for configuration.
var (
	// ErrDecode is returned for unreadable or malformed YAML.
	ErrDecode = errors.New("config: decode failed")

	// ErrInvalid is returned when a decoded file fails validation.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Strategy names accepted by Job.Strategy.
const (
	StrategyCharacteristic = "characteristic"
	StrategyRejection      = "rejection"
)

// File is one batch configuration.
type File struct {
	Log  logging.Config `yaml:"log"`
	Run  Run            `yaml:"run"`
	Jobs []Job          `yaml:"jobs" validate:"required,min=1,dive"`
}

// Run holds batch-wide settings.
type Run struct {
	// Parallelism bounds concurrently running jobs. 0 means runtime.NumCPU().
	Parallelism int `yaml:"parallelism" validate:"gte=1,lte=1024"`

	// FailFast cancels the batch at the first failed job.
	FailFast bool `yaml:"fail_fast"`

	// MaxStates caps automaton construction for every job.
	MaxStates int `yaml:"max_states" validate:"gte=1"`

	// OutputDir receives one JSON file per job; empty means stdout.
	OutputDir string `yaml:"output_dir"`

	// Seed derives per-job seeds for rejection jobs without their own.
	Seed int64 `yaml:"seed"`
}

// Job is one (formula, literals, trace length) request.
type Job struct {
	Name        string   `yaml:"name" validate:"required"`
	Formula     string   `yaml:"formula" validate:"required"`
	Literals    []string `yaml:"literals" validate:"required,min=1,max=16,unique,dive,required"`
	TraceLength int      `yaml:"trace_length" validate:"gte=1"`
	Strategy    string   `yaml:"strategy" validate:"oneof=characteristic rejection"`

	// characteristic strategy
	DeadEnd         string `yaml:"dead_end" validate:"omitempty,oneof=fail negative skip"`
	MaxSuffixLength int    `yaml:"max_suffix_length" validate:"gte=0"`

	// rejection strategy
	NumPositive   int   `yaml:"num_positive" validate:"gte=0"`
	NumNegative   int   `yaml:"num_negative" validate:"gte=0"`
	Seed          int64 `yaml:"seed"`
	DrawBudget    int   `yaml:"draw_budget" validate:"gte=0"`
	PerturbBudget int   `yaml:"perturb_budget" validate:"gte=0"`
	Distinct      bool  `yaml:"distinct"`
}

var validate = validator.New()

// Load reads path, applies environment overrides and defaults, and validates.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	f, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := f.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	f.ApplyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes data, applies defaults and validates. The environment is not
// consulted.
func Parse(data []byte) (*File, error) {
	f, err := decode(data)
	if err != nil {
		return nil, err
	}
	f.ApplyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func decode(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &f, nil
}

// ApplyEnv overrides file values from lookup (os.LookupEnv in production).
func (f *File) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("LTLSAMPLE_LOG_LEVEL"); ok {
		f.Log.Level = v
	}
	if v, ok := lookup("LTLSAMPLE_LOG_FORMAT"); ok {
		f.Log.Format = v
	}
	if v, ok := lookup("LTLSAMPLE_OUTPUT_DIR"); ok {
		f.Run.OutputDir = v
	}
	if v, ok := lookup("LTLSAMPLE_PARALLELISM"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: LTLSAMPLE_PARALLELISM=%q: %v", ErrInvalid, v, err)
		}
		f.Run.Parallelism = n
	}
	return nil
}

// ApplyDefaults fills zero values: parallelism NumCPU, ltlf.DefaultMaxStates,
// strategy characteristic, job names job-<n>, and the sampler budgets.
func (f *File) ApplyDefaults() {
	if f.Run.Parallelism == 0 {
		f.Run.Parallelism = runtime.NumCPU()
	}
	if f.Run.MaxStates == 0 {
		f.Run.MaxStates = ltlf.DefaultMaxStates
	}
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if j.Name == "" {
			j.Name = "job-" + strconv.Itoa(i+1)
		}
		if j.Strategy == "" {
			j.Strategy = StrategyCharacteristic
		}
		if j.Strategy == StrategyRejection {
			if j.DrawBudget == 0 {
				j.DrawBudget = sampler.DefaultDrawBudget
			}
			if j.PerturbBudget == 0 {
				j.PerturbBudget = sampler.DefaultPerturbBudget
			}
		}
	}
}

// Validate checks struct tags and the rules tags cannot express: unique job
// names, literal names the alphabet accepts, parseable formulas, and
// non-empty counts for rejection jobs.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	names := make(map[string]bool, len(f.Jobs))
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if names[j.Name] {
			return fmt.Errorf("%w: duplicate job name %q", ErrInvalid, j.Name)
		}
		names[j.Name] = true
		if err := j.check(); err != nil {
			return fmt.Errorf("%w: job %q: %v", ErrInvalid, j.Name, err)
		}
	}
	return nil
}

func (j *Job) check() error {
	if _, err := alphabet.New(j.Literals...); err != nil {
		return err
	}
	if _, err := ltlf.Parse(j.Formula); err != nil {
		return err
	}
	if j.Strategy == StrategyRejection && j.NumPositive+j.NumNegative == 0 {
		return errors.New("rejection strategy needs num_positive or num_negative")
	}
	return nil
}
