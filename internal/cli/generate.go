// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ltlsample/config"
	"github.com/katalvlaran/ltlsample/logging"
	"github.com/katalvlaran/ltlsample/metrics"
	"github.com/katalvlaran/ltlsample/runner"
)

type generateFlags struct {
	configPath  string
	outDir      string
	metricsFile string

	formula  string
	literals []string
	length   int
	strategy string
	pos, neg int
	seed     int64
	deadEnd  string
	distinct bool
}

func newGenerateCommand(g *globals) *cobra.Command {
	fl := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate samples for one formula or a batch file",
		Long: `Generate samples for a single formula given by flags, or for every job in
a YAML batch file given by --config.

Documents are written as JSON, one line per job on stdout, or one file per job
under --out. The command fails when any job fails.`,
		Example: `  ltlsample generate --formula "a U b" --literals a,b,c --length 4
  ltlsample generate --formula "F a" --literals a,b --length 6 --strategy rejection --pos 5 --neg 5
  ltlsample generate --config jobs.yaml --out samples --metrics-file ltlsample.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, g, fl)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fl.configPath, "config", "c", "", "YAML batch file")
	f.StringVarP(&fl.outDir, "out", "o", "", "output directory (default: stdout)")
	f.StringVar(&fl.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	f.StringVarP(&fl.formula, "formula", "f", "", "LTLf formula")
	f.StringSliceVarP(&fl.literals, "literals", "l", nil, "comma separated literal names")
	f.IntVarP(&fl.length, "length", "n", 0, "trace length")
	f.StringVar(&fl.strategy, "strategy", config.StrategyCharacteristic, "characteristic or rejection")
	f.IntVar(&fl.pos, "pos", 0, "positive traces (rejection)")
	f.IntVar(&fl.neg, "neg", 0, "negative traces (rejection)")
	f.Int64Var(&fl.seed, "seed", 0, "random seed (rejection)")
	f.StringVar(&fl.deadEnd, "dead-end", "", "dead-end policy: fail, negative, skip (characteristic)")
	f.BoolVar(&fl.distinct, "distinct", false, "reject duplicate traces (rejection)")
	cmd.MarkFlagsMutuallyExclusive("config", "formula")
	return cmd
}

func runGenerate(cmd *cobra.Command, g *globals, fl *generateFlags) error {
	file, err := loadJobs(cmd, fl)
	if err != nil {
		return err
	}
	if fl.outDir != "" {
		file.Run.OutputDir = fl.outDir
	}
	if cmd.Flags().Changed("log-level") || file.Log.Level == "" {
		file.Log.Level = g.logLevel
	}
	if cmd.Flags().Changed("log-format") || file.Log.Format == "" {
		file.Log.Format = g.logFormat
	}
	if file.Log.Service == "" {
		file.Log.Service = "ltlsample"
	}
	file.Log.Writer = cmd.ErrOrStderr()
	log, err := logging.New(file.Log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	r := runner.New(file.Run,
		runner.WithLogger(log),
		runner.WithRecorder(rec),
		runner.WithStdout(cmd.OutOrStdout()))

	rep, runErr := r.Run(cmd.Context(), file.Jobs)
	if fl.metricsFile != "" {
		if err := rec.WriteTextfile(fl.metricsFile); err != nil {
			log.Error("metrics not written", slog.String("path", fl.metricsFile), slog.Any("error", err))
		}
	}
	if runErr != nil {
		return runErr
	}
	if n := rep.Failed(); n > 0 {
		for _, res := range rep.Results {
			if !res.OK() {
				fmt.Fprintf(cmd.ErrOrStderr(), "job %s: %s: %v\n", res.Job, res.Reason, res.Err)
			}
		}
		return fmt.Errorf("%d of %d jobs failed", n, len(rep.Results))
	}
	return nil
}

// loadJobs reads --config, or turns the one-off flags into a single job file.
func loadJobs(cmd *cobra.Command, fl *generateFlags) (*config.File, error) {
	if fl.configPath != "" {
		return config.Load(fl.configPath)
	}
	if fl.formula == "" {
		return nil, fmt.Errorf("either --config or --formula is required")
	}
	file := &config.File{
		Run: config.Run{Parallelism: 1},
		Jobs: []config.Job{{
			Name:        "cli",
			Formula:     fl.formula,
			Literals:    fl.literals,
			TraceLength: fl.length,
			Strategy:    fl.strategy,
			DeadEnd:     fl.deadEnd,
			NumPositive: fl.pos,
			NumNegative: fl.neg,
			Seed:        fl.seed,
			Distinct:    fl.distinct,
		}},
	}
	if err := file.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	file.ApplyDefaults()
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}
