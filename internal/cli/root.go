// SPDX-License-Identifier: MIT

// Package cli implements the ltlsample command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/logging"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	logLevel  string
	logFormat string
}

// NewRootCommand returns the ltlsample command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "ltlsample",
		Short: "Generate example traces for LTLf formulas",
		Long: `ltlsample builds labelled trace samples for LTL formulas over finite traces.

The characteristic strategy compiles the formula to a minimal automaton and
emits traces that reach every state and separate every pair of states. The
rejection strategy draws random traces and keeps the ones it needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", logging.FormatText, "log format: text, json")

	root.AddCommand(
		newGenerateCommand(g),
		newCheckCommand(),
		newEdgesCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

// alphabetFlag builds an alphabet from a --literals value.
func alphabetFlag(lits []string) (alphabet.Alphabet, error) {
	clean := make([]string, 0, len(lits))
	for _, l := range lits {
		if l = strings.TrimSpace(l); l != "" {
			clean = append(clean, l)
		}
	}
	return alphabet.New(clean...)
}
