// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ltlsample/alphabet"
	"github.com/katalvlaran/ltlsample/ltlf"
)

func newCheckCommand() *cobra.Command {
	var (
		formula  string
		literals []string
		tr       string
		useDFA   bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a formula on one trace",
		Long: `Evaluate a formula on a trace and print true or false.

A trace is a list of steps separated by ';'. Each step lists the literals that
hold in it, separated by ','. An empty step has no true literal.`,
		Example: `  ltlsample check --formula "a U b" --literals a,b --trace "a;a;b"
  ltlsample check --formula "F c" --literals a,b,c --trace "a,b;;c" --dfa`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ab, err := alphabetFlag(literals)
			if err != nil {
				return err
			}
			p, err := parseTrace(ab, tr)
			if err != nil {
				return err
			}
			f, err := ltlf.Parse(formula)
			if err != nil {
				return err
			}
			var holds bool
			if useDFA {
				dfa, err := ltlf.Compile(f, ab, ltlf.WithContext(cmd.Context()))
				if err != nil {
					return err
				}
				holds = dfa.Accepts(p)
			} else {
				ev, err := ltlf.Bind(f, ab)
				if err != nil {
					return err
				}
				holds = ev.Truth(p, 0)
			}
			fmt.Fprintln(cmd.OutOrStdout(), holds)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formula, "formula", "f", "", "LTLf formula")
	cmd.Flags().StringSliceVarP(&literals, "literals", "l", nil, "comma separated literal names")
	cmd.Flags().StringVarP(&tr, "trace", "t", "", `trace such as "a,b;;c"`)
	cmd.Flags().BoolVar(&useDFA, "dfa", false, "run the compiled automaton instead of the direct semantics")
	_ = cmd.MarkFlagRequired("formula")
	_ = cmd.MarkFlagRequired("literals")
	_ = cmd.MarkFlagRequired("trace")
	return cmd
}

// parseTrace reads the "a,b;;c" step notation.
func parseTrace(ab alphabet.Alphabet, s string) (alphabet.Path, error) {
	steps := strings.Split(s, ";")
	p := make(alphabet.Path, 0, len(steps))
	for i, step := range steps {
		var lits []alphabet.Literal
		for _, name := range strings.Split(step, ",") {
			if name = strings.TrimSpace(name); name != "" {
				lits = append(lits, alphabet.Literal(name))
			}
		}
		v, err := ab.Valuation(lits...)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		p = append(p, v)
	}
	return p, nil
}
