// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ltlsample/alphabet"
)

func newEdgesCommand() *cobra.Command {
	var literals []string
	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Print the edge order used by the search",
		Long: `Print every valuation of the literals in the order the characteristic
generator tries them, with the weight that order is based on.`,
		Example: `  ltlsample edges --literals a,b`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ab, err := alphabetFlag(literals)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tEDGE\tWEIGHT")
			for i, v := range alphabet.Edges(ab) {
				fmt.Fprintf(w, "%d\t%s\t%d\n", i, ab.Format(v), alphabet.Weight(ab, v))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringSliceVarP(&literals, "literals", "l", nil, "comma separated literal names")
	_ = cmd.MarkFlagRequired("literals")
	return cmd
}
