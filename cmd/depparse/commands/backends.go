package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/depparse/pkg/parser"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the available parser backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BACKEND\tDEFAULT MODEL")
		for _, name := range parser.Available() {
			model := parser.GetDefaultModel(name)
			if model == "" {
				model = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, model)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
