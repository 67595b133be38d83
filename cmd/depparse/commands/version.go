package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/depparse/internal/output"
	"github.com/jmylchreest/depparse/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		if formatStr == "text" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return err
		}

		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		w, err := output.NewWriter(cmd.OutOrStdout(), format, output.WithPretty(true))
		if err != nil {
			return err
		}
		if err := w.Write(version.Get()); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().String("format", "text", "output format: text, json, yaml")
	rootCmd.Version = version.String()
}
