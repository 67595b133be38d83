package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/depparse/internal/logger"
	"github.com/jmylchreest/depparse/internal/output"
	"github.com/jmylchreest/depparse/pkg/cleaner"
	"github.com/jmylchreest/depparse/pkg/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file...]",
	Short: "Run the markup cleaner over lines of text",
	Long: `Clean applies the same markup cleaning as parse to every line of the
given files (or stdin) and prints the result, one line per input line.

With --ids the first token of each line is kept as its identifier and only
the rest is cleaned, exactly as parse does. Blank lines are skipped then.

With --trace the output after each cleaning rule is shown instead, and
--rules lists the rules in the order they run. Replacements from the
config file run after the markup rules.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.Bool("ids", false, "treat the first token of each line as an identifier")
	flags.Bool("trace", false, "show the text after every cleaning rule")
	flags.String("format", "text", "trace format: text, json, yaml")
	flags.Bool("stats", false, "log size statistics when done")
	flags.Bool("rules", false, "list the cleaning rules and exit")
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := initLogger(); err != nil {
		return err
	}

	withIDs, _ := cmd.Flags().GetBool("ids")
	trace, _ := cmd.Flags().GetBool("trace")
	showStats, _ := cmd.Flags().GetBool("stats")
	formatStr, _ := cmd.Flags().GetString("format")
	listRules, _ := cmd.Flags().GetBool("rules")

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	markup := cleaner.NewMarkup()
	extra, err := loadReplacements()
	if err != nil {
		return err
	}
	c := lineCleaner(markup, extra)

	out := cmd.OutOrStdout()
	if listRules {
		rules := markup.Rules()
		if extra != nil {
			rules = append(rules, extra.Rules()...)
		}
		for i, r := range rules {
			if _, err := fmt.Fprintf(out, "%2d  %s\n", i+1, r.Name); err != nil {
				return err
			}
		}
		return nil
	}

	var traceWriter output.Writer
	if trace {
		traceWriter, err = output.NewWriter(out, format)
		if err != nil {
			return err
		}
	}

	var stats cleaner.Stats

	handle := func(line string) error {
		id, text := "", line
		if withIDs {
			rec, ok := pipeline.SplitLine(line)
			if !ok {
				return nil
			}
			id, text = rec.ID, rec.Body
		}

		if trace {
			steps := markup.Trace(text)
			if extra != nil {
				steps = append(steps, extra.Trace(steps[len(steps)-1].Output)...)
			}
			return traceWriter.Write(steps)
		}

		cleaned, err := c.Clean(text)
		if err != nil {
			return err
		}
		stats.Record(text, cleaned)
		if withIDs {
			_, err = fmt.Fprintf(out, "%s %s\n", id, cleaned)
			return err
		}
		_, err = fmt.Fprintln(out, cleaned)
		return err
	}

	if len(args) == 0 {
		if err := pipeline.ReadLines(cmd.InOrStdin(), handle); err != nil {
			return err
		}
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = pipeline.ReadLines(f, handle)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if traceWriter != nil {
		if err := traceWriter.Close(); err != nil {
			return err
		}
	}

	if showStats {
		logger.Info("cleaning stats",
			"lines", stats.Calls,
			"emptied", stats.Emptied,
			"input", humanize.Bytes(uint64(stats.InputBytes)),
			"output", humanize.Bytes(uint64(stats.OutputBytes)),
			"reduction", fmt.Sprintf("%.1f%%", stats.ReductionPercent()))
	}

	return nil
}
