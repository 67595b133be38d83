package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/depparse/internal/logger"
	"github.com/jmylchreest/depparse/internal/output"
	"github.com/jmylchreest/depparse/pkg/cleaner"
	"github.com/jmylchreest/depparse/pkg/parser"
	"github.com/jmylchreest/depparse/pkg/pipeline"
)

// progressEvery is how many blocks pass between progress log lines.
const progressEvery = 500

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse every file of a directory into CoNLL output files",
	Long: `Parse reads each file in the input directory line by line. A line is
"<id> <text>": the text is cleaned, parsed, and appended to the output file
as

  # line ID: <id>
  <CoNLL block>
  <blank line>

Blank lines are skipped. The first error stops the run; blocks already
written stay in place.

Backends:
  udpipe     UDPipe 2 REST service (default: public LINDAT instance)
  corenlp    Stanford CoreNLP server (default: http://localhost:9000)
  command    external program, text on stdin, CoNLL on stdout
  openai     OpenAI-compatible chat model (also OpenRouter, Ollama /v1)
  anthropic  Claude chat model
  tokens     offline CoNLL-U skeleton, for dry runs

Examples:
  depparse parse --input_dir corpus/ --output_dir parsed/ --use_gpu \
      -b command --command "python stanza_stdin.py"

  depparse parse -i corpus/ -o parsed/ -b corenlp --report run.yaml --report-format yaml`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	flags := parseCmd.Flags()
	flags.SetNormalizeFunc(underscoreFlags)

	// Directories
	flags.StringP("input-dir", "i", "", "directory of input files (required)")
	flags.StringP("output-dir", "o", "", "directory for CoNLL output, created if missing (required)")
	flags.String("input-ext", pipeline.DefaultInputExt, "extension cut from input names to build output names")
	flags.String("output-ext", pipeline.DefaultOutputExt, "extension of output files")
	flags.Bool("truncate", false, "start each output file empty instead of appending to a previous run")

	// Parser settings
	flags.StringP("backend", "b", "udpipe", "parser backend: anthropic, command, corenlp, openai, tokens, udpipe")
	flags.Bool("use-gpu", false, "request GPU-accelerated parsing")
	flags.StringP("model", "m", "", "model name (backend-specific)")
	flags.StringP("language", "l", "", "language (backend-specific)")
	flags.String("base-url", "", "service URL for remote backends")
	flags.StringP("api-key", "k", "", "API key for hosted LLM backends (or use env var)")
	flags.String("command", "", "program and arguments for the command backend")
	flags.Duration("timeout", 0, "per-line parser timeout (0 = backend default)")
	flags.Int("max-retries", 0, "transport retries inside LLM SDK clients")

	// Cleaning and reporting
	flags.Bool("no-clean", false, "pass line text to the parser without markup cleaning")
	flags.String("report", "", "write a run report to this file (- for stdout)")
	flags.String("report-format", "text", "report format: text, json, jsonl, yaml")

	// Bind to viper
	for key, flag := range map[string]string{
		"input_dir":     "input-dir",
		"output_dir":    "output-dir",
		"input_ext":     "input-ext",
		"output_ext":    "output-ext",
		"truncate":      "truncate",
		"backend":       "backend",
		"use_gpu":       "use-gpu",
		"model":         "model",
		"language":      "language",
		"base_url":      "base-url",
		"api_key":       "api-key",
		"command":       "command",
		"timeout":       "timeout",
		"max_retries":   "max-retries",
		"no_clean":      "no-clean",
		"report":        "report",
		"report_format": "report-format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := initLogger(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s := loadRunSettings()
	if err := s.check(); err != nil {
		logger.Error("invalid settings", "error", err)
		return err
	}

	reportFormat, err := output.ParseFormat(s.ReportFormat)
	if err != nil {
		return err
	}

	logger.Info("loading parser", "backend", s.Backend, "use_gpu", s.UseGPU)
	p, err := parser.New(s.Backend, s.parserConfig())
	if err != nil {
		logger.Error("failed to initialize parser", "backend", s.Backend, "error", err)
		return err
	}
	defer func() { _ = p.Close() }()

	opts := []pipeline.Option{
		pipeline.WithExtensions(s.InputExt, s.OutputExt),
		pipeline.WithTruncate(s.Truncate),
	}
	if s.NoClean {
		opts = append(opts, pipeline.WithCleaner(cleaner.NewNoop()))
	} else {
		extra, err := loadReplacements()
		if err != nil {
			return err
		}
		opts = append(opts, pipeline.WithCleaner(lineCleaner(cleaner.NewMarkup(), extra)))
	}

	var blocks int
	opts = append(opts, pipeline.WithLineHook(func(ev pipeline.LineEvent) {
		blocks++
		if blocks%progressEvery == 0 {
			logger.Info("progress", "blocks", blocks, "file", ev.File, "line", ev.Line)
		}
	}))

	logger.Info("parsing documents", "input", s.InputDir, "output", s.OutputDir)
	start := time.Now()
	report, runErr := pipeline.Process(ctx, p, s.InputDir, s.OutputDir, opts...)

	if s.Report != "" {
		if err := output.WriteReportFile(s.Report, reportFormat, report); err != nil {
			logger.Error("failed to write report", "path", s.Report, "error", err)
			if runErr == nil {
				return err
			}
		}
	}

	if runErr != nil {
		logger.Error("parsing failed", "error", runErr)
		return runErr
	}

	t := report.Totals()
	logger.Info("parsing complete",
		"files", len(report.Files),
		"blocks", t.Blocks,
		"skipped", t.Skipped,
		"written", humanize.Bytes(uint64(t.BytesWritten)),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}
