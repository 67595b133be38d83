// Package pipeline runs the batch parse: every file in an input directory is
// read line by line, each non-blank line is split into an identifier and a
// body, the body is cleaned and parsed, and the result is appended as a block
// to the matching output file.
//
// Processing is sequential and fail-fast. The first error from reading,
// cleaning, parsing or writing stops the run; output already appended is
// left in place.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/depparse/internal/logger"
	"github.com/jmylchreest/depparse/pkg/cleaner"
	"github.com/jmylchreest/depparse/pkg/parser"
)

// LineEvent describes one block that was just written.
type LineEvent struct {
	File  string // input path
	Line  int    // 1-based line number in the input file
	ID    string
	Bytes int
}

// Pipeline holds the collaborators of a batch run.
type Pipeline struct {
	parser    parser.Parser
	cleaner   cleaner.Cleaner
	inputExt  string
	outputExt string
	truncate  bool
	onLine    func(LineEvent)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCleaner replaces the default markup cleaner.
func WithCleaner(c cleaner.Cleaner) Option {
	return func(p *Pipeline) {
		p.cleaner = c
	}
}

// WithExtensions sets the input extension cut from file names and the
// output extension appended in its place.
func WithExtensions(input, output string) Option {
	return func(p *Pipeline) {
		p.inputExt = input
		p.outputExt = output
	}
}

// WithTruncate makes each output file start empty on its first write of a
// run instead of accumulating blocks across runs.
func WithTruncate(enabled bool) Option {
	return func(p *Pipeline) {
		p.truncate = enabled
	}
}

// WithLineHook registers a callback invoked after every block is written.
func WithLineHook(fn func(LineEvent)) Option {
	return func(p *Pipeline) {
		p.onLine = fn
	}
}

// New creates a pipeline around p. The parser is used as given; the
// pipeline never closes it.
func New(p parser.Parser, opts ...Option) *Pipeline {
	pl := &Pipeline{
		parser:    p,
		cleaner:   cleaner.NewMarkup(),
		inputExt:  DefaultInputExt,
		outputExt: DefaultOutputExt,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// Process runs a pipeline built from p and opts over inputDir.
func Process(ctx context.Context, p parser.Parser, inputDir, outputDir string, opts ...Option) (*Report, error) {
	return New(p, opts...).Process(ctx, inputDir, outputDir)
}

// Process parses every entry of inputDir, in name order, into outputDir.
// The returned report covers the files handled so far, also on error.
func (p *Pipeline) Process(ctx context.Context, inputDir, outputDir string) (*Report, error) {
	start := time.Now()
	report := &Report{
		Backend:   p.parser.Name(),
		Cleaner:   p.cleaner.Name(),
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: start,
	}
	defer func() { report.DurationMs = time.Since(start).Milliseconds() }()

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return report, fmt.Errorf("failed to list input directory: %w", err)
	}
	logger.Debug("input files", "dir", inputDir, "count", len(entries))

	truncated := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		fr, err := p.processFile(ctx, filepath.Join(inputDir, name), outputDir, OutputName(name, p.inputExt, p.outputExt), truncated)
		if err != nil {
			fr.Error = err.Error()
		}
		report.Files = append(report.Files, fr)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (p *Pipeline) processFile(ctx context.Context, inPath, outDir, outName string, truncated map[string]bool) (fr FileReport, err error) {
	start := time.Now()
	outPath := filepath.Join(outDir, outName)
	fr = FileReport{Input: inPath, Output: outPath}
	defer func() { fr.DurationMs = time.Since(start).Milliseconds() }()

	f, err := os.Open(inPath)
	if err != nil {
		return fr, err
	}
	defer func() { _ = f.Close() }()

	log := logger.With("file", inPath)
	log.Info("reading file", "output", outPath)

	var lineErr error
	err = ReadLines(f, func(line string) error {
		fr.Lines++
		lineErr = p.processLine(ctx, line, outDir, outName, truncated, &fr, log)
		return lineErr
	})
	if err != nil {
		if lineErr != nil {
			return fr, lineErr
		}
		return fr, fmt.Errorf("%s: read failed: %w", inPath, err)
	}

	if fr.Blocks > 0 {
		if err := checkOutput(outPath); err != nil {
			return fr, err
		}
	}

	log.Info("file done",
		"blocks", fr.Blocks,
		"skipped", fr.Skipped,
		"written", humanize.Bytes(uint64(fr.BytesWritten)),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return fr, nil
}

// processLine handles line number fr.Lines of fr.Input and updates fr.
func (p *Pipeline) processLine(ctx context.Context, line, outDir, outName string, truncated map[string]bool, fr *FileReport, log *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s:%d: %w", fr.Input, fr.Lines, err)
	}

	rec, ok := SplitLine(line)
	if !ok {
		fr.Skipped++
		return nil
	}

	cleaned, err := p.cleaner.Clean(rec.Body)
	if err != nil {
		return fmt.Errorf("%s:%d: clean line %s: %w", fr.Input, fr.Lines, rec.ID, err)
	}
	fr.Cleaning.Record(rec.Body, cleaned)

	parse, err := p.parser.Parse(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("%s:%d: parse line %s: %w", fr.Input, fr.Lines, rec.ID, err)
	}
	if parse == "" && cleaned != "" {
		log.Warn("parser returned no output", "line", fr.Lines, "id", rec.ID)
	}

	truncate := p.truncate && !truncated[fr.Output]
	n, err := AppendBlock(outDir, outName, FormatBlock(rec.ID, parse), truncate)
	if err != nil {
		return fmt.Errorf("%s: write block for line %s: %w", fr.Output, rec.ID, err)
	}
	truncated[fr.Output] = true
	fr.Blocks++
	fr.BytesWritten += int64(n)

	log.Debug("line parsed", "line", fr.Lines, "id", rec.ID, "bytes", n)
	if p.onLine != nil {
		p.onLine(LineEvent{File: fr.Input, Line: fr.Lines, ID: rec.ID, Bytes: n})
	}
	return nil
}

// checkOutput opens and closes the output file once the input file is done,
// failing if it vanished or became unreadable between writes.
func checkOutput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("output check failed: %w", err)
	}
	return f.Close()
}
