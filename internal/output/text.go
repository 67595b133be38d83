package output

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/depparse/pkg/cleaner"
	"github.com/jmylchreest/depparse/pkg/pipeline"
)

// TextWriter renders human-readable tables for run reports and cleaner
// traces. Other values are printed with %v.
type TextWriter struct {
	tw *tabwriter.Writer
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{
		tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// Write renders a single value.
func (w *TextWriter) Write(data any) error {
	switch v := data.(type) {
	case *pipeline.Report:
		return w.writeReport(v)
	case []cleaner.Step:
		return w.writeSteps(v)
	default:
		_, err := fmt.Fprintf(w.tw, "%v\n", v)
		return err
	}
}

func (w *TextWriter) writeReport(r *pipeline.Report) error {
	fmt.Fprintf(w.tw, "backend:\t%s\n", r.Backend)
	fmt.Fprintf(w.tw, "cleaner:\t%s\n", r.Cleaner)
	fmt.Fprintf(w.tw, "input:\t%s\n", r.InputDir)
	fmt.Fprintf(w.tw, "output:\t%s\n\n", r.OutputDir)

	fmt.Fprintln(w.tw, "FILE\tOUTPUT\tLINES\tSKIPPED\tBLOCKS\tWRITTEN\tTIME\t")
	for _, f := range r.Files {
		status := humanize.Comma(f.DurationMs) + "ms"
		if f.Error != "" {
			status = "FAILED"
		}
		fmt.Fprintf(w.tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t\n",
			filepath.Base(f.Input), filepath.Base(f.Output),
			f.Lines, f.Skipped, f.Blocks, humanize.Bytes(uint64(f.BytesWritten)), status)
	}

	t := r.Totals()
	_, err := fmt.Fprintf(w.tw, "total\t%d files\t%d\t%d\t%d\t%s\t%sms\t\n",
		len(r.Files), t.Lines, t.Skipped, t.Blocks, humanize.Bytes(uint64(t.BytesWritten)), humanize.Comma(r.DurationMs))
	return err
}

func (w *TextWriter) writeSteps(steps []cleaner.Step) error {
	for _, s := range steps {
		mark := " "
		if s.Changed {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w.tw, "%s\t%s\t%q\n", mark, s.Rule, s.Output); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any pending table rows.
func (w *TextWriter) Flush() error {
	return w.tw.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
