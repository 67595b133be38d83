package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jmylchreest/depparse/pkg/pipeline"
)

// WriteReport serializes r to w. JSONL emits one line per file; the other
// formats emit the whole report.
func WriteReport(w io.Writer, format Format, r *pipeline.Report) error {
	wr, err := NewWriter(w, format)
	if err != nil {
		return err
	}

	if format == FormatJSONL {
		for _, f := range r.Files {
			if err := wr.Write(f); err != nil {
				return err
			}
		}
	} else if err := wr.Write(r); err != nil {
		return err
	}

	return wr.Close()
}

// WriteReportFile writes r to path, or to stdout when path is "-".
func WriteReportFile(path string, format Format, r *pipeline.Report) error {
	if path == "-" {
		return WriteReport(os.Stdout, format, r)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteReport(f, format, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
