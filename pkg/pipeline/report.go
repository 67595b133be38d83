package pipeline

import (
	"time"

	"github.com/jmylchreest/depparse/pkg/cleaner"
)

// FileReport summarizes one input file.
type FileReport struct {
	Input        string        `json:"input" yaml:"input"`
	Output       string        `json:"output" yaml:"output"`
	Lines        int           `json:"lines" yaml:"lines"`
	Skipped      int           `json:"skipped" yaml:"skipped"` // blank lines
	Blocks       int           `json:"blocks" yaml:"blocks"`
	BytesWritten int64         `json:"bytes_written" yaml:"bytes_written"`
	Cleaning     cleaner.Stats `json:"cleaning" yaml:"cleaning"`
	DurationMs   int64         `json:"duration_ms" yaml:"duration_ms"`
	Error        string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes a run. On failure it holds every file touched so far,
// the failing one last.
type Report struct {
	Backend    string       `json:"backend" yaml:"backend"`
	Cleaner    string       `json:"cleaner" yaml:"cleaner"`
	InputDir   string       `json:"input_dir" yaml:"input_dir"`
	OutputDir  string       `json:"output_dir" yaml:"output_dir"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	DurationMs int64        `json:"duration_ms" yaml:"duration_ms"`
	Files      []FileReport `json:"files" yaml:"files"`
}

// Totals sums the per-file counters.
func (r *Report) Totals() FileReport {
	var t FileReport
	for _, f := range r.Files {
		t.Lines += f.Lines
		t.Skipped += f.Skipped
		t.Blocks += f.Blocks
		t.BytesWritten += f.BytesWritten
		t.DurationMs += f.DurationMs
		t.Cleaning.Merge(f.Cleaning)
	}
	return t
}
