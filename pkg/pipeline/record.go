package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/depparse/pkg/cleaner"
)

const (
	// DefaultInputExt is cut from input file names to derive output names.
	DefaultInputExt = ".txt"
	// DefaultOutputExt is appended to derive output names.
	DefaultOutputExt = ".conll"
	// HeaderPrefix starts the line that opens every output block.
	HeaderPrefix = "# line ID: "
)

// Record is one non-blank input line split into its identifier and body.
type Record struct {
	ID   string
	Body string
}

// SplitLine splits line on whitespace (see cleaner.IsSpace). The first field
// is the identifier and the remaining fields, joined by single spaces, are
// the body. It returns false for blank lines.
func SplitLine(line string) (Record, bool) {
	fields := strings.FieldsFunc(line, cleaner.IsSpace)
	if len(fields) == 0 {
		return Record{}, false
	}
	return Record{
		ID:   fields[0],
		Body: strings.Join(fields[1:], " "),
	}, true
}

// OutputName derives the output file name: everything before the first
// occurrence of inputExt, followed by outputExt. Names without inputExt are
// kept whole.
func OutputName(filename, inputExt, outputExt string) string {
	if inputExt != "" {
		if i := strings.Index(filename, inputExt); i >= 0 {
			filename = filename[:i]
		}
	}
	return filename + outputExt
}

// FormatBlock renders one output block: the header line, the parse text
// terminated by a newline, and a blank separator line.
func FormatBlock(id, parse string) string {
	var sb strings.Builder
	sb.Grow(len(HeaderPrefix) + len(id) + len(parse) + 3)
	sb.WriteString(HeaderPrefix)
	sb.WriteString(id)
	sb.WriteByte('\n')
	sb.WriteString(parse)
	if parse != "" && !strings.HasSuffix(parse, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// AppendBlock writes block to dir/name, creating dir if needed. The file is
// opened in append mode (or truncated first when truncate is set) and closed
// again before returning.
func AppendBlock(dir, name, block string, truncate bool) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if truncate {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(filepath.Join(dir, name), flags, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := f.WriteString(block)
	if err != nil {
		_ = f.Close()
		return n, err
	}
	return n, f.Close()
}
