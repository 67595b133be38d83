package pipeline

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLines calls fn for every line of r, without its terminator. "\n",
// "\r\n" and a lone "\r" all end a line. A final line without a terminator
// is still passed on; an empty input yields no lines. The first error from
// reading or from fn is returned.
func ReadLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		chunk, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		for _, line := range splitChunk(chunk) {
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			return nil
		}
	}
}

// splitChunk splits a chunk read up to and including '\n' (or up to EOF)
// into lines, treating every '\r' not followed by '\n' as a line end too.
func splitChunk(chunk string) []string {
	if chunk == "" {
		return nil
	}
	switch {
	case strings.HasSuffix(chunk, "\r\n"):
		chunk = chunk[:len(chunk)-2]
	case strings.HasSuffix(chunk, "\n"), strings.HasSuffix(chunk, "\r"):
		chunk = chunk[:len(chunk)-1]
	}
	return strings.Split(chunk, "\r")
}
