package cleaner

import (
	"errors"
	"strings"
	"testing"
)

// --- NoopCleaner Tests ---

func TestNoopCleaner_Clean(t *testing.T) {
	c := NewNoop()

	tests := []struct {
		name  string
		input string
	}{
		{"empty_string", ""},
		{"plain_text", "Hello, World!"},
		{"html_content", "<p>Title</p>"},
		{"whitespace", "  \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Errorf("Clean() error = %v, want nil", err)
			}
			if got != tt.input {
				t.Errorf("Clean() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestNoopCleaner_Name(t *testing.T) {
	c := NewNoop()
	if got := c.Name(); got != "noop" {
		t.Errorf("Name() = %q, want %q", got, "noop")
	}
}

// --- ChainCleaner Tests ---

func TestChainCleaner_Empty(t *testing.T) {
	c := NewChain()

	input := "unchanged content"
	got, err := c.Clean(input)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if got != input {
		t.Errorf("Clean() = %q, want %q", got, input)
	}
}

func TestChainCleaner_Order(t *testing.T) {
	upper := NewMarkupWithRules(Rule{Name: "upper", Apply: strings.ToUpper})
	c := NewChain(NewMarkup(), upper)

	got, err := c.Clean("<b>bold</b>   move")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if got != "BOLD MOVE" {
		t.Errorf("Clean() = %q, want %q", got, "BOLD MOVE")
	}
}

// errorCleaner is a test cleaner that always returns an error
type errorCleaner struct{}

func (c *errorCleaner) Clean(string) (string, error) {
	return "", errors.New("test error")
}

func (c *errorCleaner) Name() string {
	return "error"
}

func TestChainCleaner_ErrorPropagation(t *testing.T) {
	c := NewChain(NewNoop(), &errorCleaner{}, NewMarkup())

	_, err := c.Clean("test")
	if err == nil {
		t.Fatal("expected error to propagate")
	}

	if !strings.Contains(err.Error(), "test error") {
		t.Errorf("expected error containing 'test error', got %v", err)
	}
}

func TestChainCleaner_Name(t *testing.T) {
	tests := []struct {
		name     string
		cleaners []Cleaner
		want     string
	}{
		{"empty", []Cleaner{}, "chain()"},
		{"single", []Cleaner{NewNoop()}, "chain(noop)"},
		{"double", []Cleaner{NewNoop(), NewMarkup()}, "chain(noop->markup)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChain(tt.cleaners...)
			if got := c.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Stats Tests ---

func TestStats_Record(t *testing.T) {
	var s Stats
	s.Record("<b>abcd</b>", "abcd")
	s.Record("(gone)", "")

	if s.Calls != 2 {
		t.Errorf("Calls = %d, want 2", s.Calls)
	}
	if s.Emptied != 1 {
		t.Errorf("Emptied = %d, want 1", s.Emptied)
	}
	if s.InputBytes != 17 || s.OutputBytes != 4 {
		t.Errorf("bytes = %d/%d, want 17/4", s.InputBytes, s.OutputBytes)
	}
}

func TestStats_ReductionPercent(t *testing.T) {
	var s Stats
	if got := s.ReductionPercent(); got != 0 {
		t.Errorf("ReductionPercent() on empty = %v, want 0", got)
	}

	s.Record("abcdefghij", "abcde")
	if got := s.ReductionPercent(); got != 50 {
		t.Errorf("ReductionPercent() = %v, want 50", got)
	}
}

func TestStats_Merge(t *testing.T) {
	a := Stats{Calls: 1, InputBytes: 10, OutputBytes: 5}
	b := Stats{Calls: 2, Emptied: 1, InputBytes: 4, OutputBytes: 0}
	a.Merge(b)

	if a.Calls != 3 || a.Emptied != 1 || a.InputBytes != 14 || a.OutputBytes != 5 {
		t.Errorf("Merge() = %+v", a)
	}
}

// --- ReplaceCleaner Tests ---

func TestReplaceCleaner_Clean(t *testing.T) {
	c, err := NewReplace(
		Replacement{Pattern: `\bu\b`, With: "you"},
		Replacement{Pattern: `(\d+)pm`, With: "$1 pm"},
	)
	if err != nil {
		t.Fatalf("NewReplace() error = %v", err)
	}

	got, _ := c.Clean("see u at 5pm")
	if got != "see you at 5 pm" {
		t.Errorf("Clean() = %q", got)
	}
	if len(c.Rules()) != 2 || c.Name() != "replace" {
		t.Errorf("Rules() = %d, Name() = %q", len(c.Rules()), c.Name())
	}
}

func TestReplaceCleaner_InvalidPattern(t *testing.T) {
	tests := []struct {
		name string
		rep  Replacement
		want string
	}{
		{"bad_regex", Replacement{Pattern: "("}, "replacement 2"},
		{"empty_pattern", Replacement{}, "empty pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReplace(Replacement{Pattern: "a", With: "b"}, tt.rep)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewReplace() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestReplaceCleaner_AfterMarkupInChain(t *testing.T) {
	extra, err := NewReplace(Replacement{Pattern: "Dogs", With: "Cats"})
	if err != nil {
		t.Fatal(err)
	}
	c := NewChain(NewMarkup(), extra)

	got, err := c.Clean("<b>Dogs</b> bark (loudly).")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "Cats bark ." {
		t.Errorf("Clean() = %q", got)
	}
	if c.Name() != "chain(markup->replace)" {
		t.Errorf("Name() = %q", c.Name())
	}

	steps := extra.Trace("Dogs")
	if len(steps) != 1 || !steps[0].Changed || steps[0].Output != "Cats" {
		t.Errorf("Trace() = %+v", steps)
	}
}
