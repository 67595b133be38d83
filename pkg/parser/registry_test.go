package parser

import (
	"context"
	"errors"
	"testing"
)

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("nope", Config{})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestNew_BuiltinBackends(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"udpipe", Config{}},
		{"corenlp", Config{}},
		{"command", Config{Command: []string{"cat"}}},
		{"openai", Config{APIKey: "test-key"}},
		{"anthropic", Config{APIKey: "test-key"}},
		{"tokens", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.name, tt.cfg)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.name, err)
			}
			defer func() { _ = p.Close() }()

			if got := p.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
		})
	}
}

type stubParser struct{}

func (stubParser) Parse(context.Context, string) (string, error) { return "stub\n", nil }
func (stubParser) Name() string                                  { return "stub" }
func (stubParser) Close() error                                  { return nil }

func TestRegister_Custom(t *testing.T) {
	Register("stub-test", func(Config) (Parser, error) { return stubParser{}, nil })
	defer delete(registry, "stub-test")

	if !IsRegistered("stub-test") {
		t.Fatal("IsRegistered() = false after Register")
	}

	p, err := New("stub-test", Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, _ := p.Parse(context.Background(), "x")
	if out != "stub\n" {
		t.Errorf("Parse() = %q", out)
	}
}

func TestAvailable_Sorted(t *testing.T) {
	names := Available()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Available() not sorted: %v", names)
		}
	}
	for _, want := range []string{"anthropic", "command", "corenlp", "openai", "tokens", "udpipe"} {
		if !IsRegistered(want) {
			t.Errorf("%q not registered", want)
		}
	}
}

func TestGetDefaultModel(t *testing.T) {
	if got := GetDefaultModel("udpipe"); got != "english" {
		t.Errorf("GetDefaultModel(udpipe) = %q", got)
	}
	if got := GetDefaultModel("command"); got != "" {
		t.Errorf("GetDefaultModel(command) = %q, want empty", got)
	}
}
