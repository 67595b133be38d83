package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownBackend is returned by New for names that are not registered.
var ErrUnknownBackend = errors.New("unknown parser backend")

// Factory creates a parser from config.
type Factory func(cfg Config) (Parser, error)

// DefaultModels maps backend names to their default models.
var DefaultModels = map[string]string{
	"udpipe":    "english",
	"openai":    "gpt-4o",
	"anthropic": "claude-sonnet-4-20250514",
}

var registry = map[string]Factory{}

func init() {
	// Register all built-in backends
	Register("udpipe", func(cfg Config) (Parser, error) {
		return NewUDPipeParser(cfg)
	})
	Register("corenlp", func(cfg Config) (Parser, error) {
		return NewCoreNLPParser(cfg)
	})
	Register("command", func(cfg Config) (Parser, error) {
		return NewCommandParser(cfg)
	})
	Register("openai", func(cfg Config) (Parser, error) {
		return NewOpenAIParser(cfg)
	})
	Register("anthropic", func(cfg Config) (Parser, error) {
		return NewAnthropicParser(cfg)
	})
	Register("tokens", func(cfg Config) (Parser, error) {
		return NewTokensParser(cfg), nil
	})
}

// New creates a parser by backend name.
func New(name string, cfg Config) (Parser, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownBackend, name, strings.Join(Available(), ", "))
	}
	return factory(cfg)
}

// Register adds a custom backend factory.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Available returns the registered backend names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered returns true if a backend is registered.
func IsRegistered(name string) bool {
	_, ok := registry[name]
	return ok
}

// GetDefaultModel returns the default model for a backend.
func GetDefaultModel(name string) string {
	return DefaultModels[name]
}
