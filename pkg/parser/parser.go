// Package parser provides a unified interface for dependency parser backends.
//
// A Parser turns cleaned text into a CoNLL-formatted string. The text may hold
// several sentences; the returned block then holds several sentences too.
// Backends are created by name through the registry (see New), which plays
// the role of parser initialization: the returned Parser is the handle that
// callers pass explicitly to the batch pipeline.
package parser

import (
	"context"
	"time"
)

// Parser is the core interface that all parser backends must implement.
type Parser interface {
	// Parse annotates text and returns the CoNLL block for it.
	// Output is passed through unvalidated.
	Parse(ctx context.Context, text string) (string, error)

	// Name returns the backend identifier (e.g., "udpipe", "command").
	Name() string

	// Close releases any resources held by the backend.
	Close() error
}

// Config holds backend initialization options. Backends ignore fields
// that do not apply to them.
type Config struct {
	UseGPU     bool          // Request GPU-accelerated parsing where the backend controls it
	Language   string        // Language code or name, backend-specific
	Model      string        // Model name, backend-specific
	BaseURL    string        // Service endpoint for remote backends
	APIKey     string        // API key for hosted LLM backends
	Command    []string      // argv for the command backend
	Timeout    time.Duration // Per-call timeout (0 = backend default)
	MaxRetries int           // Transport-level retries inside SDK clients
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
