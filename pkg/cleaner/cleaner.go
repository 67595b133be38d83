// Package cleaner provides interfaces and implementations for cleaning corpus text.
// Cleaners strip markup and corpus artifacts from a line before it is handed
// to a dependency parser.
package cleaner

// Cleaner transforms raw line text into text suitable for parsing.
// The default implementation is MarkupCleaner, which applies a fixed,
// ordered chain of rewrite rules.
type Cleaner interface {
	// Clean transforms the input text into its cleaned form.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Sanitize applies the default markup rule chain to raw and returns the
// cleaned text. It never fails.
func Sanitize(raw string) string {
	return defaultMarkup.Sanitize(raw)
}

var defaultMarkup = NewMarkup()
