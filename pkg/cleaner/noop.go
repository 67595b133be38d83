package cleaner

// NoopCleaner passes content through without modification.
// Use this when the corpus is already plain text, or to hand the parser
// exactly what is on the input line.
type NoopCleaner struct{}

// NewNoop creates a new no-op cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the input unchanged.
func (c *NoopCleaner) Clean(text string) (string, error) {
	return text, nil
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}
