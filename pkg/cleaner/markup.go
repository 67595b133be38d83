package cleaner

// MarkupCleaner strips HTML markup and web-corpus artifacts (article
// headers, speaker tags, parentheticals, marker spans) from a line of text.
// It is safe for concurrent use; rules hold no state.
type MarkupCleaner struct {
	rules []Rule
}

// NewMarkup creates a cleaner running DefaultRules.
func NewMarkup() *MarkupCleaner {
	return &MarkupCleaner{rules: DefaultRules()}
}

// NewMarkupWithRules creates a cleaner running the given rules in order.
func NewMarkupWithRules(rules ...Rule) *MarkupCleaner {
	return &MarkupCleaner{rules: rules}
}

// Sanitize runs the rule chain over raw. Leading and trailing whitespace is
// trimmed before the first rule.
func (c *MarkupCleaner) Sanitize(raw string) string {
	s := trimSpace(raw)
	for _, r := range c.rules {
		s = r.Apply(s)
	}
	return s
}

// Clean implements Cleaner. It never returns an error.
func (c *MarkupCleaner) Clean(text string) (string, error) {
	return c.Sanitize(text), nil
}

// Name returns the cleaner type.
func (c *MarkupCleaner) Name() string {
	return "markup"
}

// Rules returns a copy of the rule chain.
func (c *MarkupCleaner) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Step is the text as it stood after one rule ran.
type Step struct {
	Rule    string `json:"rule" yaml:"rule"`
	Output  string `json:"output" yaml:"output"`
	Changed bool   `json:"changed" yaml:"changed"`
}

// Trace runs the rule chain like Sanitize but records the intermediate
// output after every rule. The last step's Output equals Sanitize(raw).
func (c *MarkupCleaner) Trace(raw string) []Step {
	return traceRules(trimSpace(raw), c.rules)
}

func traceRules(s string, rules []Rule) []Step {
	steps := make([]Step, 0, len(rules))
	for _, r := range rules {
		next := r.Apply(s)
		steps = append(steps, Step{Rule: r.Name, Output: next, Changed: next != s})
		s = next
	}
	return steps
}
