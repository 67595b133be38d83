package cleaner

import (
	"fmt"
	"regexp"
)

// Replacement is a corpus-specific rewrite: every match of Pattern (RE2
// syntax) is replaced by With, where $1 style group references expand.
type Replacement struct {
	Pattern string `mapstructure:"pattern" json:"pattern" yaml:"pattern"`
	With    string `mapstructure:"with" json:"with" yaml:"with"`
}

// ReplaceCleaner applies configured replacements in order. It is meant to
// run after MarkupCleaner in a ChainCleaner.
type ReplaceCleaner struct {
	rules []Rule
}

// NewReplace compiles reps into a cleaner.
func NewReplace(reps ...Replacement) (*ReplaceCleaner, error) {
	rules := make([]Rule, 0, len(reps))
	for i, rep := range reps {
		if rep.Pattern == "" {
			return nil, fmt.Errorf("replacement %d: empty pattern", i+1)
		}
		re, err := regexp.Compile(rep.Pattern)
		if err != nil {
			return nil, fmt.Errorf("replacement %d: %w", i+1, err)
		}
		with := rep.With
		rules = append(rules, Rule{
			Name:  "replace:" + rep.Pattern,
			Apply: func(s string) string { return re.ReplaceAllString(s, with) },
		})
	}
	return &ReplaceCleaner{rules: rules}, nil
}

// Clean implements Cleaner. It never returns an error.
func (c *ReplaceCleaner) Clean(text string) (string, error) {
	for _, r := range c.rules {
		text = r.Apply(text)
	}
	return text, nil
}

// Name returns the cleaner type.
func (c *ReplaceCleaner) Name() string {
	return "replace"
}

// Rules returns a copy of the replacement rules.
func (c *ReplaceCleaner) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Trace records the text after every replacement, starting from text as is.
func (c *ReplaceCleaner) Trace(text string) []Step {
	return traceRules(text, c.rules)
}
