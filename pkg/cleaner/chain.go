package cleaner

import (
	"strings"
)

// ChainCleaner feeds the output of each cleaner into the next. The parse
// command uses it to run configured replacements after the markup rules:
//
//	extra, err := cleaner.NewReplace(reps...)
//	c := cleaner.NewChain(cleaner.NewMarkup(), extra)
type ChainCleaner struct {
	stages []Cleaner
}

// NewChain creates a cleaner running stages in the given order.
func NewChain(stages ...Cleaner) *ChainCleaner {
	return &ChainCleaner{stages: stages}
}

// Clean runs every stage; the first error aborts the chain.
func (c *ChainCleaner) Clean(text string) (string, error) {
	for _, stage := range c.stages {
		out, err := stage.Clean(text)
		if err != nil {
			return "", err
		}
		text = out
	}
	return text, nil
}

// Name reports the stage names, e.g. "chain(markup->replace)".
func (c *ChainCleaner) Name() string {
	names := make([]string, 0, len(c.stages))
	for _, stage := range c.stages {
		names = append(names, stage.Name())
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
