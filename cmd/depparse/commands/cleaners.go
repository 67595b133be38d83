package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jmylchreest/depparse/pkg/cleaner"
)

// loadReplacements compiles the "replacements" list from the config file,
// e.g.
//
//	replacements:
//	  - pattern: '\bu\b'
//	    with: you
//
// It returns nil when none are configured.
func loadReplacements() (*cleaner.ReplaceCleaner, error) {
	var reps []cleaner.Replacement
	if err := viper.UnmarshalKey("replacements", &reps); err != nil {
		return nil, fmt.Errorf("invalid replacements config: %w", err)
	}
	if len(reps) == 0 {
		return nil, nil
	}
	return cleaner.NewReplace(reps...)
}

// lineCleaner is the markup cleaner, chained with extra when set.
func lineCleaner(markup *cleaner.MarkupCleaner, extra *cleaner.ReplaceCleaner) cleaner.Cleaner {
	if extra == nil {
		return markup
	}
	return cleaner.NewChain(markup, extra)
}
