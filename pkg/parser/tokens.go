package parser

import (
	"context"
	"fmt"
	"strings"
)

// TokensParser is an offline backend that emits a CoNLL-U skeleton: one
// sentence per call and one row per whitespace-separated token, with every
// annotation column left as "_". It is meant for dry runs of the pipeline
// and for checking input cleaning without a real parser.
type TokensParser struct{}

// NewTokensParser creates a new tokens parser. No option applies.
func NewTokensParser(Config) *TokensParser {
	return &TokensParser{}
}

// Parse returns the skeleton block for text, or "" when text has no tokens.
func (p *TokensParser) Parse(_ context.Context, text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("# text = ")
	sb.WriteString(strings.Join(tokens, " "))
	sb.WriteByte('\n')
	for i, tok := range tokens {
		fmt.Fprintf(&sb, "%d\t%s\t_\t_\t_\t_\t_\t_\t_\t_\n", i+1, tok)
	}
	return sb.String(), nil
}

// Name returns the backend identifier.
func (p *TokensParser) Name() string {
	return "tokens"
}

// Close is a no-op.
func (p *TokensParser) Close() error {
	return nil
}

var _ Parser = (*TokensParser)(nil)
