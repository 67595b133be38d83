package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jmylchreest/depparse/internal/logger"
)

// AnthropicParser asks a Claude model for CoNLL-U.
type AnthropicParser struct {
	client anthropic.Client
	model  string
	cfg    Config
}

// NewAnthropicParser creates a new Anthropic parser.
func NewAnthropicParser(cfg Config) (*AnthropicParser, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}

	client := anthropic.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	if cfg.UseGPU {
		logger.Debug("GPU selection does not apply to hosted models", "backend", "anthropic")
	}

	return &AnthropicParser{
		client: client,
		model:  model,
		cfg:    cfg,
	}, nil
}

// Parse sends text as the user message and returns the model's CoNLL-U.
func (p *AnthropicParser) Parse(ctx context.Context, text string) (string, error) {
	ctx, cancel := withTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: llmMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: conlluSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(b.Text)
		}
	}

	return stripFences(sb.String()), nil
}

// Name returns the backend identifier.
func (p *AnthropicParser) Name() string {
	return "anthropic"
}

// Model returns the configured model name.
func (p *AnthropicParser) Model() string {
	return p.model
}

// Close is a no-op.
func (p *AnthropicParser) Close() error {
	return nil
}

var _ Parser = (*AnthropicParser)(nil)
