package parser

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jmylchreest/depparse/internal/logger"
)

// OpenAIParser asks an OpenAI-compatible chat model for CoNLL-U. Setting
// BaseURL points it at OpenRouter or a local Ollama /v1 endpoint.
type OpenAIParser struct {
	client openai.Client
	model  string
	cfg    Config
}

// NewOpenAIParser creates a new OpenAI parser.
func NewOpenAIParser(cfg Config) (*OpenAIParser, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		// Self-hosted OpenAI-compatible servers usually ignore the key.
		apiKey = "unused"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}

	client := openai.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}

	if cfg.UseGPU {
		logger.Debug("GPU selection does not apply to hosted models", "backend", "openai")
	}

	return &OpenAIParser{
		client: client,
		model:  model,
		cfg:    cfg,
	}, nil
}

// Parse sends text as the user message and returns the model's CoNLL-U.
func (p *OpenAIParser) Parse(ctx context.Context, text string) (string, error) {
	ctx, cancel := withTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(conlluSystemPrompt),
			openai.UserMessage(text),
		},
		MaxTokens:   openai.Int(llmMaxTokens),
		Temperature: openai.Float(0),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return stripFences(resp.Choices[0].Message.Content), nil
}

// Name returns the backend identifier.
func (p *OpenAIParser) Name() string {
	return "openai"
}

// Model returns the configured model name.
func (p *OpenAIParser) Model() string {
	return p.model
}

// Close is a no-op.
func (p *OpenAIParser) Close() error {
	return nil
}

var _ Parser = (*OpenAIParser)(nil)
