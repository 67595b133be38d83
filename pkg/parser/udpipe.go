package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmylchreest/depparse/internal/logger"
)

const defaultUDPipeURL = "https://lindat.mff.cuni.cz/services/udpipe/api"

// UDPipeParser talks to a UDPipe 2 REST service, either the public LINDAT
// instance or a self-hosted udpipe2_server.
type UDPipeParser struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewUDPipeParser creates a new UDPipe parser.
func NewUDPipeParser(cfg Config) (*UDPipeParser, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultUDPipeURL
	}

	// UDPipe resolves a language name to its newest model, so the
	// language doubles as the model when no explicit model is set.
	model := cfg.Model
	if model == "" {
		model = cfg.Language
	}
	if model == "" {
		model = DefaultModels["udpipe"]
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	if cfg.UseGPU {
		logger.Debug("GPU selection is a server-side setting for udpipe", "base_url", baseURL)
	}

	return &UDPipeParser{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type udpipeResponse struct {
	Model  string `json:"model"`
	Result string `json:"result"`
}

// Parse sends text to the /process endpoint with tokenizer, tagger and
// parser enabled and returns the CoNLL-U result.
func (p *UDPipeParser) Parse(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("data", text)
	form.Set("model", p.model)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("parser", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/process", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("UDPipe request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("UDPipe returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var udResp udpipeResponse
	if err := json.NewDecoder(resp.Body).Decode(&udResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return udResp.Result, nil
}

// Name returns the backend identifier.
func (p *UDPipeParser) Name() string {
	return "udpipe"
}

// Model returns the configured model name.
func (p *UDPipeParser) Model() string {
	return p.model
}

// Close releases idle connections.
func (p *UDPipeParser) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

var _ Parser = (*UDPipeParser)(nil)
