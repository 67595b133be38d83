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

const defaultCoreNLPURL = "http://localhost:9000"

// CoreNLPParser talks to a Stanford CoreNLP server and requests CoNLL-U
// output from its depparse annotator.
type CoreNLPParser struct {
	baseURL    string
	language   string
	properties string
	client     *http.Client
}

// NewCoreNLPParser creates a new CoreNLP parser.
func NewCoreNLPParser(cfg Config) (*CoreNLPParser, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultCoreNLPURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	props := map[string]string{
		"annotators":   "tokenize,ssplit,pos,lemma,depparse",
		"outputFormat": "conllu",
	}
	propBytes, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal properties: %w", err)
	}

	if cfg.UseGPU {
		logger.Debug("GPU selection is a server-side setting for corenlp", "base_url", baseURL)
	}

	return &CoreNLPParser{
		baseURL:    baseURL,
		language:   cfg.Language,
		properties: string(propBytes),
		client:     &http.Client{Timeout: timeout},
	}, nil
}

// Parse posts text as the request body and returns the server's CoNLL-U.
func (p *CoreNLPParser) Parse(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("properties", p.properties)
	if p.language != "" {
		q.Set("pipelineLanguage", p.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/?"+q.Encode(), strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("CoreNLP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("CoreNLP returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return string(body), nil
}

// Name returns the backend identifier.
func (p *CoreNLPParser) Name() string {
	return "corenlp"
}

// Close releases idle connections.
func (p *CoreNLPParser) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

var _ Parser = (*CoreNLPParser)(nil)
