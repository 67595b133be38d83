package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Environment variables exported to the child process of the command backend.
const (
	EnvUseGPU   = "DEPPARSE_USE_GPU"
	EnvLanguage = "DEPPARSE_LANGUAGE"
	EnvModel    = "DEPPARSE_MODEL"
)

// CommandParser runs an external program once per call. The text is written
// to the program's stdin and its stdout is taken as the CoNLL block. This is
// how Python toolkits such as spaCy or Stanza are plugged in.
type CommandParser struct {
	argv []string
	env  []string
	cfg  Config
}

// NewCommandParser creates a new command parser.
func NewCommandParser(cfg Config) (*CommandParser, error) {
	if len(cfg.Command) == 0 || strings.TrimSpace(cfg.Command[0]) == "" {
		return nil, errors.New("command backend requires a command")
	}

	gpu := "0"
	if cfg.UseGPU {
		gpu = "1"
	}
	env := append(os.Environ(), EnvUseGPU+"="+gpu)
	if cfg.Language != "" {
		env = append(env, EnvLanguage+"="+cfg.Language)
	}
	if cfg.Model != "" {
		env = append(env, EnvModel+"="+cfg.Model)
	}

	return &CommandParser{
		argv: cfg.Command,
		env:  env,
		cfg:  cfg,
	}, nil
}

// Parse runs the command with text on stdin.
func (p *CommandParser) Parse(ctx context.Context, text string) (string, error) {
	ctx, cancel := withTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	cmd.Env = p.env
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%s: %w", p.argv[0], err)
		}
		return "", fmt.Errorf("%s: %w: %s", p.argv[0], err, msg)
	}

	return stdout.String(), nil
}

// Name returns the backend identifier.
func (p *CommandParser) Name() string {
	return "command"
}

// Close is a no-op; each call starts its own process.
func (p *CommandParser) Close() error {
	return nil
}

var _ Parser = (*CommandParser)(nil)
