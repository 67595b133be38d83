package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/depparse/pkg/parser"
)

// runSettings is the resolved configuration of a parse run, merged from
// flags, environment and config file.
type runSettings struct {
	InputDir     string `validate:"required"`
	OutputDir    string `validate:"required"`
	UseGPU       bool
	Backend      string `validate:"required"`
	Model        string
	Language     string
	BaseURL      string `validate:"omitempty,url"`
	APIKey       string
	Command      []string
	Timeout      time.Duration `validate:"gte=0"`
	MaxRetries   int           `validate:"gte=0"`
	InputExt     string
	OutputExt    string `validate:"required"`
	Truncate     bool
	NoClean      bool
	Report       string
	ReportFormat string `validate:"oneof=text json jsonl yaml"`
}

var validate = validator.New()

func loadRunSettings() runSettings {
	return runSettings{
		InputDir:     viper.GetString("input_dir"),
		OutputDir:    viper.GetString("output_dir"),
		UseGPU:       viper.GetBool("use_gpu"),
		Backend:      viper.GetString("backend"),
		Model:        viper.GetString("model"),
		Language:     viper.GetString("language"),
		BaseURL:      viper.GetString("base_url"),
		APIKey:       viper.GetString("api_key"),
		Command:      strings.Fields(viper.GetString("command")),
		Timeout:      viper.GetDuration("timeout"),
		MaxRetries:   viper.GetInt("max_retries"),
		InputExt:     viper.GetString("input_ext"),
		OutputExt:    viper.GetString("output_ext"),
		Truncate:     viper.GetBool("truncate"),
		NoClean:      viper.GetBool("no_clean"),
		Report:       viper.GetString("report"),
		ReportFormat: strings.ToLower(viper.GetString("report_format")),
	}
}

// check validates s and returns every problem found.
func (s runSettings) check() error {
	var errs []error
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			errs = append(errs, fmt.Errorf("%s %s", settingName(e.Field()), formatValidationError(e)))
		}
	}
	if s.Backend != "" && !parser.IsRegistered(s.Backend) {
		errs = append(errs, fmt.Errorf("%w: %s (available: %s)", parser.ErrUnknownBackend, s.Backend, strings.Join(parser.Available(), ", ")))
	}
	if s.Backend == "command" && len(s.Command) == 0 {
		errs = append(errs, errors.New("--command is required for the command backend"))
	}
	return errors.Join(errs...)
}

func (s runSettings) parserConfig() parser.Config {
	return parser.Config{
		UseGPU:     s.UseGPU,
		Language:   s.Language,
		Model:      s.Model,
		BaseURL:    s.BaseURL,
		APIKey:     s.APIKey,
		Command:    s.Command,
		Timeout:    s.Timeout,
		MaxRetries: s.MaxRetries,
	}
}

var settingFlags = map[string]string{
	"InputDir":     "--input-dir",
	"OutputDir":    "--output-dir",
	"Backend":      "--backend",
	"BaseURL":      "--base-url",
	"Timeout":      "--timeout",
	"MaxRetries":   "--max-retries",
	"OutputExt":    "--output-ext",
	"ReportFormat": "--report-format",
}

// settingName maps a struct field to the flag that sets it.
func settingName(field string) string {
	if name, ok := settingFlags[field]; ok {
		return name
	}
	return field
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
