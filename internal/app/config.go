package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vk/mlcbuild/internal/auto"
	"github.com/vk/mlcbuild/internal/backend"
)

// Config holds everything one pipeline run needs. Hints left as
// auto.Inferred are resolved by the pipeline.
type Config struct {
	ConfigPath        string `validate:"required"`
	Quantization      string `validate:"required"`
	ModelType         auto.Hint
	Device            auto.Hint
	Host              auto.Hint
	Opt               string
	PrefixSymbols     string
	MaxSequenceLength *int  `validate:"omitempty,gt=0"`
	Output            string `validate:"required"`

	LogFormat  string         `validate:"oneof=text json"`
	LogLevel   string         `validate:"oneof=debug info warn error"`
	EmitPath   string         `validate:"required"`
	EmitFormat backend.Format `validate:"oneof=toml yaml json"`
}

// flagNames maps Config fields to the command-line flags that set them, so
// validation errors can name what the user has to fix.
var flagNames = map[string]string{
	"ConfigPath":        "--config",
	"Quantization":      "--quantization",
	"Output":            "--output",
	"MaxSequenceLength": "--max-sequence-length",
	"LogFormat":         "--log-format",
	"LogLevel":          "--log-level",
	"EmitPath":          "--emit",
	"EmitFormat":        "--emit-format",
}

var configValidator = validator.New()

// NewConfig applies defaults and checks that required fields are present.
// It does not resolve anything; that is the pipeline's job.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Opt == "" {
		cfg.Opt = "O2"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.EmitPath == "" {
		cfg.EmitPath = "-"
	}
	if cfg.EmitFormat == "" {
		cfg.EmitFormat = backend.FormatTOML
	}

	if err := configValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			flag := flagNames[fe.Field()]
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required", flag))
			case "gt":
				msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", flag, fe.Param()))
			case "oneof":
				msgs = append(msgs, fmt.Sprintf("invalid %s %q: must be one of %s", flag, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", ")))
			default:
				msgs = append(msgs, fmt.Sprintf("invalid %s", flag))
			}
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}

	return &cfg, nil
}
