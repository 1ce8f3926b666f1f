package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vk/mlcbuild/internal/app"
	"github.com/vk/mlcbuild/internal/auto"
	"github.com/vk/mlcbuild/internal/backend"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mlcbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mlcbuild - resolves a model compilation request into a complete compile job.

Usage:
  mlcbuild --config PATH --quantization NAME --output FILE [options]

The resolved job is written as a manifest (see --emit) for the code generator.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to config.json, or to the directory that contains it. (required)")
	quantFlag := flagSet.String("quantization", "", "Quantization format, e.g. q4f16_1. (required)")
	modelTypeFlag := flagSet.String("model-type", auto.Keyword, "Model architecture, e.g. llama. Inferred from the config when 'auto'.")
	deviceFlag := flagSet.String("device", auto.Keyword, "GPU device to compile for. Inferred from locally available devices when 'auto'.")
	hostFlag := flagSet.String("host", auto.Keyword, "Host CPU ISA: arm, arm64, aarch64, x86-64. Inferred from the local CPU when 'auto'.")
	optFlag := flagSet.String("opt", "O2", "Optimization level O0-O3, or flags such as \"cutlass_attn=1;cublas_gemm=0\" applied on top of O2.")
	prefixFlag := flagSet.String("prefix-symbols", "", "Prefix added to every exported symbol. Letters, digits and '_', not starting with a digit.")
	outputFlag := flagSet.String("output", "", "Output file. The suffix selects the kind: .so/.dylib/.dll (shared), .tar (objects), .wasm (web). (required)")
	oFlag := flagSet.String("o", "", "Output file (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	emitFlag := flagSet.String("emit", "-", "Where to write the job manifest. '-' is standard output.")
	emitFormatFlag := flagSet.String("emit-format", "toml", "Manifest format. Options: 'toml', 'yaml', 'json'.")

	var maxSeqLen *int
	flagSet.Func("max-sequence-length", "Override the maximum sequence length declared in the config.", func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		maxSeqLen = &n
		return nil
	})

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	slog.Debug("Arguments parsed successfully.")

	outputPath := *outputFlag
	if *oFlag != "" {
		if outputPath != "" && outputPath != *oFlag {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("conflicting output paths: --output %q and -o %q", outputPath, *oFlag)}
		}
		outputPath = *oFlag
	}

	emitFormat, err := backend.ParseFormat(*emitFormatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath:        *configFlag,
		Quantization:      *quantFlag,
		ModelType:         auto.Parse(*modelTypeFlag),
		Device:            auto.Parse(*deviceFlag),
		Host:              auto.Parse(*hostFlag),
		Opt:               *optFlag,
		PrefixSymbols:     *prefixFlag,
		MaxSequenceLength: maxSeqLen,
		Output:            outputPath,
		LogFormat:         strings.ToLower(*logFormatFlag),
		LogLevel:          strings.ToLower(*logLevelFlag),
		EmitPath:          *emitFlag,
		EmitFormat:        emitFormat,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config.ConfigPath, "output", config.Output)
	return config, false, nil
}
