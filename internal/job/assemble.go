package job

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/fsutil"
	"github.com/vk/mlcbuild/internal/modelconfig"
	"github.com/vk/mlcbuild/internal/opt"
	"github.com/vk/mlcbuild/internal/registry"
	"github.com/vk/mlcbuild/internal/target"
)

// Flag names validated here.
const (
	QuantizationFlag = "quantization"
	PrefixFlag       = "prefix-symbols"
	OutputFlag       = "output"
)

var symbolPrefixRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Inputs are the resolved stage results plus the values only the assembler
// checks.
type Inputs struct {
	Config            *modelconfig.Artifact
	ModelType         registry.ModelType
	Target            *target.Target
	Opt               opt.Config
	Quantization      string
	SymbolPrefix      string
	Output            string
	MaxSequenceLength *int
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("symbolprefix", func(fl validator.FieldLevel) bool {
		return ValidSymbolPrefix(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateManifest, Manifest{})
	return v
}

// validateManifest checks the relations between manifest fields that field
// tags cannot express.
func validateManifest(sl validator.StructLevel) {
	m := sl.Current().Interface().(Manifest)
	if m.Output.Kind != "" && !m.Target.Builder.Produces(m.Output.Kind) {
		sl.ReportError(m.Output.Kind, "Output.Kind", "Kind", "builderoutput", m.Target.Builder.Name)
	}
	if m.Output.Path != "" && !filepath.IsAbs(m.Output.Path) {
		sl.ReportError(m.Output.Path, "Output.Path", "Path", "abspath", "")
	}
}

// ValidSymbolPrefix reports whether s can prefix exported symbols: empty, or
// a C identifier.
func ValidSymbolPrefix(s string) bool {
	return s == "" || symbolPrefixRegex.MatchString(s)
}

// Assemble validates the combined inputs and returns the job descriptor.
// Checks run in a fixed order and the first failure is returned: output
// directory, output format, symbol prefix, quantization.
func Assemble(ctx context.Context, in Inputs, reg *registry.Registry) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	if in.Config == nil || in.Target == nil || in.ModelType == "" {
		return nil, errors.New("assemble: config, model type and target must be resolved first")
	}

	if in.Output == "" {
		return nil, diag.New(diag.OutputDirectoryMissing, diag.StageAssemble, OutputFlag, in.Output, "path is empty")
	}
	abs, err := filepath.Abs(in.Output)
	if err != nil {
		return nil, diag.Wrap(err, diag.OutputDirectoryMissing, diag.StageAssemble, OutputFlag, in.Output)
	}
	parent := filepath.Dir(abs)
	if !fsutil.IsDir(parent) {
		return nil, diag.New(diag.OutputDirectoryMissing, diag.StageAssemble, OutputFlag, in.Output,
			fmt.Sprintf("directory does not exist: %s", parent))
	}

	kind, why := checkOutputFormat(abs, *in.Target)
	if why != "" {
		return nil, diag.New(diag.UnsupportedOutputFormat, diag.StageAssemble, OutputFlag, in.Output, why)
	}
	if native, foreign := foreignSharedLibrary(abs, *in.Target); foreign {
		logger.Warn("Output suffix is not the usual shared library suffix for the target OS.",
			"output", abs, "os", in.Target.OS, "usual_suffix", native)
	}

	if !ValidSymbolPrefix(in.SymbolPrefix) {
		return nil, diag.New(diag.InvalidSymbolPrefix, diag.StageAssemble, PrefixFlag, in.SymbolPrefix,
			"it should only consist of numbers (0-9), letters (A-Z, a-z) and underscore (_), and not start with a number")
	}

	quant, ok := reg.Quantization(in.Quantization)
	if !ok {
		return nil, diag.New(diag.UnknownQuantization, diag.StageAssemble, QuantizationFlag, in.Quantization,
			fmt.Sprintf("expected one of %v", reg.QuantizationNames()))
	}

	optCfg, dropped := in.Opt.ForDevice(string(in.Target.Device))
	if len(dropped) > 0 {
		logger.Warn("Optimization toggles not supported by the device were disabled.", "device", in.Target.Device, "disabled", dropped)
	}

	d := &Descriptor{
		id:           uuid.NewString(),
		config:       in.Config,
		modelType:    in.ModelType,
		target:       *in.Target,
		quantization: quant,
		opt:          optCfg,
		symbolPrefix: in.SymbolPrefix,
		output:       OutputSpec{Path: abs, Kind: kind},
	}
	if in.MaxSequenceLength != nil {
		n := *in.MaxSequenceLength
		d.maxSequenceLength = &n
		if window, key, ok := in.Config.ContextWindow(); ok && window != n {
			logger.Info("Overriding maximum sequence length from config.", "config_key", key, "config_value", window, "override", n)
		}
	}

	if err := validate.Struct(d.Manifest()); err != nil {
		return nil, fmt.Errorf("assembled descriptor is inconsistent: %w", err)
	}

	logger.Debug("Job descriptor assembled.",
		"id", d.id,
		"model_type", d.modelType,
		"quantization", quant.Name,
		"triple", d.target.Triple,
		"opt", d.opt.String(),
		"output", d.output.Path,
		"output_kind", d.output.Kind,
		"max_sequence_length", formatOptionalInt(d.maxSequenceLength))
	return d, nil
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return "unset"
	}
	return strconv.Itoa(*n)
}
