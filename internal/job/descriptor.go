package job

import (
	"github.com/vk/mlcbuild/internal/modelconfig"
	"github.com/vk/mlcbuild/internal/opt"
	"github.com/vk/mlcbuild/internal/registry"
	"github.com/vk/mlcbuild/internal/target"
)

// Descriptor is a fully resolved compile job. All fields are set by
// Assemble and cannot be changed afterwards.
type Descriptor struct {
	id                string
	config            *modelconfig.Artifact
	modelType         registry.ModelType
	target            target.Target
	quantization      registry.Quantization
	opt               opt.Config
	symbolPrefix      string
	output            OutputSpec
	maxSequenceLength *int
}

func (d *Descriptor) ID() string                           { return d.id }
func (d *Descriptor) Config() *modelconfig.Artifact        { return d.config }
func (d *Descriptor) ModelType() registry.ModelType        { return d.modelType }
func (d *Descriptor) Target() target.Target                { return d.target }
func (d *Descriptor) Quantization() registry.Quantization { return d.quantization }
func (d *Descriptor) Opt() opt.Config                      { return d.opt }
func (d *Descriptor) SymbolPrefix() string                 { return d.symbolPrefix }
func (d *Descriptor) Output() OutputSpec                   { return d.output }

// MaxSequenceLength returns the user's override, if one was given.
func (d *Descriptor) MaxSequenceLength() (int, bool) {
	if d.maxSequenceLength == nil {
		return 0, false
	}
	return *d.maxSequenceLength, true
}

// Manifest is the serializable form of a Descriptor, as written for an
// external code generator.
type Manifest struct {
	ID                string                `toml:"id" yaml:"id" json:"id" validate:"required,uuid"`
	Config            ConfigRef             `toml:"config" yaml:"config" json:"config"`
	ModelType         registry.ModelType    `toml:"model_type" yaml:"model_type" json:"model_type" validate:"required,ne=auto"`
	Quantization      registry.Quantization `toml:"quantization" yaml:"quantization" json:"quantization"`
	Target            target.Target         `toml:"target" yaml:"target" json:"target"`
	Opt               opt.Config            `toml:"opt" yaml:"opt" json:"opt"`
	SymbolPrefix      string                `toml:"prefix_symbols" yaml:"prefix_symbols" json:"prefix_symbols" validate:"symbolprefix"`
	Output            OutputSpec            `toml:"output" yaml:"output" json:"output"`
	MaxSequenceLength *int                  `toml:"max_sequence_length,omitempty" yaml:"max_sequence_length,omitempty" json:"max_sequence_length,omitempty" validate:"omitempty,gt=0"`
}

// ConfigRef identifies the model configuration a job was resolved from.
type ConfigRef struct {
	Path string `toml:"path" yaml:"path" json:"path" validate:"required"`
	// ContextWindow is the maximum sequence length the configuration declares,
	// or 0 if it declares none.
	ContextWindow int `toml:"context_window" yaml:"context_window" json:"context_window"`
}

// Manifest returns a serializable copy of the descriptor.
func (d *Descriptor) Manifest() Manifest {
	window, _, _ := d.config.ContextWindow()
	m := Manifest{
		ID:           d.id,
		Config:       ConfigRef{Path: d.config.Path(), ContextWindow: window},
		ModelType:    d.modelType,
		Quantization: d.quantization,
		Target:       d.target,
		Opt:          d.opt,
		SymbolPrefix: d.symbolPrefix,
		Output:       d.output,
	}
	m.Target.Builder.Outputs = append([]registry.OutputKind(nil), d.target.Builder.Outputs...)
	if d.maxSequenceLength != nil {
		n := *d.maxSequenceLength
		m.MaxSequenceLength = &n
	}
	return m
}
