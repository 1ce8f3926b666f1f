package registry

import "slices"

// ModelType names a registered model architecture, e.g. "llama".
type ModelType string

// Architecture describes a model architecture and the config.json
// fingerprint that identifies it.
type Architecture struct {
	Name ModelType
	// ConfigModelTypes are the values of the "model_type" key that identify
	// this architecture.
	ConfigModelTypes []string
	// Classes are entries of the "architectures" list that identify this
	// architecture.
	Classes []string
}

// Matches reports whether a config with the given "model_type" value and
// "architectures" list carries this architecture's fingerprint.
func (a Architecture) Matches(configModelType string, classes []string) bool {
	if configModelType != "" && slices.Contains(a.ConfigModelTypes, configModelType) {
		return true
	}
	for _, c := range classes {
		if slices.Contains(a.Classes, c) {
			return true
		}
	}
	return false
}

var architectureTable = []Architecture{
	{
		Name:             "llama",
		ConfigModelTypes: []string{"llama"},
		Classes:          []string{"LlamaForCausalLM"},
	},
	{
		Name:             "mistral",
		ConfigModelTypes: []string{"mistral"},
		Classes:          []string{"MistralForCausalLM"},
	},
	{
		Name:             "gpt_neox",
		ConfigModelTypes: []string{"gpt_neox"},
		Classes:          []string{"GPTNeoXForCausalLM"},
	},
	{
		Name:             "gpt_bigcode",
		ConfigModelTypes: []string{"gpt_bigcode"},
		Classes:          []string{"GPTBigCodeForCausalLM"},
	},
	{
		Name:             "phi",
		ConfigModelTypes: []string{"phi", "phi-msft"},
		Classes:          []string{"PhiForCausalLM"},
	},
	{
		Name:             "gpt2",
		ConfigModelTypes: []string{"gpt2"},
		Classes:          []string{"GPT2LMHeadModel"},
	},
}
