package modeltype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mlcbuild/internal/auto"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/modelconfig"
	"github.com/vk/mlcbuild/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func artifact(modelType string, classes ...string) *modelconfig.Artifact {
	values := map[string]cty.Value{}
	if modelType != "" {
		values["model_type"] = cty.StringVal(modelType)
	}
	if len(classes) > 0 {
		elems := make([]cty.Value, len(classes))
		for i, c := range classes {
			elems[i] = cty.StringVal(c)
		}
		values["architectures"] = cty.TupleVal(elems)
	}
	return modelconfig.NewArtifact("/models/test/config.json", values)
}

func TestInfer(t *testing.T) {
	reg := registry.New()

	testCases := []struct {
		name     string
		hint     auto.Hint
		artifact *modelconfig.Artifact
		want     registry.ModelType
		wantKind diag.Kind
	}{
		{
			name:     "explicit hint wins over config",
			hint:     auto.Explicit("mistral"),
			artifact: artifact("llama", "LlamaForCausalLM"),
			want:     "mistral",
		},
		{
			name:     "explicit unknown",
			hint:     auto.Explicit("t5"),
			artifact: artifact("llama"),
			wantKind: diag.UnknownModelType,
		},
		{
			name:     "auto keyword infers",
			hint:     auto.Parse("auto"),
			artifact: artifact("gpt_neox"),
			want:     "gpt_neox",
		},
		{
			name:     "inferred from architectures list",
			hint:     auto.Inferred(),
			artifact: artifact("", "GPTBigCodeForCausalLM"),
			want:     "gpt_bigcode",
		},
		{
			name:     "inferred from model_type",
			hint:     auto.Inferred(),
			artifact: artifact("phi-msft"),
			want:     "phi",
		},
		{
			name:     "no fingerprint",
			hint:     auto.Inferred(),
			artifact: artifact(""),
			wantKind: diag.ModelTypeUndetectable,
		},
		{
			name:     "unregistered fingerprint",
			hint:     auto.Inferred(),
			artifact: artifact("t5", "T5ForConditionalGeneration"),
			wantKind: diag.ModelTypeUndetectable,
		},
		{
			name:     "conflicting fingerprint is not guessed",
			hint:     auto.Inferred(),
			artifact: artifact("llama", "MistralForCausalLM"),
			wantKind: diag.ModelTypeUndetectable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Infer(context.Background(), tc.hint, tc.artifact, reg)
			if tc.wantKind != 0 {
				require.Error(t, err)
				assert.True(t, diag.IsKind(err, tc.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInfer_AmbiguityNamesCandidates(t *testing.T) {
	_, err := Infer(context.Background(), auto.Inferred(), artifact("llama", "MistralForCausalLM"), registry.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llama, mistral")
	assert.Contains(t, err.Error(), "--model-type")
}

func TestInfer_ExplicitRoundTrip(t *testing.T) {
	reg := registry.New()
	for _, name := range reg.ModelTypes() {
		got, err := Infer(context.Background(), auto.Explicit(string(name)), artifact(""), reg)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}
