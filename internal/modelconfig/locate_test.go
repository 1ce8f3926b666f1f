package modelconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mlcbuild/internal/diag"
)

const llamaConfig = `{
  "architectures": ["LlamaForCausalLM"],
  "model_type": "llama",
  "hidden_size": 4096,
  "max_position_embeddings": 4096,
  "rope_theta": 10000.0,
  "tie_word_embeddings": false,
  "rope_scaling": null
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLocate_DirectoryWithOneConfig(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "config.json", llamaConfig)
	writeFile(t, dir, "tokenizer.json", `{"version": "1.0"}`)

	artifact, err := Locate(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, want, artifact.Path())

	mt, ok := artifact.String("model_type")
	require.True(t, ok)
	assert.Equal(t, "llama", mt)
	assert.Equal(t, []string{"LlamaForCausalLM"}, artifact.Strings("architectures"))

	hidden, ok := artifact.Int("hidden_size")
	require.True(t, ok)
	assert.Equal(t, 4096, hidden)

	_, ok = artifact.Int("rope_theta")
	assert.True(t, ok, "whole floats convert to int")
	_, ok = artifact.String("hidden_size")
	assert.False(t, ok, "numbers are not strings")
	assert.False(t, artifact.Has("rope_scaling"), "null properties are absent")
	assert.True(t, artifact.Has("tie_word_embeddings"))
}

func TestLocate_FilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom-name.json", llamaConfig)

	artifact, err := Locate(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, artifact.Path())
}

func TestLocate_NeverPicksArbitrarily(t *testing.T) {
	testCases := []struct {
		name  string
		files []string
	}{
		{name: "no recognized file", files: []string{"tokenizer.json"}},
		{name: "empty directory"},
		{name: "two recognized files", files: []string{"config.json", "params.json"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tc.files {
				writeFile(t, dir, f, llamaConfig)
			}

			for i := 0; i < 3; i++ {
				_, err := Locate(context.Background(), dir)
				require.Error(t, err)
				assert.True(t, diag.IsKind(err, diag.ConfigNotFound), "got %v", err)
			}
		})
	}
}

func TestLocate_AmbiguityListsCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.json", llamaConfig)
	writeFile(t, dir, "params.json", `{"dim": 4096}`)

	_, err := Locate(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.json, params.json")
}

func TestLocate_NestedConfigIsIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))
	writeFile(t, filepath.Join(dir, "sub"), "config.json", llamaConfig)

	_, err := Locate(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.ConfigNotFound))
}

func TestLocate_MissingPath(t *testing.T) {
	_, err := Locate(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.ConfigNotFound))

	_, err = Locate(context.Background(), "")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.ConfigNotFound))
}

func TestLocate_InvalidDocuments(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "syntax error", body: `{"model_type": "llama",`},
		{name: "top-level array", body: `["llama"]`},
		{name: "empty file", body: ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "config.json", tc.body)

			_, err := Locate(context.Background(), dir)
			require.Error(t, err)
			assert.True(t, diag.IsKind(err, diag.ConfigInvalid), "got %v", err)
		})
	}
}

func TestArtifact_ContextWindow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.json", `{"n_positions": 1024, "max_sequence_length": 2048}`)

	artifact, err := Locate(context.Background(), dir)
	require.NoError(t, err)

	n, key, ok := artifact.ContextWindow()
	require.True(t, ok)
	assert.Equal(t, 2048, n)
	assert.Equal(t, "max_sequence_length", key)

	_, _, ok = NewArtifact("x", nil).ContextWindow()
	assert.False(t, ok)
}

func TestArtifact_Keys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.json", `{"b": 1, "a": "x"}`)

	artifact, err := Locate(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, artifact.Keys())
}
