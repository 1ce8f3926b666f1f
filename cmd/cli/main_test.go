package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	body := `{"architectures": ["LlamaForCausalLM"], "model_type": "llama", "max_position_embeddings": 2048}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0600))
	return dir
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EmitsManifestToStdout(t *testing.T) {
	t.Parallel()

	// Explicit device and host keep the run independent of the machine.
	args := []string{
		"--config", writeModel(t),
		"--quantization", "q4f16_1",
		"--device", "cuda",
		"--host", "x86-64",
		"--output", filepath.Join(t.TempDir(), "model.tar"),
	}
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	require.NoError(t, run(out, logs, args))
	assert.Contains(t, out.String(), "model_type = 'llama'")
	assert.Contains(t, out.String(), "kind = 'object archive'")
	assert.Contains(t, logs.String(), "Compile job resolved.")
	assert.NotContains(t, out.String(), "Compile job resolved.", "logs must not mix with the manifest")
}

func TestRun_EmitsManifestToFile(t *testing.T) {
	t.Parallel()

	emit := filepath.Join(t.TempDir(), "job.json")
	args := []string{
		"--config", writeModel(t),
		"--quantization", "q4f16_1",
		"--device", "vulkan",
		"--host", "aarch64",
		"-o", filepath.Join(t.TempDir(), "model.tar"),
		"--emit", emit,
		"--emit-format", "json",
	}
	out := &bytes.Buffer{}

	require.NoError(t, run(out, &bytes.Buffer{}, args))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(emit)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"model_type": "llama"`)
}

func TestRun_ResolutionErrorLeavesNoManifest(t *testing.T) {
	t.Parallel()

	emit := filepath.Join(t.TempDir(), "job.toml")
	args := []string{
		"--config", writeModel(t),
		"--quantization", "q4f16_1",
		"--device", "cuda",
		"--host", "x86-64",
		"--prefix-symbols", "1bad",
		"-o", filepath.Join(t.TempDir(), "model.tar"),
		"--emit", emit,
	}

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidSymbolPrefix")
	assert.NoFileExists(t, emit)
}
