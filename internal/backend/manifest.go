package backend

import (
	"context"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/job"
)

// Format is a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --emit-format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid emit-format %q: must be 'toml', 'yaml' or 'json'", s)
}

// Encode serializes a manifest.
func Encode(m job.Manifest, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		return toml.Marshal(m)
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatJSON:
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported manifest format %q", f)
}

// ManifestWriter is a Backend that writes the job manifest to a writer.
type ManifestWriter struct {
	out    io.Writer
	format Format
}

// NewManifestWriter creates a manifest backend writing to out.
func NewManifestWriter(out io.Writer, format Format) *ManifestWriter {
	return &ManifestWriter{out: out, format: format}
}

// Compile encodes d and writes it.
func (w *ManifestWriter) Compile(ctx context.Context, d *job.Descriptor) error {
	logger := ctxlog.FromContext(ctx)

	data, err := Encode(d.Manifest(), w.format)
	if err != nil {
		return fmt.Errorf("failed to encode job manifest: %w", err)
	}
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("failed to write job manifest: %w", err)
	}

	logger.Debug("Job manifest written.", "id", d.ID(), "format", w.format, "bytes", len(data))
	return nil
}
