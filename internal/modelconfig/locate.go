package modelconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// FlagName is the command-line flag the locator resolves.
const FlagName = "config"

// RecognizedNames are the file names accepted as a model configuration when
// the user points at a directory.
var RecognizedNames = []string{"config.json", "params.json"}

// Locate resolves path to exactly one configuration artifact. A file path is
// parsed directly. A directory must contain exactly one recognized
// configuration file at its top level; zero or several candidates both fail
// with diag.ConfigNotFound, the latter listing every candidate.
func Locate(ctx context.Context, path string) (*Artifact, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Locating model configuration.", "path", path)

	if strings.TrimSpace(path) == "" {
		return nil, diag.New(diag.ConfigNotFound, diag.StageLocate, FlagName, path, "path is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, diag.Wrap(err, diag.ConfigNotFound, diag.StageLocate, FlagName, path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, diag.Wrap(err, diag.ConfigNotFound, diag.StageLocate, FlagName, path)
	}

	file := abs
	if info.IsDir() {
		candidates, err := fsutil.FindFilesByName(abs, RecognizedNames...)
		if err != nil {
			return nil, diag.Wrap(err, diag.ConfigNotFound, diag.StageLocate, FlagName, path)
		}
		logger.Debug("Scanned directory for configuration files.", "dir", abs, "candidates", candidates)

		switch len(candidates) {
		case 0:
			return nil, diag.New(diag.ConfigNotFound, diag.StageLocate, FlagName, path,
				fmt.Sprintf("directory contains none of %s", strings.Join(RecognizedNames, ", ")))
		case 1:
			file = candidates[0]
		default:
			names := make([]string, len(candidates))
			for i, c := range candidates {
				names[i] = filepath.Base(c)
			}
			return nil, diag.New(diag.ConfigNotFound, diag.StageLocate, FlagName, path,
				fmt.Sprintf("ambiguous: directory contains %s; pass the file path instead", strings.Join(names, ", ")))
		}
	} else if !info.Mode().IsRegular() {
		return nil, diag.New(diag.ConfigNotFound, diag.StageLocate, FlagName, path, "not a regular file or directory")
	}

	artifact, err := Load(file)
	if err != nil {
		return nil, diag.Wrap(err, diag.ConfigInvalid, diag.StageLocate, FlagName, path)
	}

	logger.Debug("Model configuration loaded.", "file", artifact.Path(), "keys", len(artifact.values))
	return artifact, nil
}

// Load parses a single JSON configuration file. The document must be a JSON
// object; each property becomes one artifact value.
func Load(file string) (*Artifact, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseJSONFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read properties of %s: %w", file, diags)
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate property %q in %s: %w", name, file, diags)
		}
		values[name] = v
	}

	return &Artifact{path: file, values: values}, nil
}
