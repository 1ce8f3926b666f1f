// Package modeltype decides which registered architecture a compile job
// targets. An explicit --model-type always wins; otherwise the config
// artifact's fingerprint must match exactly one registered architecture.
package modeltype

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/mlcbuild/internal/auto"
	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/modelconfig"
	"github.com/vk/mlcbuild/internal/registry"
)

// FlagName is the command-line flag this stage resolves.
const FlagName = "model-type"

// Config keys that carry the architecture fingerprint.
const (
	keyModelType     = "model_type"
	keyArchitectures = "architectures"
)

// Infer resolves the model type for a job.
func Infer(ctx context.Context, hint auto.Hint, artifact *modelconfig.Artifact, reg *registry.Registry) (registry.ModelType, error) {
	logger := ctxlog.FromContext(ctx)

	if value, ok := hint.Value(); ok {
		name := registry.ModelType(value)
		if _, known := reg.Architecture(name); !known {
			return "", diag.New(diag.UnknownModelType, diag.StageModelType, FlagName, value,
				"expected one of "+joinModelTypes(reg.ModelTypes()))
		}
		logger.Debug("Using explicit model type.", "model_type", name)
		return name, nil
	}

	configModelType, _ := artifact.String(keyModelType)
	classes := artifact.Strings(keyArchitectures)
	logger.Debug("Inferring model type from config.", "file", artifact.Path(), "model_type", configModelType, "architectures", classes)

	matches := reg.MatchArchitectures(configModelType, classes)
	switch len(matches) {
	case 1:
		logger.Info("Model type inferred from config.", "model_type", matches[0], "file", artifact.Path())
		return matches[0], nil
	case 0:
		return "", diag.New(diag.ModelTypeUndetectable, diag.StageModelType, FlagName, hint.String(),
			fmt.Sprintf("%s (model_type=%q, architectures=%v) matches no registered architecture; pass one of %s explicitly",
				artifact.Path(), configModelType, classes, joinModelTypes(reg.ModelTypes())))
	default:
		return "", diag.New(diag.ModelTypeUndetectable, diag.StageModelType, FlagName, hint.String(),
			fmt.Sprintf("%s matches several architectures (%s); pass one explicitly",
				artifact.Path(), joinModelTypes(matches)))
	}
}

func joinModelTypes(names []registry.ModelType) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
