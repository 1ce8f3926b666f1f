package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/mlcbuild/internal/ctxlog"
)

// ValidateRegistry performs a consistency check over the tables. Every
// fingerprint must identify at most one architecture, every quantization must
// be fully described, and every platform must have a builder whose outputs
// the assembler knows how to name.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	claimedModelType := make(map[string]ModelType)
	claimedClass := make(map[string]ModelType)
	for _, name := range r.ModelTypes() {
		arch := r.architectures[name]
		if strings.EqualFold(string(name), "auto") {
			errs = append(errs, "architecture 'auto' collides with the inference keyword")
		}
		if len(arch.ConfigModelTypes) == 0 && len(arch.Classes) == 0 {
			errs = append(errs, fmt.Sprintf("architecture '%s': no fingerprint; it can only be selected explicitly", name))
		}
		for _, mt := range arch.ConfigModelTypes {
			if owner, ok := claimedModelType[mt]; ok {
				errs = append(errs, fmt.Sprintf("model_type '%s' is claimed by both '%s' and '%s'", mt, owner, name))
				continue
			}
			claimedModelType[mt] = name
		}
		for _, c := range arch.Classes {
			if owner, ok := claimedClass[c]; ok {
				errs = append(errs, fmt.Sprintf("architecture class '%s' is claimed by both '%s' and '%s'", c, owner, name))
				continue
			}
			claimedClass[c] = name
		}
	}

	for _, name := range r.QuantizationNames() {
		q := r.quantizations[name]
		if q.Kind != KindGroupQuant && q.Kind != KindAWQ {
			errs = append(errs, fmt.Sprintf("quantization '%s': unknown kind '%s'", name, q.Kind))
		}
		if q.GroupSize <= 0 {
			errs = append(errs, fmt.Sprintf("quantization '%s': group size must be positive, got %d", name, q.GroupSize))
		}
		if q.QuantizeDType == "" || q.StorageDType == "" || q.ModelDType == "" {
			errs = append(errs, fmt.Sprintf("quantization '%s': dtypes must all be set", name))
		}
	}

	for _, p := range []Platform{PlatformDefault, PlatformIPhone, PlatformAndroid, PlatformWeb} {
		b, ok := r.builders[p]
		if !ok {
			errs = append(errs, fmt.Sprintf("platform '%s': no build function registered", p))
			continue
		}
		if len(b.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("build function '%s': produces no outputs", b.Name))
		}
		for _, kind := range b.Outputs {
			if !slices.Contains(KnownOutputKinds, kind) {
				errs = append(errs, fmt.Sprintf("build function '%s': unknown output kind '%s'", b.Name, kind))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.",
		"architectures", len(r.architectures),
		"quantizations", len(r.quantizations),
		"builders", len(r.builders))
	return nil
}
