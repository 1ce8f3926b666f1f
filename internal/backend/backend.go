// Package backend defines the hand-off point between the resolution pipeline
// and a code generator, and provides the manifest backend the binary uses by
// default: it writes the resolved job as a TOML, YAML or JSON document for an
// external code generator to pick up.
package backend

import (
	"context"

	"github.com/vk/mlcbuild/internal/job"
)

// Backend consumes a resolved compile job.
type Backend interface {
	Compile(ctx context.Context, d *job.Descriptor) error
}

// Func adapts a function to the Backend interface.
type Func func(ctx context.Context, d *job.Descriptor) error

// Compile calls f.
func (f Func) Compile(ctx context.Context, d *job.Descriptor) error {
	return f(ctx, d)
}
