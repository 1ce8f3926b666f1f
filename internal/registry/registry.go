package registry

import "slices"

// Registry is a read-only view over the static tables. It is safe to share,
// although each pipeline run creates its own.
type Registry struct {
	architectures map[ModelType]Architecture
	quantizations map[string]Quantization
	builders      map[Platform]Builder
}

// New creates a Registry over the built-in tables.
func New() *Registry {
	return newRegistry(architectureTable, quantizationTable, builderTable)
}

func newRegistry(archs []Architecture, quants []Quantization, builders []Builder) *Registry {
	r := &Registry{
		architectures: make(map[ModelType]Architecture, len(archs)),
		quantizations: make(map[string]Quantization, len(quants)),
		builders:      make(map[Platform]Builder, len(builders)),
	}
	for _, a := range archs {
		r.architectures[a.Name] = a
	}
	for _, q := range quants {
		r.quantizations[q.Name] = q
	}
	for _, b := range builders {
		r.builders[b.Platform] = b
	}
	return r
}

// Architecture looks up a model architecture by name.
func (r *Registry) Architecture(name ModelType) (Architecture, bool) {
	a, ok := r.architectures[name]
	return a, ok
}

// ModelTypes returns every registered architecture name in sorted order.
func (r *Registry) ModelTypes() []ModelType {
	names := make([]ModelType, 0, len(r.architectures))
	for name := range r.architectures {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MatchArchitectures returns, in sorted order, every architecture whose
// signature matches the config's "model_type" value or any of its
// "architectures" class names. Either argument may be empty.
func (r *Registry) MatchArchitectures(configModelType string, classes []string) []ModelType {
	var matches []ModelType
	for _, name := range r.ModelTypes() {
		if r.architectures[name].Matches(configModelType, classes) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Quantization looks up a quantization scheme by name.
func (r *Registry) Quantization(name string) (Quantization, bool) {
	q, ok := r.quantizations[name]
	return q, ok
}

// QuantizationNames returns every registered scheme name in sorted order.
func (r *Registry) QuantizationNames() []string {
	names := make([]string, 0, len(r.quantizations))
	for name := range r.quantizations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builder returns the build function for a target triple.
func (r *Registry) Builder(triple string) (Builder, bool) {
	b, ok := r.builders[PlatformOf(triple)]
	return b, ok
}
