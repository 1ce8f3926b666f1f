package modelconfig

import (
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Artifact is a located, parsed model configuration. It is read-only once
// returned by Locate.
type Artifact struct {
	path   string
	values map[string]cty.Value
}

// NewArtifact builds an artifact from already-parsed values. It is mostly
// useful in tests; the pipeline obtains artifacts from Locate.
func NewArtifact(path string, values map[string]cty.Value) *Artifact {
	copied := make(map[string]cty.Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Artifact{path: path, values: copied}
}

// Path returns the absolute path of the configuration file.
func (a *Artifact) Path() string {
	return a.path
}

// Keys returns the top-level property names in sorted order.
func (a *Artifact) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Has reports whether the property exists and is not null.
func (a *Artifact) Has(key string) bool {
	v, ok := a.values[key]
	return ok && !v.IsNull()
}

// Value returns the raw cty value of a property.
func (a *Artifact) Value(key string) (cty.Value, bool) {
	v, ok := a.values[key]
	return v, ok
}

// String returns a string property. Properties of any other type report false.
func (a *Artifact) String(key string) (string, bool) {
	v, ok := a.values[key]
	if !ok || v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.String) {
		return "", false
	}
	return v.AsString(), true
}

// Int returns a whole-number property.
func (a *Artifact) Int(key string) (int, bool) {
	v, ok := a.values[key]
	if !ok || v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return 0, false
	}
	var i int
	if err := gocty.FromCtyValue(v, &i); err != nil {
		return 0, false
	}
	return i, true
}

// Strings returns the string elements of a list property, skipping elements
// of other types. A missing or non-list property yields nil.
func (a *Artifact) Strings(key string) []string {
	v, ok := a.values[key]
	if !ok || v.IsNull() || !v.IsKnown() || !v.CanIterateElements() {
		return nil
	}
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() || !ev.IsKnown() || !ev.Type().Equals(cty.String) {
			continue
		}
		out = append(out, ev.AsString())
	}
	return out
}

// contextWindowKeys are the properties different model families use for the
// trained maximum sequence length, in lookup order.
var contextWindowKeys = []string{"max_sequence_length", "max_position_embeddings", "n_positions", "seq_length"}

// ContextWindow returns the maximum sequence length the configuration
// declares, and the property it came from.
func (a *Artifact) ContextWindow() (int, string, bool) {
	for _, key := range contextWindowKeys {
		if n, ok := a.Int(key); ok && n > 0 {
			return n, key, true
		}
	}
	return 0, "", false
}
