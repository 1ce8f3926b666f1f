package job

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/mlcbuild/internal/registry"
	"github.com/vk/mlcbuild/internal/target"
)

// OutputSpec is where the backend writes the compiled model and in what form.
type OutputSpec struct {
	Path string              `toml:"path" yaml:"path" json:"path" validate:"required"`
	Kind registry.OutputKind `toml:"kind" yaml:"kind" json:"kind" validate:"required"`
}

var kindBySuffix = map[string]registry.OutputKind{
	".so":    registry.OutputSharedLibrary,
	".dylib": registry.OutputSharedLibrary,
	".dll":   registry.OutputSharedLibrary,
	".tar":   registry.OutputObjectArchive,
	".wasm":  registry.OutputWebAssembly,
}

// KindFromSuffix maps an output path's suffix to the artifact kind it names.
func KindFromSuffix(path string) (registry.OutputKind, bool) {
	kind, ok := kindBySuffix[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

// sharedLibrarySuffix is the shared library suffix native to a target OS.
func sharedLibrarySuffix(goos string) string {
	switch goos {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// checkOutputFormat verifies the path's kind can be produced for t. It returns
// the inferred kind, or an explanation of why the path does not fit. Any
// shared library suffix is accepted where the builder emits shared libraries.
func checkOutputFormat(path string, t target.Target) (registry.OutputKind, string) {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := kindBySuffix[ext]
	if !ok {
		return "", fmt.Sprintf("suffix %q is not one of .so, .dylib, .dll, .tar, .wasm", ext)
	}
	if !t.Builder.Produces(kind) {
		allowed := make([]string, len(t.Builder.Outputs))
		for i, k := range t.Builder.Outputs {
			allowed[i] = string(k)
		}
		return "", fmt.Sprintf("%s cannot be produced for %s (%s builds %s)",
			kind, t.Triple, t.Builder.Name, strings.Join(allowed, ", "))
	}
	return kind, ""
}

// foreignSharedLibrary reports the native suffix when path names a shared
// library whose suffix is not the usual one for the target OS.
func foreignSharedLibrary(path string, t target.Target) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if kindBySuffix[ext] != registry.OutputSharedLibrary {
		return "", false
	}
	want := sharedLibrarySuffix(t.OS)
	return want, ext != want
}
