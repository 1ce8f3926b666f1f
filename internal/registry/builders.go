package registry

import (
	"slices"
	"strings"
)

// OutputKind is the artifact format a build function produces.
type OutputKind string

const (
	OutputSharedLibrary OutputKind = "shared library"
	OutputObjectArchive OutputKind = "object archive"
	OutputWebAssembly   OutputKind = "web-assembly module"
)

// KnownOutputKinds lists every output kind the assembler can infer from a path.
var KnownOutputKinds = []OutputKind{OutputSharedLibrary, OutputObjectArchive, OutputWebAssembly}

// Platform groups target triples that share a build function.
type Platform string

const (
	PlatformDefault Platform = "default"
	PlatformIPhone  Platform = "iphone"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// PlatformOf classifies an LLVM target triple.
func PlatformOf(triple string) Platform {
	switch {
	case strings.HasPrefix(triple, "wasm32-") || strings.HasPrefix(triple, "wasm64-"):
		return PlatformWeb
	case strings.Contains(triple, "-ios"):
		return PlatformIPhone
	case strings.Contains(triple, "-android"):
		return PlatformAndroid
	default:
		return PlatformDefault
	}
}

// Builder is a reference to a code generator build function. The pipeline
// selects one; the backend invokes it by name.
type Builder struct {
	Name     string       `toml:"name" yaml:"name" json:"name"`
	Platform Platform     `toml:"platform" yaml:"platform" json:"platform"`
	Outputs  []OutputKind `toml:"outputs" yaml:"outputs" json:"outputs"`
}

// Produces reports whether the builder can emit the given output kind.
func (b Builder) Produces(kind OutputKind) bool {
	return slices.Contains(b.Outputs, kind)
}

var builderTable = []Builder{
	{
		Name:     "build_default",
		Platform: PlatformDefault,
		Outputs:  []OutputKind{OutputSharedLibrary, OutputObjectArchive},
	},
	{
		Name:     "build_iphone",
		Platform: PlatformIPhone,
		Outputs:  []OutputKind{OutputObjectArchive},
	},
	{
		Name:     "build_android",
		Platform: PlatformAndroid,
		Outputs:  []OutputKind{OutputObjectArchive},
	},
	{
		Name:     "build_webgpu",
		Platform: PlatformWeb,
		Outputs:  []OutputKind{OutputWebAssembly},
	},
}
