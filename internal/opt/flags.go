// Package opt parses the --opt value into an optimization configuration.
//
// The value is either a level O0..O3 naming a preset, or a list of
// `name=0|1` assignments separated by ';'. Assignments always modify the O2
// preset; they never start from all-off. Parsing is split into Preset,
// ParseOverrides and ApplyOverrides so each step can be used and tested alone.
package opt

import (
	"fmt"
	"strings"
)

// Flag names a single code-generation optimization toggle.
type Flag string

const (
	CutlassAttn Flag = "cutlass_attn"
	CutlassNorm Flag = "cutlass_norm"
	CublasGemm  Flag = "cublas_gemm"
	CUDAGraph   Flag = "cudagraph"
)

// Flags lists every known toggle in canonical order.
var Flags = []Flag{CutlassAttn, CutlassNorm, CublasGemm, CUDAGraph}

// IsKnown reports whether f is a recognized toggle.
func IsKnown(f Flag) bool {
	for _, k := range Flags {
		if k == f {
			return true
		}
	}
	return false
}

// Config holds a value for every known toggle.
type Config struct {
	CutlassAttn bool `toml:"cutlass_attn" yaml:"cutlass_attn" json:"cutlass_attn"`
	CutlassNorm bool `toml:"cutlass_norm" yaml:"cutlass_norm" json:"cutlass_norm"`
	CublasGemm  bool `toml:"cublas_gemm" yaml:"cublas_gemm" json:"cublas_gemm"`
	CUDAGraph   bool `toml:"cudagraph" yaml:"cudagraph" json:"cudagraph"`
}

// Get returns the value of a toggle. Unknown flags read as false.
func (c Config) Get(f Flag) bool {
	switch f {
	case CutlassAttn:
		return c.CutlassAttn
	case CutlassNorm:
		return c.CutlassNorm
	case CublasGemm:
		return c.CublasGemm
	case CUDAGraph:
		return c.CUDAGraph
	}
	return false
}

// With returns a copy of c with one toggle changed.
func (c Config) With(f Flag, on bool) Config {
	switch f {
	case CutlassAttn:
		c.CutlassAttn = on
	case CutlassNorm:
		c.CutlassNorm = on
	case CublasGemm:
		c.CublasGemm = on
	case CUDAGraph:
		c.CUDAGraph = on
	default:
		panic(fmt.Sprintf("opt: unknown flag %q", f))
	}
	return c
}

// Enabled returns the toggles that are on, in canonical order.
func (c Config) Enabled() []Flag {
	var on []Flag
	for _, f := range Flags {
		if c.Get(f) {
			on = append(on, f)
		}
	}
	return on
}

// String renders c in the assignment syntax, so Parse(c.String()) == c.
func (c Config) String() string {
	parts := make([]string, len(Flags))
	for i, f := range Flags {
		v := 0
		if c.Get(f) {
			v = 1
		}
		parts[i] = fmt.Sprintf("%s=%d", f, v)
	}
	return strings.Join(parts, ";")
}

// cudaOnly are toggles that only mean something when generating CUDA code.
var cudaOnly = []Flag{CutlassAttn, CutlassNorm, CublasGemm, CUDAGraph}

// ForDevice turns off toggles the given device cannot use and returns the
// adjusted config together with the toggles that were switched off.
func (c Config) ForDevice(device string) (Config, []Flag) {
	if device == "cuda" {
		return c, nil
	}
	var dropped []Flag
	for _, f := range cudaOnly {
		if c.Get(f) {
			c = c.With(f, false)
			dropped = append(dropped, f)
		}
	}
	return c, dropped
}
