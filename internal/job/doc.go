// Package job assembles the outputs of the inference stages into a single
// immutable compile job Descriptor, performing the checks that need the
// combined state: the output location and format against the resolved
// target, the symbol prefix, and the quantization scheme.
//
// A Descriptor is the only thing handed to a compilation backend. Its
// Manifest method returns a plain, serializable copy.
package job
