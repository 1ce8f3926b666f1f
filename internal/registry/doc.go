// Package registry holds the static lookup tables the resolution pipeline
// consults: the known model architectures and the config fingerprints that
// identify them, the supported quantization schemes, and the build functions
// keyed by target platform.
//
// The tables are fixed at compile time. New builds a Registry over them, and
// ValidateRegistry checks at startup that no fingerprint is claimed by two
// architectures and that every builder produces output kinds the assembler
// knows.
package registry
