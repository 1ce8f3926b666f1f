// Package auto models user inputs that may be left for the tool to infer.
//
// A Hint is either Explicit(value) or Inferred. The literal command-line word
// "auto" is converted to Inferred at the edge by Parse and never travels
// further into the pipeline.
package auto

import "strings"

// Keyword is the command-line spelling of an inferred value.
const Keyword = "auto"

// Hint is a tagged union of an explicit user value and "infer this for me".
// The zero value is Inferred.
type Hint struct {
	value    string
	explicit bool
}

// Explicit returns a hint carrying a user-supplied value.
func Explicit(value string) Hint {
	return Hint{value: value, explicit: true}
}

// Inferred returns a hint asking the pipeline to infer the value.
func Inferred() Hint {
	return Hint{}
}

// Parse converts a raw flag value into a Hint. The keyword "auto" (any case)
// and the empty string both mean Inferred.
func Parse(raw string) Hint {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, Keyword) {
		return Inferred()
	}
	return Explicit(trimmed)
}

// Value returns the explicit value and true, or "" and false if inferred.
func (h Hint) Value() (string, bool) {
	return h.value, h.explicit
}

// IsInferred reports whether the value is left for inference.
func (h Hint) IsInferred() bool {
	return !h.explicit
}

// String renders the hint the way the user would have typed it.
func (h Hint) String() string {
	if !h.explicit {
		return Keyword
	}
	return h.value
}
