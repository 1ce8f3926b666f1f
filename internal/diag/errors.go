package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a class of resolution failure.
type Kind int

const (
	ConfigNotFound Kind = iota + 1
	ConfigInvalid
	UnknownModelType
	ModelTypeUndetectable
	UnsupportedHost
	NoTargetAvailable
	AmbiguousHostDetection
	UnknownOptimizationFlag
	MalformedOptimizationString
	UnknownQuantization
	InvalidSymbolPrefix
	OutputDirectoryMissing
	UnsupportedOutputFormat
)

var kindNames = map[Kind]string{
	ConfigNotFound:              "ConfigNotFound",
	ConfigInvalid:               "ConfigInvalid",
	UnknownModelType:            "UnknownModelType",
	ModelTypeUndetectable:       "ModelTypeUndetectable",
	UnsupportedHost:             "UnsupportedHost",
	NoTargetAvailable:           "NoTargetAvailable",
	AmbiguousHostDetection:      "AmbiguousHostDetection",
	UnknownOptimizationFlag:     "UnknownOptimizationFlag",
	MalformedOptimizationString: "MalformedOptimizationString",
	UnknownQuantization:         "UnknownQuantization",
	InvalidSymbolPrefix:         "InvalidSymbolPrefix",
	OutputDirectoryMissing:      "OutputDirectoryMissing",
	UnsupportedOutputFormat:     "UnsupportedOutputFormat",
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Stage names the pipeline component that reported an error.
type Stage string

const (
	StageLocate    Stage = "locate config"
	StageModelType Stage = "infer model type"
	StageTarget    Stage = "infer target"
	StageOpt       Stage = "parse optimization flags"
	StageAssemble  Stage = "assemble job"
)

// Error is a user-facing resolution failure.
type Error struct {
	Kind  Kind
	Stage Stage
	// Flag is the command-line flag the offending value came from, without dashes.
	Flag  string
	Value string
	// Detail is a human-readable explanation appended to the message.
	Detail string
	Err    error
}

// Error implements the error interface. The message names the stage, the
// flag and the value so it can be shown to the user verbatim.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Stage != "" {
		b.WriteString(string(e.Stage))
		b.WriteString(": ")
	}
	if e.Flag != "" {
		fmt.Fprintf(&b, "--%s %q: ", e.Flag, e.Value)
	}
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind for a flag value.
func New(kind Kind, stage Stage, flag, value, detail string) *Error {
	return &Error{Kind: kind, Stage: stage, Flag: flag, Value: value, Detail: detail}
}

// Wrap creates an error of the given kind caused by err.
func Wrap(err error, kind Kind, stage Stage, flag, value string) *Error {
	return &Error{Kind: kind, Stage: stage, Flag: flag, Value: value, Err: err}
}

// IsKind reports whether err, or any error it wraps, is a *Error of kind k.
func IsKind(err error, k Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == k
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
