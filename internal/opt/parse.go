package opt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/mlcbuild/internal/diag"
)

// FlagName is the command-line flag this package parses.
const FlagName = "opt"

// Level is an optimization preset, O0 through O3.
type Level int

const (
	O0 Level = iota
	O1
	O2
	O3
)

// DefaultLevel is the preset used when --opt is not given, and the baseline
// for assignment lists.
const DefaultLevel = O2

func (l Level) String() string {
	return fmt.Sprintf("O%d", int(l))
}

var levelRegex = regexp.MustCompile(`^O[0-3]$`)

// ParseLevel recognizes a bare level token.
func ParseLevel(text string) (Level, bool) {
	if !levelRegex.MatchString(text) {
		return 0, false
	}
	return Level(text[1] - '0'), true
}

// Preset expands a level into its toggles. O0 disables everything; O3 enables
// everything, including toggles that trade numerical fidelity for speed.
func Preset(l Level) Config {
	switch l {
	case O0:
		return Config{}
	case O1:
		return Config{CutlassNorm: true}
	case O2:
		return Config{CutlassAttn: true, CutlassNorm: true}
	case O3:
		return Config{CutlassAttn: true, CutlassNorm: true, CublasGemm: true, CUDAGraph: true}
	}
	panic(fmt.Sprintf("opt: level %d out of range", int(l)))
}

// Override sets one toggle.
type Override struct {
	Flag  Flag
	Value bool
}

// ParseOverrides parses `name=0|1;name=0|1`. Whitespace around names and
// values is ignored. Empty segments, a missing '=', an empty name or a value
// other than 0 and 1 are malformed; names outside Flags are unknown.
func ParseOverrides(text string) ([]Override, error) {
	if strings.TrimSpace(text) == "" {
		return nil, diag.New(diag.MalformedOptimizationString, diag.StageOpt, FlagName, text,
			"expected a level O0-O3 or name=0|1 assignments separated by ';'")
	}

	var overrides []Override
	for i, segment := range strings.Split(text, ";") {
		name, value, found := strings.Cut(segment, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		switch {
		case strings.TrimSpace(segment) == "":
			return nil, diag.New(diag.MalformedOptimizationString, diag.StageOpt, FlagName, text,
				fmt.Sprintf("assignment %d is empty", i+1))
		case !found:
			return nil, diag.New(diag.MalformedOptimizationString, diag.StageOpt, FlagName, text,
				fmt.Sprintf("assignment %q has no '='", strings.TrimSpace(segment)))
		case name == "":
			return nil, diag.New(diag.MalformedOptimizationString, diag.StageOpt, FlagName, text,
				fmt.Sprintf("assignment %d has no flag name", i+1))
		}

		if !IsKnown(Flag(name)) {
			return nil, diag.New(diag.UnknownOptimizationFlag, diag.StageOpt, FlagName, text,
				fmt.Sprintf("unknown flag %q; known flags are %s", name, knownFlags()))
		}

		var on bool
		switch value {
		case "0":
			on = false
		case "1":
			on = true
		default:
			return nil, diag.New(diag.MalformedOptimizationString, diag.StageOpt, FlagName, text,
				fmt.Sprintf("flag %q must be 0 or 1, got %q", name, value))
		}
		overrides = append(overrides, Override{Flag: Flag(name), Value: on})
	}
	return overrides, nil
}

// ApplyOverrides returns base with each override applied in order; a later
// assignment to the same flag wins.
func ApplyOverrides(base Config, overrides []Override) Config {
	for _, o := range overrides {
		base = base.With(o.Flag, o.Value)
	}
	return base
}

// Parse turns an --opt value into a Config.
func Parse(text string) (Config, error) {
	trimmed := strings.TrimSpace(text)
	if level, ok := ParseLevel(trimmed); ok {
		return Preset(level), nil
	}
	overrides, err := ParseOverrides(text)
	if err != nil {
		return Config{}, err
	}
	return ApplyOverrides(Preset(DefaultLevel), overrides), nil
}

func knownFlags() string {
	names := make([]string, len(Flags))
	for i, f := range Flags {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
