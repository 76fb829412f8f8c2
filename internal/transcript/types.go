package transcript

import "fmt"

// LineBreak is the wiki token forcing a line break in the rendered page.
const LineBreak = "<br>"

// AttributionMode selects where bare host names are rewritten.
type AttributionMode string

const (
	// AttributeEverywhere rewrites every literal occurrence of a host name,
	// including mentions inside dialogue.
	AttributeEverywhere AttributionMode = "everywhere"
	// AttributeTurns only rewrites host names that open a speaker turn.
	AttributeTurns AttributionMode = "turns"
)

// ParseAttributionMode validates a mode name. An empty name selects
// AttributeEverywhere.
func ParseAttributionMode(s string) (AttributionMode, error) {
	switch AttributionMode(s) {
	case "", AttributeEverywhere:
		return AttributeEverywhere, nil
	case AttributeTurns:
		return AttributeTurns, nil
	default:
		return "", fmt.Errorf("unknown attribution mode %q", s)
	}
}

// Substitution is one literal find/replace pair.
type Substitution struct {
	Find    string
	Replace string
}

// Options is the per-run configuration snapshot.
type Options struct {
	Hosts         []string
	Substitutions []Substitution
	Attribution   AttributionMode
}

// Pass is one named rewrite over the whole transcript.
type Pass struct {
	Name  string
	Apply func(string) string
}
