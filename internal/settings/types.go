package settings

import (
	"errors"
	"strings"

	"github.com/nguyentantai21042004/wiki-transcript/internal/transcript"
)

var (
	ErrEmptyHost       = errors.New("host name is empty")
	ErrDuplicateHost   = errors.New("host already exists")
	ErrHostNotFound    = errors.New("host not found")
	ErrIndexOutOfRange = errors.New("substitution index out of range")

	// ErrSettingsMissing and ErrSettingsInvalid are returned by Store.Load
	// together with usable settings; callers log them and carry on.
	ErrSettingsMissing = errors.New("settings file not found")
	ErrSettingsInvalid = errors.New("settings file invalid")
)

// Pair is one find/replace entry as stored in the settings document.
type Pair struct {
	Find    string `yaml:"find" json:"find"`
	Replace string `yaml:"replace" json:"replace"`
}

// Settings is the user-editable configuration persisted by a Store.
type Settings struct {
	Hosts       []string `yaml:"hosts" json:"hosts"`
	APIKey      string   `yaml:"api_key" json:"api_key"`
	FindReplace []Pair   `yaml:"find_replace" json:"find_replace"`
}

// Default returns the settings used before anything is loaded.
func Default() Settings {
	return Settings{
		Hosts:       []string{"AJ", "Harrison"},
		FindReplace: []Pair{},
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	return Settings{
		Hosts:       append([]string{}, s.Hosts...),
		APIKey:      s.APIKey,
		FindReplace: append([]Pair{}, s.FindReplace...),
	}
}

// Redacted returns a copy safe to show to users.
func (s Settings) Redacted() Settings {
	out := s.Clone()
	if out.APIKey != "" {
		out.APIKey = "****"
	}
	return out
}

// Options converts the settings into pipeline options.
func (s Settings) Options(mode transcript.AttributionMode) transcript.Options {
	subs := make([]transcript.Substitution, 0, len(s.FindReplace))
	for _, p := range s.FindReplace {
		subs = append(subs, transcript.Substitution{Find: p.Find, Replace: p.Replace})
	}
	return transcript.Options{
		Hosts:         append([]string(nil), s.Hosts...),
		Substitutions: subs,
		Attribution:   mode,
	}
}

// normalizeHosts trims names and drops empty and repeated entries,
// keeping the first occurrence.
func normalizeHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	seen := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
