package summarizer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoCredential means no API key was configured; no call was attempted.
	ErrNoCredential = errors.New("no API key configured")
	// ErrEmptyResponse means the model answered without any text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// Mode selects the summary length.
type Mode string

const (
	ModeShort    Mode = "short"
	ModeDetailed Mode = "detailed"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeShort, ModeDetailed:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown summary mode %q", s)
	}
}

// Summarizer produces a summary of a processed transcript.
type Summarizer interface {
	Summarize(ctx context.Context, text string, mode Mode) (string, error)
}

// Factory builds a Summarizer for a set of API keys taken from a settings snapshot.
type Factory func(apiKeys []string) Summarizer
