package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/wiki-transcript/internal/document"
)

// Processor runs the transcript pipeline end to end.
type Processor interface {
	// Process reads the transcript at path and writes the wiki document next to it.
	Process(ctx context.Context, path string) (Result, error)
	// Render runs the pipeline on raw text without touching the filesystem.
	Render(ctx context.Context, raw string) (document.Document, error)
}

// Result describes a completed run.
type Result struct {
	RunID    string
	Input    string
	Output   string
	Exports  []string
	Document document.Document
	Duration time.Duration
}
