package transcript

import "context"

// Normalizer turns a raw transcript into wiki-ready text.
type Normalizer interface {
	Normalize(ctx context.Context, raw string, opts Options) string
}
