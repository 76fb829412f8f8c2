package document

import "context"

// Exporter writes a Document in an additional file format.
type Exporter interface {
	// Format is the file extension produced, without the dot.
	Format() string
	Export(ctx context.Context, doc Document, title, path string) error
}
