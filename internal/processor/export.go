package processor

import (
	"context"

	"github.com/nguyentantai21042004/wiki-transcript/internal/document"
)

// export writes the configured extra formats next to outputPath. Failures are
// logged and skipped; the wiki document is already written.
func (p *implProcessor) export(ctx context.Context, doc document.Document, outputPath string) []string {
	if len(p.exporters) == 0 {
		return nil
	}

	title := document.Title(outputPath)
	var written []string
	for _, exp := range p.exporters {
		path := document.ExportPath(outputPath, exp.Format())
		if path == outputPath {
			p.logger.Warn(ctx, "Skipping %s export: would overwrite %s", exp.Format(), outputPath)
			continue
		}
		if err := exp.Export(ctx, doc, title, path); err != nil {
			p.logger.Warn(ctx, "Failed to export %s: %v", exp.Format(), err)
			continue
		}
		written = append(written, path)
	}
	return written
}
