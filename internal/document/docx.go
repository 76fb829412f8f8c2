package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

type docxExporter struct{}

// NewDOCX returns an Exporter writing Word documents.
func NewDOCX() Exporter {
	return docxExporter{}
}

func (docxExporter) Format() string { return "docx" }

func (docxExporter) Export(ctx context.Context, d Document, title, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, sec := range d.Sections() {
		addStyledRun(doc.AddParagraph(""), strings.Trim(sec.Title, "="), true, 15)

		if sec.Title == HeaderTranscript {
			for _, ln := range TranscriptLines(sec.Body) {
				p := doc.AddParagraph("")
				if ln.Speaker != "" {
					p.AddText(ln.Speaker + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
				}
				if ln.Text != "" {
					p.AddText(ln.Text).Font(fontName).Size(fontSize).Color("000000")
				}
			}
			continue
		}
		addMarkdown(doc, sec.Body)
	}

	// SaveTo writes in place, so save beside the target and rename.
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := doc.SaveTo(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save docx: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename docx: %w", err)
	}
	return nil
}

// addMarkdown renders summary text, which the model often returns as markdown.
func addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
