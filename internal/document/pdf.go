package document

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/nguyentantai21042004/wiki-transcript/pkg/atomicfile"
	"github.com/russross/blackfriday/v2"
)

type pdfExporter struct{}

// NewPDF returns an Exporter writing PDF documents.
func NewPDF() Exporter {
	return pdfExporter{}
}

func (pdfExporter) Format() string { return "pdf" }

func (pdfExporter) Export(ctx context.Context, d Document, title, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WritePDF(d, title, &buf); err != nil {
		return err
	}
	if err := atomicfile.Write(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDF renders d as an A4 PDF into w.
func WritePDF(d Document, title string, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "", false)
	pdf.Ln(4)

	for _, sec := range d.Sections() {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, tr(strings.Trim(sec.Title, "=")))
		pdf.Ln(10)

		if sec.Title == HeaderTranscript {
			for _, ln := range TranscriptLines(sec.Body) {
				if ln.Speaker != "" {
					pdf.SetFont("Arial", "B", 11)
					pdf.Write(5, tr(ln.Speaker+": "))
				}
				pdf.SetFont("Arial", "", 11)
				pdf.Write(5, tr(ln.Text))
				pdf.Ln(7)
			}
			continue
		}
		writeMarkdown(pdf, tr, sec.Body)
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("output pdf: %w", err)
	}
	return nil
}

// writeMarkdown renders a summary through its HTML form, one block per line.
func writeMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, markdown string) {
	rendered := blackfriday.Run([]byte(markdown))

	for _, line := range strings.Split(string(rendered), "\n") {
		line = strings.TrimSpace(line)
		text := stripTags(line)
		if text == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "<h1>"), strings.HasPrefix(line, "<h2>"):
			pdf.SetFont("Arial", "B", 13)
			pdf.MultiCell(0, 7, tr(text), "", "", false)
		case strings.HasPrefix(line, "<h"):
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 6, tr(text), "", "", false)
		case strings.HasPrefix(line, "<li>"):
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, tr("- "+text), "", "", false)
		default:
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, tr(text), "", "", false)
			pdf.Ln(2)
		}
	}
}

// stripTags removes HTML tags and decodes entities.
func stripTags(s string) string {
	var buf strings.Builder
	var inTag bool

	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			buf.WriteRune(r)
		}
	}

	return strings.TrimSpace(html.UnescapeString(buf.String()))
}
