package document

import (
	"path/filepath"
	"strings"
)

// Section headers of the wiki layout, in emission order.
const (
	HeaderTLDR       = "=TLDR="
	HeaderLinks      = "=Links="
	HeaderSummary    = "=Summary="
	HeaderTranscript = "=Transcript="
)

// ProcessedSuffix is appended to the input file name to form the output name.
const ProcessedSuffix = "_processed"

// Document is the final wiki document: two summaries plus the processed transcript.
type Document struct {
	Short      string
	Detailed   string
	Transcript string
}

// Section is one titled block of a Document.
type Section struct {
	Title string
	Body  string
}

// Assemble builds a Document. Summaries are trimmed; the transcript is kept verbatim.
func Assemble(short, detailed, transcript string) Document {
	return Document{
		Short:      strings.TrimSpace(short),
		Detailed:   strings.TrimSpace(detailed),
		Transcript: transcript,
	}
}

// Sections returns the four sections in their fixed order. Links is always empty.
func (d Document) Sections() []Section {
	return []Section{
		{Title: HeaderTLDR, Body: d.Short},
		{Title: HeaderLinks},
		{Title: HeaderSummary, Body: d.Detailed},
		{Title: HeaderTranscript, Body: d.Transcript},
	}
}

// Render returns the wiki text.
func (d Document) Render() string {
	var b strings.Builder
	b.Grow(len(d.Short) + len(d.Detailed) + len(d.Transcript) + 64)

	b.WriteString(HeaderTLDR + "\n\n")
	b.WriteString(d.Short)
	b.WriteString("\n\n")
	b.WriteString(HeaderLinks + "\n\n")
	b.WriteString(HeaderSummary + "\n\n")
	b.WriteString(d.Detailed)
	b.WriteString("\n\n")
	b.WriteString(HeaderTranscript + "\n\n")
	b.WriteString(d.Transcript)
	return b.String()
}

// OutputPath derives the processed file path for input. When outDir is empty
// the file lands next to the input.
func OutputPath(input, outDir string) string {
	dir := filepath.Dir(input)
	if outDir != "" {
		dir = outDir
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+ProcessedSuffix+ext)
}

// ExportPath swaps the extension of path for the given format.
func ExportPath(path, format string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
}

// Title derives a human readable title from a file path.
func Title(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.TrimSuffix(name, ProcessedSuffix)
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
