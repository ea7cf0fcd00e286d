package assembler

import (
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// RenderFormat identifies an export serialization format.
type RenderFormat string

const (
	RenderPlainText RenderFormat = "txt"
	RenderMarkdown  RenderFormat = "md"
	RenderPDF       RenderFormat = "pdf"
	RenderWord      RenderFormat = "docx"
)

// Renderer serializes an assembled document into bytes for one format.
// Plain-text and Markdown renderers ship in-repo; PDF and Word renderers
// are provided by external packages implementing this interface.
type Renderer interface {
	// Format returns the format this renderer produces.
	Format() RenderFormat

	// Render serializes the document.
	Render(doc *Document) ([]byte, error)
}

// Export assembles nothing; it takes an already assembled document and
// runs the matching renderer. Renderer failures propagate as-is, wrapped
// with the export error code.
func Export(doc *Document, renderers []Renderer, format RenderFormat) ([]byte, error) {
	for _, r := range renderers {
		if r.Format() == format {
			out, err := r.Render(doc)
			if err != nil {
				return nil, types.WrapError(types.EXPORT_RENDER_FAILED,
					fmt.Sprintf("renderer for %q failed", format), err)
			}
			return out, nil
		}
	}
	return nil, types.NewError(types.EXPORT_RENDER_FAILED,
		fmt.Sprintf("no renderer registered for format %q", format))
}

// PlainTextRenderer renders the document as plain text with underlined
// section headings.
type PlainTextRenderer struct{}

// Format returns the plain-text format.
func (PlainTextRenderer) Format() RenderFormat {
	return RenderPlainText
}

// Render serializes the document as plain text.
func (PlainTextRenderer) Render(doc *Document) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(doc.Title + "\n")
	sb.WriteString(strings.Repeat("=", len(doc.Title)) + "\n\n")

	for _, sec := range doc.Sections {
		sb.WriteString(sec.Title + "\n")
		sb.WriteString(strings.Repeat("-", len(sec.Title)) + "\n\n")
		sb.WriteString(sec.Content + "\n\n")
	}

	return []byte(sb.String()), nil
}

// MarkdownRenderer renders the document as Markdown.
type MarkdownRenderer struct{}

// Format returns the Markdown format.
func (MarkdownRenderer) Format() RenderFormat {
	return RenderMarkdown
}

// Render serializes the document as Markdown.
func (MarkdownRenderer) Render(doc *Document) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	for _, sec := range doc.Sections {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", sec.Title, sec.Content)
	}

	return []byte(sb.String()), nil
}
