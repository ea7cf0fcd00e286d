// Package assembler concatenates finalized sections into a canonical
// document model and hands it to a renderer for serialization.
package assembler

import (
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// Document is the canonical intermediate representation of an assembled
// document, independent of any output format.
type Document struct {
	// ProjectID references the source project.
	ProjectID types.ID `json:"project_id"`

	// Title is the document title.
	Title string `json:"title"`

	// Sections are the finalized sections in order-index order.
	Sections []DocumentSection `json:"sections"`

	// WordCount is the total body word count.
	WordCount int `json:"word_count"`

	// AssembledAt is when the document was assembled.
	AssembledAt time.Time `json:"assembled_at"`
}

// DocumentSection is one titled body chunk of the assembled document.
type DocumentSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Assemble builds the canonical document from a project and its sections.
// Sections are ordered by order index regardless of input order. It fails
// with EXPORT_EMPTY_DOCUMENT when the total body length is zero; that check
// runs before any renderer is invoked.
func Assemble(project *document.Project, sections []*document.Section) (*Document, error) {
	ordered := make([]*document.Section, len(sections))
	copy(ordered, sections)
	document.SortSections(ordered)

	doc := &Document{
		ProjectID:   project.ID,
		Title:       project.Title,
		AssembledAt: time.Now(),
	}

	bodyLen := 0
	for _, sec := range ordered {
		content := strings.TrimSpace(sec.Content)
		bodyLen += len(content)
		doc.Sections = append(doc.Sections, DocumentSection{
			Title:   sec.Title,
			Content: content,
		})
		doc.WordCount += document.CountWords(content)
	}

	if bodyLen == 0 {
		return nil, types.NewError(types.EXPORT_EMPTY_DOCUMENT, "document body is empty")
	}

	return doc, nil
}
