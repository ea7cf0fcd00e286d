package assembler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

func testProjectWithSections() (*document.Project, []*document.Section) {
	project := document.NewProject("Assembled Doc", "topic", document.DefaultSettings())
	sections := []*document.Section{
		{ID: types.NewID(), OrderIndex: 2, Title: "Third", Content: "third body", Status: document.SectionStatusCompleted},
		{ID: types.NewID(), OrderIndex: 0, Title: "First", Content: "first body", Status: document.SectionStatusCompleted},
		{ID: types.NewID(), OrderIndex: 1, Title: "Second", Content: "second body", Status: document.SectionStatusCompleted},
	}
	return project, sections
}

// TestAssemble_OrdersByOrderIndex tests canonical ordering
func TestAssemble_OrdersByOrderIndex(t *testing.T) {
	project, sections := testProjectWithSections()

	doc, err := Assemble(project, sections)
	require.NoError(t, err)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "First", doc.Sections[0].Title)
	assert.Equal(t, "Second", doc.Sections[1].Title)
	assert.Equal(t, "Third", doc.Sections[2].Title)
	assert.Equal(t, project.ID, doc.ProjectID)
	assert.Equal(t, 6, doc.WordCount)
}

// TestAssemble_EmptyDocument tests the empty-body failure before rendering
func TestAssemble_EmptyDocument(t *testing.T) {
	project := document.NewProject("Empty", "topic", document.DefaultSettings())
	sections := []*document.Section{
		{ID: types.NewID(), OrderIndex: 0, Title: "A", Content: "   "},
		{ID: types.NewID(), OrderIndex: 1, Title: "B", Content: ""},
	}

	_, err := Assemble(project, sections)
	require.Error(t, err)
	assert.Equal(t, types.EXPORT_EMPTY_DOCUMENT, types.CodeOf(err))
}

// TestAssemble_NoSections tests assembly of a sectionless project
func TestAssemble_NoSections(t *testing.T) {
	project := document.NewProject("Empty", "topic", document.DefaultSettings())

	_, err := Assemble(project, nil)
	require.Error(t, err)
	assert.Equal(t, types.EXPORT_EMPTY_DOCUMENT, types.CodeOf(err))
}

// TestPlainTextRenderer tests plain-text serialization
func TestPlainTextRenderer(t *testing.T) {
	project, sections := testProjectWithSections()
	doc, err := Assemble(project, sections)
	require.NoError(t, err)

	out, err := PlainTextRenderer{}.Render(doc)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Assembled Doc\n=============")
	assert.Contains(t, text, "First\n-----")
	assert.True(t, strings.Index(text, "first body") < strings.Index(text, "second body"))
}

// TestMarkdownRenderer tests Markdown serialization
func TestMarkdownRenderer(t *testing.T) {
	project, sections := testProjectWithSections()
	doc, err := Assemble(project, sections)
	require.NoError(t, err)

	out, err := MarkdownRenderer{}.Render(doc)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Assembled Doc")
	assert.Contains(t, text, "## First")
	assert.Contains(t, text, "## Third")
}

// TestExport_DispatchesByFormat tests renderer selection
func TestExport_DispatchesByFormat(t *testing.T) {
	project, sections := testProjectWithSections()
	doc, err := Assemble(project, sections)
	require.NoError(t, err)

	renderers := []Renderer{PlainTextRenderer{}, MarkdownRenderer{}}

	md, err := Export(doc, renderers, RenderMarkdown)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# "))

	txt, err := Export(doc, renderers, RenderPlainText)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(txt), "# "))
}

// TestExport_UnknownFormat tests missing renderer handling
func TestExport_UnknownFormat(t *testing.T) {
	project, sections := testProjectWithSections()
	doc, err := Assemble(project, sections)
	require.NoError(t, err)

	_, err = Export(doc, []Renderer{MarkdownRenderer{}}, RenderPDF)
	require.Error(t, err)
	assert.Equal(t, types.EXPORT_RENDER_FAILED, types.CodeOf(err))
}

// failingRenderer always fails, for exercising error wrapping.
type failingRenderer struct{}

func (failingRenderer) Format() RenderFormat { return RenderWord }
func (failingRenderer) Render(*Document) ([]byte, error) {
	return nil, errors.New("render exploded")
}

// TestExport_RendererFailure tests renderer error wrapping
func TestExport_RendererFailure(t *testing.T) {
	project, sections := testProjectWithSections()
	doc, err := Assemble(project, sections)
	require.NoError(t, err)

	_, err = Export(doc, []Renderer{failingRenderer{}}, RenderWord)
	require.Error(t, err)
	assert.Equal(t, types.EXPORT_RENDER_FAILED, types.CodeOf(err))
	assert.Contains(t, err.Error(), "render exploded")
}
