package writer

import (
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/document"
)

// Template paragraphs for fallback prose. The first %s receives the section
// title, the second the document topic. Pure and deterministic: identical
// section and topic always yield identical prose.
var fallbackParagraphs = []string{
	"%[1]s\n\nThis section examines %[2]s with a focus on the theme of %[1]q. " +
		"While automated drafting was unavailable for this part of the document, " +
		"the outline identifies it as an essential step in the overall argument, " +
		"and the placeholder below preserves its position and intent.",

	"Within the broader discussion of %[2]s, the topic of %[1]q deserves " +
		"careful treatment. Readers should expect this part of the document to " +
		"introduce the relevant background, establish the key terms, and connect " +
		"the material to the sections that surround it.",

	"A complete treatment would cover the main developments, the evidence " +
		"supporting them, and their practical significance. This placeholder " +
		"text marks where that material belongs; regenerating the section once " +
		"a writing backend is reachable will replace it with full prose.",
}

// FallbackContent synthesizes deterministic prose for a section whose
// generation exhausted every backend. The content always embeds the section
// title as a heading and is never empty.
func FallbackContent(section *document.Section, topic string) string {
	title := strings.TrimSpace(section.Title)
	if title == "" {
		title = "Untitled Section"
	}
	if strings.TrimSpace(topic) == "" {
		topic = "the document subject"
	}

	paragraphs := make([]string, 0, len(fallbackParagraphs))
	for _, tmpl := range fallbackParagraphs {
		paragraphs = append(paragraphs, fmt.Sprintf(tmpl, title, topic))
	}
	return strings.Join(paragraphs, "\n\n")
}
