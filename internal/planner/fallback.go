package planner

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/document"
)

// Canned outline titles per document format. The %s verb receives the topic.
// These are deterministic: identical prompt and settings always produce an
// identical fallback outline.
var fallbackTitles = map[document.Format][]string{
	document.FormatArticle: {
		"Introduction to %s",
		"Background and Context",
		"Key Developments",
		"Current State and Analysis",
		"Implications and Significance",
		"Challenges and Open Questions",
		"Looking Ahead",
		"Conclusion",
	},
	document.FormatReport: {
		"Executive Summary",
		"Introduction and Scope",
		"Methodology",
		"Findings: %s",
		"Analysis and Discussion",
		"Risks and Limitations",
		"Recommendations",
		"Conclusion",
	},
	document.FormatEssay: {
		"Introduction: %s",
		"Thesis and Framing",
		"Supporting Argument One",
		"Supporting Argument Two",
		"Counterarguments",
		"Synthesis",
		"Conclusion",
	},
	document.FormatTutorial: {
		"Overview of %s",
		"Prerequisites and Setup",
		"Core Concepts",
		"Step-by-Step Walkthrough",
		"Common Pitfalls",
		"Advanced Techniques",
		"Practice Exercises",
		"Summary and Next Steps",
	},
	document.FormatGeneric: {
		"Introduction to %s",
		"Background",
		"Main Discussion",
		"Detailed Analysis",
		"Practical Considerations",
		"Broader Context",
		"Summary",
	},
}

// FallbackOutline produces the deterministic canned outline for the format,
// fitted to n sections. Titles carry the topic where the template allows.
// Always returns at least one item.
func FallbackOutline(topic string, format document.Format, n int) []OutlineItem {
	titles, ok := fallbackTitles[format]
	if !ok {
		titles = fallbackTitles[document.FormatGeneric]
	}
	if n < 1 {
		n = 1
	}

	items := make([]OutlineItem, 0, n)
	for i := 0; i < n; i++ {
		var title string
		if i < len(titles) {
			title = titles[i]
			if containsVerb(title) {
				title = fmt.Sprintf(title, topic)
			}
		} else {
			title = fmt.Sprintf("Additional Perspectives %d", i-len(titles)+1)
		}
		items = append(items, OutlineItem{
			Title:   title,
			Summary: fmt.Sprintf("Covers %q in the context of: %s", title, topic),
		})
	}
	return items
}

// containsVerb reports whether a title template expects the topic argument.
func containsVerb(template string) bool {
	for i := 0; i+1 < len(template); i++ {
		if template[i] == '%' && template[i+1] == 's' {
			return true
		}
	}
	return false
}
