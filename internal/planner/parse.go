package planner

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// enumerator matches leading bullet or numbering markup on an outline line:
// "-", "*", "+", "1.", "1)", "(1)", "I.", "a)" and markdown heading hashes.
var enumerator = regexp.MustCompile(`^\s*(?:[-*+•]|#+|\(?\d+[.)]|\(?[ivxlcIVXLC]+[.)]|\(?[a-zA-Z][.)])\s+`)

// ParseOutline extracts outline items from a backend response.
// It first tries structured YAML (a list of title/summary mappings or plain
// strings); if that fails it falls back to newline-delimited plain text,
// stripping bullet and enumerator markup. Empty titles are discarded.
func ParseOutline(text string) []OutlineItem {
	if items := parseStructured(text); len(items) > 0 {
		return items
	}
	return parsePlainLines(text)
}

// parseStructured attempts to decode the response as a YAML list.
// Models often wrap structured output in code fences; those are stripped.
func parseStructured(text string) []OutlineItem {
	text = stripCodeFence(text)

	var structured []OutlineItem
	if err := yaml.Unmarshal([]byte(text), &structured); err == nil {
		return cleanItems(structured)
	}

	// A list of bare strings is also acceptable.
	var titles []string
	if err := yaml.Unmarshal([]byte(text), &titles); err == nil {
		items := make([]OutlineItem, 0, len(titles))
		for _, t := range titles {
			items = append(items, OutlineItem{Title: t})
		}
		return cleanItems(items)
	}

	return nil
}

// parsePlainLines treats each non-empty line as a section title,
// stripping enumerator markup and any trailing "title: summary" split.
func parsePlainLines(text string) []OutlineItem {
	var items []OutlineItem
	for _, line := range strings.Split(text, "\n") {
		line = enumerator.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		title, summary := line, ""
		if idx := strings.Index(line, ": "); idx > 0 {
			title = strings.TrimSpace(line[:idx])
			summary = strings.TrimSpace(line[idx+2:])
		}
		if title == "" {
			continue
		}

		items = append(items, OutlineItem{Title: title, Summary: summary})
	}
	return items
}

// cleanItems trims whitespace and drops items with empty titles.
func cleanItems(items []OutlineItem) []OutlineItem {
	out := make([]OutlineItem, 0, len(items))
	for _, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		it.Summary = strings.TrimSpace(it.Summary)
		if it.Title == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// stripCodeFence removes a surrounding markdown code fence, if present.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	// Drop the opening fence (with optional language tag) and a closing fence.
	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
