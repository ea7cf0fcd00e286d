package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-ai/inkwell/internal/document"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	dimStyle = lipgloss.NewStyle().
			Faint(true)
)

// statusStyle colors a project status for terminal display.
func statusStyle(status document.ProjectStatus) lipgloss.Style {
	switch status {
	case document.ProjectStatusCompleted:
		return successStyle
	case document.ProjectStatusPaused:
		return warnStyle
	case document.ProjectStatusError:
		return errorStyle
	default:
		return lipgloss.NewStyle()
	}
}

// sectionMark returns a one-character marker for a section status.
func sectionMark(status document.SectionStatus) string {
	switch status {
	case document.SectionStatusCompleted:
		return successStyle.Render("✓")
	case document.SectionStatusWriting:
		return warnStyle.Render("…")
	case document.SectionStatusReviewing:
		return warnStyle.Render("✎")
	case document.SectionStatusError:
		return errorStyle.Render("✗")
	default:
		return dimStyle.Render("·")
	}
}
