package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chasingbytes/resume/backend/internal/model/chat"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func renderEntry(entry chat.Entry, assistantName string) string {
	var b strings.Builder
	b.WriteString(userLabelStyle.Render("You:"))
	b.WriteString(" ")
	b.WriteString(entry.Question)
	b.WriteString("\n")
	b.WriteString(assistantLabelStyle.Render(assistantName + ":"))
	b.WriteString(" ")
	b.WriteString(entry.Answer)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(entry.AskedAt.Local().Format("2006-01-02 15:04:05")))
	return b.String()
}

// renderTranscript prints entries in the order given, which is newest first.
func renderTranscript(entries []chat.Entry, assistantName string) string {
	if len(entries) == 0 {
		return dimStyle.Render("(no questions answered)") + "\n"
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, renderEntry(entry, assistantName))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func renderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
