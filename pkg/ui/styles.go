// Package ui holds terminal styling for the chat client.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	MenuStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	AskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	UserPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("44"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	AnswerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	ThinkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)
