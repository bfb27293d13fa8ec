package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWrap = 80

// MarkdownRenderer renders reminder descriptions for the terminal. It falls
// back to the raw text whenever glamour cannot be used.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer, or nil when enabled is false.
// Without colour the "notty" style keeps the output free of escape codes.
func NewMarkdownRenderer(enabled, colored bool) *MarkdownRenderer {
	if !enabled {
		return nil
	}

	style := glamour.WithAutoStyle()
	if !colored {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return nil
	}
	return &MarkdownRenderer{renderer: renderer}
}

// Render is safe on a nil receiver.
func (m *MarkdownRenderer) Render(content string) string {
	if m == nil || m.renderer == nil || strings.TrimSpace(content) == "" {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
