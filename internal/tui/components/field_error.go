package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// FieldError renders a validation message under a form field. An empty
// message renders as an empty string so callers can append unconditionally.
type FieldError struct {
	Message string
	Indent  int
}

// Render returns the styled message.
func (e FieldError) Render() string {
	if e.Message == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.StatusError).
		PaddingLeft(e.Indent).
		Render("✗ " + e.Message)
}
