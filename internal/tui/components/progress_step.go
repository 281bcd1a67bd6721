// Package components holds the small render-only widgets of the estimator UI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// ProgressStep shows the wizard's step sequence.
type ProgressStep struct {
	Steps    []string // step labels
	Current  int      // 0-indexed current step
	Furthest int      // furthest step reached so far
	Width    int
}

// Render returns the styled progress indicator. Steps already reached are
// green and numbered so they can be jumped to, the current step is cyan, and
// steps not reached yet are muted. Labels are dropped when the row would not
// fit in Width.
func (p ProgressStep) Render() string {
	if len(p.Steps) == 0 {
		return ""
	}

	parts := p.parts(true)
	row := strings.Join(parts, "  ")
	if p.Width > 0 && lipgloss.Width(row) > p.Width {
		row = strings.Join(p.parts(false), " ")
	}
	return row
}

func (p ProgressStep) parts(withLabels bool) []string {
	parts := make([]string, 0, len(p.Steps))
	for i, label := range p.Steps {
		var st lipgloss.Style
		dot := "●"
		switch {
		case i == p.Current:
			st = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
		case i <= p.Furthest:
			st = lipgloss.NewStyle().Foreground(styles.StatusOK)
		default:
			st = lipgloss.NewStyle().Foreground(styles.TextMuted)
			dot = "○"
		}

		text := dot
		if withLabels {
			text = fmt.Sprintf("%s %d %s", dot, i+1, label)
		}
		parts = append(parts, st.Render(text))
	}
	return parts
}
