package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string // "enter", "space", "alt+1-6"
	Desc string // "next", "toggle", "jump"
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	content := strings.Join(parts, descStyle.Render(" • "))

	return lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1).
		Render(content)
}

// FormFooter returns the hints for the text-input steps.
func FormFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "tab", Desc: "next field"},
			{Key: "shift+tab", Desc: "prev field"},
			{Key: "enter", Desc: "next step"},
			{Key: "esc", Desc: "back"},
			{Key: "alt+1-6", Desc: "jump"},
		},
		Width: width,
	}
}

// ChecklistFooter returns the hints for the checkbox steps.
func ChecklistFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "navigate"},
			{Key: "space", Desc: "toggle"},
			{Key: "enter", Desc: "next step"},
			{Key: "esc", Desc: "back"},
			{Key: "alt+1-6", Desc: "jump"},
		},
		Width: width,
	}
}
