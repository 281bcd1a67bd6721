package styles

import "github.com/charmbracelet/lipgloss"

// Cyan renders s in AccentPrimary.
func Cyan(s string) string {
	return lipgloss.NewStyle().Foreground(AccentPrimary).Render(s)
}

// Gold renders s in AccentGold.
func Gold(s string) string {
	return lipgloss.NewStyle().Foreground(AccentGold).Render(s)
}

// Green renders s in StatusOK.
func Green(s string) string {
	return lipgloss.NewStyle().Foreground(StatusOK).Render(s)
}

// Red renders s in StatusError.
func Red(s string) string {
	return lipgloss.NewStyle().Foreground(StatusError).Render(s)
}

// Dim renders s in TextMuted.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(s)
}

// Bold renders s in bold TextPrimary.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).Render(s)
}

// Checkbox renders "[x]" or "[ ]".
func Checkbox(checked bool) string {
	if checked {
		return lipgloss.NewStyle().Foreground(StatusOK).Bold(true).Render("[x]")
	}
	return lipgloss.NewStyle().Foreground(TextMuted).Render("[ ]")
}

// Cursor renders the row pointer for the focused line of a list.
func Cursor(active bool) string {
	if !active {
		return "  "
	}
	return lipgloss.NewStyle().Foreground(AccentPrimary).Bold(true).Render("> ")
}

// TruncateWithEllipsis shortens s to max runes, appending "..." when
// truncation occurs. If max is less than 4 the string is simply cut.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
