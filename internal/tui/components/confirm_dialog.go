package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// ConfirmDialog is a modal yes/no prompt. The owning model forwards key
// messages while it is open and reads Done/Confirmed afterwards.
type ConfirmDialog struct {
	Title     string
	Message   string
	YesLabel  string
	NoLabel   string
	Confirmed bool
	Done      bool
	selected  int // 0 = yes, 1 = no
}

// NewConfirmDialog creates a dialog with "No" preselected.
func NewConfirmDialog(title, message string) ConfirmDialog {
	return ConfirmDialog{
		Title:    title,
		Message:  message,
		YesLabel: "Yes",
		NoLabel:  "No",
		selected: 1,
	}
}

// Update handles keyboard input.
func (d ConfirmDialog) Update(msg tea.Msg) (ConfirmDialog, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "y", "Y":
		d.Confirmed, d.Done = true, true
	case "n", "N", "esc":
		d.Confirmed, d.Done = false, true
	case "enter":
		d.Confirmed, d.Done = d.selected == 0, true
	case "left", "h":
		d.selected = 0
	case "right", "l":
		d.selected = 1
	case "tab", "shift+tab":
		d.selected = 1 - d.selected
	}
	return d, nil
}

// View returns the styled dialog.
func (d ConfirmDialog) View() string {
	selectedStyle := lipgloss.NewStyle().
		Background(styles.AccentPrimary).
		Foreground(styles.BgDeep).
		Bold(true).
		Padding(0, 1)
	unselectedStyle := lipgloss.NewStyle().
		Background(styles.BgSurface).
		Foreground(styles.TextSecondary).
		Padding(0, 1)

	yes, no := unselectedStyle, selectedStyle
	if d.selected == 0 {
		yes, no = selectedStyle, unselectedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yes.Render(d.YesLabel), "  ", no.Render(d.NoLabel))

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render(d.Title),
		"",
		lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(d.Message),
		"",
		buttons,
		"",
		styles.Dim("y/n or ←→ + enter"),
	)

	return lipgloss.NewStyle().
		Background(styles.BgPanel).
		Border(styles.RoundedBorder).
		BorderForeground(styles.AccentTertiary).
		Padding(1, 2).
		Width(48).
		Align(lipgloss.Center).
		Render(content)
}
