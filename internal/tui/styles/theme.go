package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RoundedBorder frames panels and dialogs.
var RoundedBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

// ThinBorder frames inline notices.
var ThinBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// Panel is the default boxed surface.
var Panel = lipgloss.NewStyle().
	Background(BgPanel).
	Border(RoundedBorder).
	BorderForeground(BorderNormal).
	Padding(0, 1)

// PanelFocused is Panel with the focus ring.
var PanelFocused = Panel.BorderForeground(BorderFocused)

// Title is bold AccentPrimary text for section headings.
var Title = lipgloss.NewStyle().
	Foreground(AccentPrimary).
	Bold(true)

// Subtitle is regular TextSecondary text for secondary headings.
var Subtitle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// Label is TextMuted text for field labels. Pass uppercase strings for the
// conventional LABEL look.
var Label = lipgloss.NewStyle().
	Foreground(TextMuted)

// Value is bold TextPrimary text for data values.
var Value = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// MoneyText is bold gold for prices and totals.
var MoneyText = lipgloss.NewStyle().
	Foreground(AccentGold).
	Bold(true)

// TableHeader is bold, underlined, TextSecondary for column headings.
var TableHeader = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Bold(true).
	Underline(true)

// Badge returns an inline colored badge such as "● READY".
func Badge(text string, color lipgloss.Color) string {
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	label := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(text)
	return dot + " " + label
}

// Divider returns a horizontal rule of the given width.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(strings.Repeat("─", width))
}

// CompactLogo is the one-line wordmark used in command output.
const CompactLogo = "◆ estimator"

const logoArt = `  ___        _   _              _
 | __|  ___ | |_(_)_ __  __ _ | |_ ___
 | _|  (_-< |  _| | '  \/ _' ||  _/ -_)
 |___| /__/  \__|_|_|_|_\__,_| \__\___|`

// Logo renders the multi-line banner.
func Logo() string {
	art := lipgloss.NewStyle().Foreground(AccentPrimary).Bold(true).Render(logoArt)
	tag := lipgloss.NewStyle().Foreground(TextSecondary).Italic(true).Render("Power your project")
	return art + "\n  " + tag
}
