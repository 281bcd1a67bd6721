// Package styles holds the estimator's palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Dark palette: deep navy backgrounds, cyan for focus, gold for money.
var (
	BgDeep    = lipgloss.Color("#0a0e14")
	BgPanel   = lipgloss.Color("#11151c")
	BgSurface = lipgloss.Color("#1a1f2e")

	AccentPrimary   = lipgloss.Color("#4fc1ff") // focus, headings
	AccentSecondary = lipgloss.Color("#39c5bb") // group headings
	AccentTertiary  = lipgloss.Color("#7c3aed") // dialogs
	AccentGold      = lipgloss.Color("#f5a623") // prices and totals

	StatusOK    = lipgloss.Color("#22c55e")
	StatusWarn  = lipgloss.Color("#f59e0b")
	StatusError = lipgloss.Color("#ef4444")

	TextPrimary   = lipgloss.Color("#e2e8f0")
	TextSecondary = lipgloss.Color("#94a3b8")
	TextMuted     = lipgloss.Color("#64748b")

	BorderNormal  = lipgloss.Color("#2d3748")
	BorderFocused = lipgloss.Color("#4fc1ff")
)
