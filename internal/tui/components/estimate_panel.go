package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Dallionking/project-estimator/internal/quote"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

const estimateBarWidth = 20

// EstimatePanel shows the running estimate next to the wizard form: one line
// per selected service and the total, measured against the client's budget
// when one was given.
type EstimatePanel struct {
	Lines     []quote.LineItem
	Total     decimal.Decimal
	Budget    decimal.Decimal
	HasBudget bool
	Width     int
}

// NewEstimatePanel builds a panel from the wizard's current answers.
func NewEstimatePanel(a *quote.Answers, width int) EstimatePanel {
	budget, ok := quote.BudgetAmount(a)
	return EstimatePanel{
		Lines:     quote.Breakdown(a.Selection),
		Total:     quote.Total(a.Selection),
		Budget:    budget,
		HasBudget: ok && budget.IsPositive(),
		Width:     width,
	}
}

// Render returns the styled panel.
func (e EstimatePanel) Render() string {
	width := e.Width
	if width <= 0 {
		width = 32
	}
	inner := width - 4

	var b strings.Builder
	b.WriteString(styles.Title.Render("Estimate") + "\n")

	if len(e.Lines) == 0 {
		b.WriteString(styles.Dim("No services selected") + "\n")
	}
	for _, l := range e.Lines {
		price := quote.FormatMoney(l.Subtotal)
		name := styles.TruncateWithEllipsis(l.ServiceName, max(inner-len(price)-1, 4))
		gap := inner - lipgloss.Width(name) - len(price)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(name) +
			strings.Repeat(" ", gap) + styles.Gold(price) + "\n")
	}

	b.WriteString(styles.Divider(inner) + "\n")
	b.WriteString(styles.Label.Render("TOTAL ") + styles.MoneyText.Render(quote.FormatMoney(e.Total)))

	if e.HasBudget {
		b.WriteString("\n" + e.renderBudget())
	}

	return styles.Panel.Width(width - 2).Render(b.String())
}

func (e EstimatePanel) renderBudget() string {
	ratio, _ := e.Total.Div(e.Budget).Float64()

	color := styles.StatusOK
	switch {
	case ratio > 1:
		color = styles.StatusError
	case ratio >= 0.8:
		color = styles.StatusWarn
	}

	filled := int(ratio*estimateBarWidth + 0.5)
	if filled > estimateBarWidth {
		filled = estimateBarWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.TextMuted).Render(strings.Repeat("░", estimateBarWidth-filled))

	note := fmt.Sprintf("of %s budget", quote.FormatMoney(e.Budget))
	if ratio > 1 {
		note = fmt.Sprintf("%s over budget", quote.FormatMoney(e.Total.Sub(e.Budget)))
	}
	return bar + "\n" + lipgloss.NewStyle().Foreground(color).Render(note)
}
