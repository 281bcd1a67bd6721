// Package views launches the full-screen programs.
package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Dallionking/project-estimator/internal/quote"
	"github.com/Dallionking/project-estimator/internal/tui/models"
)

// Outcome is how an estimator session ended.
type Outcome struct {
	Submitted bool
	Aborted   bool
	Answers   quote.Answers
	Total     decimal.Decimal
}

// RunEstimator runs the quote wizard until the user submits or quits.
func RunEstimator(d models.EstimatorDeps) (Outcome, error) {
	p := tea.NewProgram(models.NewEstimatorModel(d), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("running estimator: %w", err)
	}

	m, ok := final.(models.EstimatorModel)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected model %T", final)
	}
	w := m.Wizard()
	return Outcome{
		Submitted: w.Submitted(),
		Aborted:   m.Aborted() || !w.Submitted(),
		Answers:   w.Answers().Clone(),
		Total:     w.Total(),
	}, nil
}
