package health

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// FormatReport renders the report for `estimator doctor`: results grouped by
// category, a fix hint under each problem, and what the failures break.
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString("\n  " + styles.Title.Render("Estimator Doctor") + "\n")
	b.WriteString("  " + styles.Divider(50) + "\n")

	grouped := make(map[string][]CheckResult)
	for _, res := range r.Results {
		grouped[res.Category] = append(grouped[res.Category], res)
	}

	nameStyle := lipgloss.NewStyle().Width(22).Foreground(styles.TextPrimary)
	msgStyle := lipgloss.NewStyle().Width(48).Foreground(styles.TextSecondary)
	durStyle := lipgloss.NewStyle().Width(8).Foreground(styles.TextMuted).Align(lipgloss.Right)
	hintStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Italic(true)
	areaStyle := lipgloss.NewStyle().Foreground(styles.AccentSecondary).Bold(true).MarginTop(1)

	for _, a := range areas {
		results := grouped[a.key]
		if len(results) == 0 {
			continue
		}
		b.WriteString("\n  " + areaStyle.Render(a.label) + "\n")

		for _, res := range results {
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				statusSymbol(res.Status),
				nameStyle.Render(res.Name),
				msgStyle.Render(styles.TruncateWithEllipsis(res.Message, 46)),
				durStyle.Render(formatDuration(res.Duration)))
			if res.Status != StatusPass && res.Hint != "" {
				b.WriteString("      " + hintStyle.Render("fix: "+res.Hint) + "\n")
			}
		}
	}

	if impacts := r.Impacts(); len(impacts) > 0 {
		b.WriteString("\n  " + areaStyle.Render("Impact") + "\n")
		for _, line := range impacts {
			b.WriteString("  " + styles.Red("•") + " " + line + "\n")
		}
	}

	b.WriteString("\n  " + styles.Divider(50) + "\n")
	summary := fmt.Sprintf("%d/%d passed", r.Passed, r.Total)
	if r.Warned > 0 {
		summary += fmt.Sprintf(", %d warning(s)", r.Warned)
	}
	if r.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", r.Failed)
	}
	b.WriteString("  " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(summary))
	b.WriteString("  " + overallBadge(r) + "\n")
	b.WriteString(styles.Dim(fmt.Sprintf("  completed in %s", formatDuration(r.Duration))) + "\n")

	return b.String()
}

func statusSymbol(s Status) string {
	switch s {
	case StatusPass:
		return lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render("+")
	case StatusWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarn).Bold(true).Render("!")
	case StatusFail:
		return lipgloss.NewStyle().Foreground(styles.StatusError).Bold(true).Render("x")
	default:
		return styles.Dim("?")
	}
}

// overallBadge is BLOCKED when the wizard cannot be used, DEGRADED for any
// other problem and READY otherwise.
func overallBadge(r *Report) string {
	switch {
	case !r.WizardReady:
		return styles.Badge("BLOCKED", styles.StatusError)
	case r.Failed > 0 || r.Warned > 0:
		return styles.Badge("DEGRADED", styles.StatusWarn)
	default:
		return styles.Badge("READY", styles.StatusOK)
	}
}

func formatDuration(d interface{ Milliseconds() int64 }) string {
	ms := d.Milliseconds()
	if ms < 1 {
		return "<1ms"
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
}
