package quote

import (
	"fmt"
	"strings"
)

// Brief renders the answers as a Markdown project brief. Empty optional
// fields are left out.
func Brief(a *Answers) string {
	var b strings.Builder

	title := strings.TrimSpace(a.ProjectName)
	if title == "" {
		title = "Untitled project"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Client\n\n")
	writeRows(&b, [][2]string{
		{"Client", a.ClientName},
		{"Contact", a.ContactName},
		{"Email", a.Email},
		{"Phone", a.ContactNumber},
		{"Company", a.CompanyName},
		{"Industry", a.Industry},
	})

	b.WriteString("## Project\n\n")
	if d := strings.TrimSpace(a.ProjectDescription); d != "" {
		b.WriteString(d + "\n\n")
	}
	budget := strings.TrimSpace(a.Budget)
	if amount, ok := BudgetAmount(a); ok {
		budget = FormatMoney(amount)
	}
	writeRows(&b, [][2]string{
		{"Objectives", a.Objectives},
		{"Target audience", a.TargetAudience},
		{"Budget", budget},
		{"Start date", a.StartDate},
		{"End date", a.EndDate},
		{"Milestones", a.Milestones},
		{"Background", a.Background},
		{"Stakeholders", a.Stakeholders},
		{"Goals", a.Goals},
		{"Constraints", a.Constraints},
		{"Expansion plans", a.ExpansionPlans},
	})

	sel := a.Selection
	if cats := sel.Categories(); len(cats) > 0 {
		labels := make([]string, len(cats))
		for i, c := range cats {
			labels[i] = c.Label()
		}
		fmt.Fprintf(&b, "## Categories\n\n%s\n\n", strings.Join(labels, ", "))
	}

	b.WriteString("## Services\n\n")
	lines := Breakdown(sel)
	if len(lines) == 0 {
		b.WriteString("_No services selected._\n\n")
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "### %s (%s)\n\n", line.ServiceName, FormatMoney(line.Subtotal))
		features := sel.Features(line.ServiceID)
		if len(features) == 0 {
			b.WriteString("_No features selected._\n\n")
			continue
		}
		for _, f := range features {
			fmt.Fprintf(&b, "- %s: %s\n", f.Name, FormatMoney(f.Price))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Estimated total: %s**\n", FormatMoney(Total(sel)))
	return b.String()
}

func writeRows(b *strings.Builder, rows [][2]string) {
	wrote := false
	for _, r := range rows {
		v := strings.TrimSpace(r[1])
		if v == "" {
			continue
		}
		fmt.Fprintf(b, "- **%s:** %s\n", r[0], v)
		wrote = true
	}
	if wrote {
		b.WriteString("\n")
	}
}
