package quote

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Errors maps a field name to a user-facing message. An empty map is valid.
type Errors map[string]string

// OK reports whether there are no errors.
func (e Errors) OK() bool {
	return len(e) == 0
}

// Fields returns the failing field names sorted.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// Validate runs the rules of step against the answers. now fixes "today" for
// the start-date rule.
func Validate(step Step, a *Answers, now time.Time) Errors {
	d, ok := stepTable[step]
	if !ok {
		return Errors{}
	}
	return d.validate(a, now)
}

// ValidateField re-evaluates a single field of step and returns its message,
// or "" when the field currently satisfies its rules.
func ValidateField(step Step, field string, a *Answers, now time.Time) string {
	return Validate(step, a, now)[field]
}

func validateClientInfo(a *Answers, _ time.Time) Errors {
	errs := Errors{}
	requireText(errs, FieldClientName, a.ClientName, "Client name is required")
	requireText(errs, FieldContactName, a.ContactName, "Primary contact name is required")

	switch email := strings.TrimSpace(a.Email); {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Please enter a valid email address"
	}

	switch phone := strings.TrimSpace(a.ContactNumber); {
	case phone == "":
		errs[FieldContactNumber] = "Contact number is required"
	case !phonePattern.MatchString(phoneStrip.Replace(phone)):
		errs[FieldContactNumber] = "Please enter a valid phone number"
	}
	return errs
}

func validateProjectDetails(a *Answers, now time.Time) Errors {
	errs := Errors{}
	requireText(errs, FieldProjectName, a.ProjectName, "Project name is required")
	requireText(errs, FieldProjectDescription, a.ProjectDescription, "Project description is required")

	start, startOK := parseDate(errs, FieldStartDate, a.StartDate, "Start date", now.Location())
	end, endOK := parseDate(errs, FieldEndDate, a.EndDate, "End date", now.Location())

	if startOK {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if start.Before(today) {
			errs[FieldStartDate] = "Start date cannot be in the past"
		}
	}
	if startOK && endOK && end.Before(start) {
		errs[FieldEndDate] = "End date cannot be before start date"
	}

	if b := strings.TrimSpace(a.Budget); b != "" {
		amount, err := parseBudget(b)
		switch {
		case err != nil:
			errs[FieldBudget] = "Budget must be a number"
		case amount.IsNegative():
			errs[FieldBudget] = "Budget cannot be negative"
		}
	}
	return errs
}

func validateCategory(a *Answers, _ time.Time) Errors {
	errs := Errors{}
	if a.Selection.CategoryCount() == 0 {
		errs[FieldCategories] = "Please select at least one category"
	}
	return errs
}

func validateServices(a *Answers, _ time.Time) Errors {
	errs := Errors{}
	if a.Selection.ServiceCount() == 0 {
		errs[FieldServices] = "Please select at least one service"
	}
	return errs
}

// Features are optional: a service may have none selected.
func validateFeatures(*Answers, time.Time) Errors {
	return Errors{}
}

func validateReview(a *Answers, _ time.Time) Errors {
	errs := Errors{}
	if !a.Agreed {
		errs[FieldAgreed] = "You must agree to the terms and conditions"
	}
	requireText(errs, FieldSignature, a.Signature, "Signature is required")
	return errs
}

func requireText(errs Errors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msg
	}
}

// parseDate parses an optional date. It reports ok only for a present,
// well-formed value and records a format error otherwise.
func parseDate(errs Errors, field, value, label string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		errs[field] = label + " must be a date in YYYY-MM-DD format"
		return time.Time{}, false
	}
	return t, true
}

// BudgetAmount parses the budget answer. ok is false when it is empty or not
// a number.
func BudgetAmount(a *Answers) (decimal.Decimal, bool) {
	b := strings.TrimSpace(a.Budget)
	if b == "" {
		return decimal.Zero, false
	}
	amount, err := parseBudget(b)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// parseBudget accepts "5000", "5,000.50", "$5000" and "-$5". At most one
// sign is allowed, before the currency symbol.
func parseBudget(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}
	s = strings.TrimPrefix(s, "$")
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return decimal.Zero, fmt.Errorf("budget %q has more than one sign", s)
	}
	return decimal.NewFromString(sign + s)
}
