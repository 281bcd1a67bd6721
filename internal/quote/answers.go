// Package quote holds the estimator wizard's state and rules: the answer
// record, the selection model, price aggregation, per-step validation and
// the step controller.
package quote

// Field names double as JSON keys of the submitted payload.
const (
	FieldClientName         = "clientName"
	FieldContactName        = "contactName"
	FieldEmail              = "email"
	FieldContactNumber      = "contactNumber"
	FieldCompanyName        = "companyName"
	FieldIndustry           = "industry"
	FieldProjectName        = "projectName"
	FieldProjectDescription = "projectDescription"
	FieldObjectives         = "objectives"
	FieldTargetAudience     = "targetAudience"
	FieldBudget             = "budget"
	FieldStartDate          = "startDate"
	FieldEndDate            = "endDate"
	FieldMilestones         = "milestones"
	FieldBackground         = "background"
	FieldStakeholders       = "stakeholders"
	FieldGoals              = "goals"
	FieldConstraints        = "constraints"
	FieldExpansionPlans     = "expansionPlans"
	FieldCategories         = "selectedCategories"
	FieldServices           = "selectedServices"
	FieldFeatures           = "selectedFeatures"
	FieldSignature          = "signature"
	FieldAgreed             = "agreed"

	// FieldCatalogue reports an unavailable catalogue on the Services step.
	FieldCatalogue = "catalogue"
)

// DateLayout is the accepted format for start and end dates.
const DateLayout = "2006-01-02"

// Answers is every value collected by the wizard. It is the single source of
// truth for the whole flow; steps keep no private state.
type Answers struct {
	ClientName    string
	ContactName   string
	Email         string
	ContactNumber string
	CompanyName   string
	Industry      string

	ProjectName        string
	ProjectDescription string
	Objectives         string
	TargetAudience     string
	Budget             string
	StartDate          string
	EndDate            string
	Milestones         string
	Background         string
	Stakeholders       string
	Goals              string
	Constraints        string
	ExpansionPlans     string

	Selection Selection

	Signature string
	Agreed    bool
}

// textFields lists the string-valued fields in form order.
var textFields = []string{
	FieldClientName, FieldContactName, FieldEmail, FieldContactNumber, FieldCompanyName, FieldIndustry,
	FieldProjectName, FieldProjectDescription, FieldObjectives, FieldTargetAudience, FieldBudget,
	FieldStartDate, FieldEndDate, FieldMilestones, FieldBackground, FieldStakeholders, FieldGoals,
	FieldConstraints, FieldExpansionPlans, FieldSignature,
}

// TextFields returns the names of every string-valued field.
func TextFields() []string {
	out := make([]string, len(textFields))
	copy(out, textFields)
	return out
}

func (a *Answers) ref(field string) *string {
	switch field {
	case FieldClientName:
		return &a.ClientName
	case FieldContactName:
		return &a.ContactName
	case FieldEmail:
		return &a.Email
	case FieldContactNumber:
		return &a.ContactNumber
	case FieldCompanyName:
		return &a.CompanyName
	case FieldIndustry:
		return &a.Industry
	case FieldProjectName:
		return &a.ProjectName
	case FieldProjectDescription:
		return &a.ProjectDescription
	case FieldObjectives:
		return &a.Objectives
	case FieldTargetAudience:
		return &a.TargetAudience
	case FieldBudget:
		return &a.Budget
	case FieldStartDate:
		return &a.StartDate
	case FieldEndDate:
		return &a.EndDate
	case FieldMilestones:
		return &a.Milestones
	case FieldBackground:
		return &a.Background
	case FieldStakeholders:
		return &a.Stakeholders
	case FieldGoals:
		return &a.Goals
	case FieldConstraints:
		return &a.Constraints
	case FieldExpansionPlans:
		return &a.ExpansionPlans
	case FieldSignature:
		return &a.Signature
	}
	return nil
}

// Get returns a string field by name; unknown names return "".
func (a *Answers) Get(field string) string {
	if p := a.ref(field); p != nil {
		return *p
	}
	return ""
}

// Set assigns a string field by name and reports whether the name is known.
func (a *Answers) Set(field, value string) bool {
	p := a.ref(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Clone returns a copy. Selection is immutable, so a shallow copy suffices.
func (a *Answers) Clone() Answers {
	return *a
}
