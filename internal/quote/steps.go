package quote

import (
	"fmt"
	"time"
)

// Step identifies one page of the wizard.
type Step int

const (
	StepClientInfo Step = iota
	StepProjectDetails
	StepCategory
	StepServices
	StepFeatures
	StepReview
)

// FirstStep and LastStep bound the step sequence.
const (
	FirstStep = StepClientInfo
	LastStep  = StepReview
)

// stepDef pairs a step's title with its validation rule set.
type stepDef struct {
	title    string
	short    string
	fields   []string
	validate func(a *Answers, now time.Time) Errors
}

// stepTable is the single dispatch point from step to behaviour.
var stepTable = map[Step]stepDef{
	StepClientInfo: {
		title: "Client Information",
		short: "Client",
		fields: []string{
			FieldClientName, FieldContactName, FieldEmail, FieldContactNumber,
			FieldCompanyName, FieldIndustry,
		},
		validate: validateClientInfo,
	},
	StepProjectDetails: {
		title: "Project Details",
		short: "Project",
		fields: []string{
			FieldProjectName, FieldProjectDescription, FieldObjectives, FieldTargetAudience,
			FieldBudget, FieldStartDate, FieldEndDate, FieldMilestones, FieldBackground,
			FieldStakeholders, FieldGoals, FieldConstraints, FieldExpansionPlans,
		},
		validate: validateProjectDetails,
	},
	StepCategory: {
		title:    "Service Categories",
		short:    "Category",
		fields:   []string{FieldCategories},
		validate: validateCategory,
	},
	StepServices: {
		title:    "Services",
		short:    "Services",
		fields:   []string{FieldServices},
		validate: validateServices,
	},
	StepFeatures: {
		title:    "Features",
		short:    "Features",
		fields:   []string{FieldFeatures},
		validate: validateFeatures,
	},
	StepReview: {
		title:    "Review & Submit",
		short:    "Review",
		fields:   []string{FieldSignature, FieldAgreed},
		validate: validateReview,
	},
}

// Steps returns every step in order.
func Steps() []Step {
	return []Step{StepClientInfo, StepProjectDetails, StepCategory, StepServices, StepFeatures, StepReview}
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := stepTable[s]
	return ok
}

// Title is the heading shown above the step.
func (s Step) Title() string {
	if d, ok := stepTable[s]; ok {
		return d.title
	}
	return fmt.Sprintf("Step %d", int(s))
}

// String returns the short label used in progress indicators.
func (s Step) String() string {
	if d, ok := stepTable[s]; ok {
		return d.short
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Fields returns the field names owned by the step, in form order.
func (s Step) Fields() []string {
	d := stepTable[s]
	out := make([]string, len(d.fields))
	copy(out, d.fields)
	return out
}

// StepLabels returns the short labels of every step.
func StepLabels() []string {
	steps := Steps()
	labels := make([]string, len(steps))
	for i, s := range steps {
		labels[i] = s.String()
	}
	return labels
}
