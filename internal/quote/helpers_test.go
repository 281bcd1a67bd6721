package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/project-estimator/internal/catalogue"
)

var fixedNow = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func feature(id, name string, price int64) catalogue.Feature {
	return catalogue.Feature{ID: id, Name: name, Price: decimal.NewFromInt(price)}
}

func testCatalogue() catalogue.Catalogue {
	return catalogue.Catalogue{
		"web-app": {
			ID:       "web-app",
			Name:     "Web Application",
			Category: catalogue.CategoryDevelopment,
			FeatureCategories: []catalogue.FeatureCategory{
				{ID: "core", Name: "Core", Features: []catalogue.Feature{
					feature("auth", "Authentication", 500),
					feature("payments", "Payments", 1200),
				}},
				{ID: "extras", Name: "Extras", Features: []catalogue.Feature{
					feature("i18n", "Localisation", 300),
				}},
			},
		},
		"cloud": {
			ID:       "cloud",
			Name:     "Cloud Setup",
			Category: catalogue.CategoryInfrastructure,
			FeatureCategories: []catalogue.FeatureCategory{
				{ID: "ops", Name: "Ops", Features: []catalogue.Feature{
					feature("ci", "CI Pipeline", 800),
				}},
			},
		},
	}
}

func validClientInfo(a *Answers) {
	a.ClientName = "Acme"
	a.ContactName = "Jane Doe"
	a.Email = "jane@acme.test"
	a.ContactNumber = "+1 (555) 123-4567"
}

func validProjectDetails(a *Answers) {
	a.ProjectName = "Storefront"
	a.ProjectDescription = "A new online store"
}

// wizardAt returns a wizard with a loaded catalogue that has been advanced,
// with valid answers, up to step.
func wizardAt(step Step) *Wizard {
	w := New(WithClock(clock))
	cat := testCatalogue()
	w.SetCatalogue(cat)
	for w.Current() < step {
		switch w.Current() {
		case StepClientInfo:
			w.Update(validClientInfo)
		case StepProjectDetails:
			w.Update(validProjectDetails)
		case StepCategory:
			w.ToggleCategory(catalogue.CategoryDevelopment)
		case StepServices:
			w.ToggleService(cat["web-app"])
		}
		if !w.Advance() {
			panic("fixture could not advance from " + w.Current().String())
		}
	}
	return w
}
