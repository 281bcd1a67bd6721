// Package intake sends finished estimates to the backend's contact endpoint.
package intake

import (
	"encoding/json"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/quote"
)

// TypeProject is the discriminator the contact endpoint routes on.
const TypeProject = "project"

// ServiceRef is a selected service without its feature tree.
type ServiceRef struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Category catalogue.Category `json:"category"`
}

// FeatureRef is a selected feature reduced to what the backend stores.
type FeatureRef struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

// Payload is the request body of POST /contact.
type Payload struct {
	Type string `json:"type"`

	ClientName    string `json:"clientName"`
	ContactName   string `json:"contactName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	CompanyName   string `json:"companyName"`
	Industry      string `json:"industry"`

	ProjectName        string `json:"projectName"`
	ProjectDescription string `json:"projectDescription"`
	Objectives         string `json:"objectives"`
	TargetAudience     string `json:"targetAudience"`
	Budget             string `json:"budget"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	Milestones         string `json:"milestones"`
	Background         string `json:"background"`
	Stakeholders       string `json:"stakeholders"`
	Goals              string `json:"goals"`
	Constraints        string `json:"constraints"`
	ExpansionPlans     string `json:"expansionPlans"`

	SelectedCategories []catalogue.Category             `json:"selectedCategories"`
	SelectedServices   map[string]ServiceRef            `json:"selectedServices"`
	SelectedFeatures   map[string]map[string]FeatureRef `json:"selectedFeatures"`

	Signature      string      `json:"signature"`
	Agreed         bool        `json:"agreed"`
	EstimatedTotal json.Number `json:"estimatedTotal"`
}

// NewPayload flattens answers into the wire shape.
func NewPayload(a quote.Answers) Payload {
	sel := a.Selection

	p := Payload{
		Type:               TypeProject,
		ClientName:         a.ClientName,
		ContactName:        a.ContactName,
		Email:              a.Email,
		ContactNumber:      a.ContactNumber,
		CompanyName:        a.CompanyName,
		Industry:           a.Industry,
		ProjectName:        a.ProjectName,
		ProjectDescription: a.ProjectDescription,
		Objectives:         a.Objectives,
		TargetAudience:     a.TargetAudience,
		Budget:             a.Budget,
		StartDate:          a.StartDate,
		EndDate:            a.EndDate,
		Milestones:         a.Milestones,
		Background:         a.Background,
		Stakeholders:       a.Stakeholders,
		Goals:              a.Goals,
		Constraints:        a.Constraints,
		ExpansionPlans:     a.ExpansionPlans,
		SelectedCategories: sel.Categories(),
		SelectedServices:   make(map[string]ServiceRef, sel.ServiceCount()),
		SelectedFeatures:   make(map[string]map[string]FeatureRef, sel.ServiceCount()),
		Signature:          a.Signature,
		Agreed:             a.Agreed,
		EstimatedTotal:     json.Number(quote.Total(sel).String()),
	}
	if p.SelectedCategories == nil {
		p.SelectedCategories = []catalogue.Category{}
	}

	for _, svc := range sel.Services() {
		p.SelectedServices[svc.ID] = ServiceRef{ID: svc.ID, Name: svc.Name, Category: svc.Category}

		features := sel.Features(svc.ID)
		inner := make(map[string]FeatureRef, len(features))
		for _, f := range features {
			inner[f.ID] = FeatureRef{ID: f.ID, Name: f.Name, Price: json.Number(f.Price.String())}
		}
		p.SelectedFeatures[svc.ID] = inner
	}
	return p
}
