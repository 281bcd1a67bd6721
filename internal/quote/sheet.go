package quote

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Dallionking/project-estimator/internal/catalogue"
)

// Sheet is a YAML answer sheet for scripted estimates. Keys match the
// interactive form field names.
//
//	clientName: Acme
//	email: ops@acme.test
//	categories: [development]
//	services:
//	  web-app: [auth, payments]
//	signature: Jane Doe
//	agreed: true
type Sheet struct {
	ClientName    string `yaml:"clientName"`
	ContactName   string `yaml:"contactName"`
	Email         string `yaml:"email"`
	ContactNumber string `yaml:"contactNumber"`
	CompanyName   string `yaml:"companyName"`
	Industry      string `yaml:"industry"`

	ProjectName        string `yaml:"projectName"`
	ProjectDescription string `yaml:"projectDescription"`
	Objectives         string `yaml:"objectives"`
	TargetAudience     string `yaml:"targetAudience"`
	Budget             string `yaml:"budget"`
	StartDate          string `yaml:"startDate"`
	EndDate            string `yaml:"endDate"`
	Milestones         string `yaml:"milestones"`
	Background         string `yaml:"background"`
	Stakeholders       string `yaml:"stakeholders"`
	Goals              string `yaml:"goals"`
	Constraints        string `yaml:"constraints"`
	ExpansionPlans     string `yaml:"expansionPlans"`

	Categories []string            `yaml:"categories"`
	Services   map[string][]string `yaml:"services"`

	Signature string `yaml:"signature"`
	Agreed    bool   `yaml:"agreed"`
}

// LoadSheet reads an answer sheet from disk.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	s, err := ParseSheet(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing sheet %s: %w", path, err)
	}
	return s, nil
}

// ParseSheet decodes a sheet. Unknown keys are rejected so typos surface.
func ParseSheet(r io.Reader) (*Sheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Sheet
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, err
	}
	return &s, nil
}

func (s *Sheet) fields() map[string]string {
	return map[string]string{
		FieldClientName:         s.ClientName,
		FieldContactName:        s.ContactName,
		FieldEmail:              s.Email,
		FieldContactNumber:      s.ContactNumber,
		FieldCompanyName:        s.CompanyName,
		FieldIndustry:           s.Industry,
		FieldProjectName:        s.ProjectName,
		FieldProjectDescription: s.ProjectDescription,
		FieldObjectives:         s.Objectives,
		FieldTargetAudience:     s.TargetAudience,
		FieldBudget:             s.Budget,
		FieldStartDate:          s.StartDate,
		FieldEndDate:            s.EndDate,
		FieldMilestones:         s.Milestones,
		FieldBackground:         s.Background,
		FieldStakeholders:       s.Stakeholders,
		FieldGoals:              s.Goals,
		FieldConstraints:        s.Constraints,
		FieldExpansionPlans:     s.ExpansionPlans,
		FieldSignature:          s.Signature,
	}
}

// Apply walks w from the first step to Review, filling each step from the
// sheet and advancing through the same gates as the interactive flow. On
// failure the wizard stays on the failing step and the returned error is a
// *ValidationFailure or describes the unknown catalogue reference.
func (s *Sheet) Apply(w *Wizard) error {
	if w.CatalogueStatus() != CatalogueReady {
		return ErrCatalogueUnavailable
	}
	cat := w.Catalogue()
	w.JumpTo(FirstStep)

	values := s.fields()
	fill := func(step Step) {
		for _, f := range step.Fields() {
			if v, ok := values[f]; ok {
				w.SetField(f, v)
			}
		}
	}
	advance := func() error {
		step := w.Current()
		if !w.Advance() {
			return &ValidationFailure{Step: step, Errors: w.Errors()}
		}
		return nil
	}

	fill(StepClientInfo)
	if err := advance(); err != nil {
		return err
	}
	fill(StepProjectDetails)
	if err := advance(); err != nil {
		return err
	}

	for _, c := range s.Categories {
		cc := catalogue.Category(c)
		if !cc.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
		if !w.Answers().Selection.HasCategory(cc) {
			w.ToggleCategory(cc)
		}
	}
	if err := advance(); err != nil {
		return err
	}

	ids := make([]string, 0, len(s.Services))
	for id := range s.Services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		svc, ok := cat.Lookup(id)
		if !ok {
			return fmt.Errorf("unknown service %q", id)
		}
		if !w.Answers().Selection.HasService(id) {
			w.ToggleService(svc)
		}
	}
	if err := advance(); err != nil {
		return err
	}

	for _, id := range ids {
		for _, fid := range s.Services[id] {
			f, ok := cat.FindFeature(id, fid)
			if !ok {
				return fmt.Errorf("unknown feature %q for service %q", fid, id)
			}
			if !w.Answers().Selection.HasFeature(id, fid) {
				w.ToggleFeature(id, f)
			}
		}
	}
	if err := advance(); err != nil {
		return err
	}

	fill(StepReview)
	w.SetAgreed(s.Agreed)
	return nil
}
