package quote

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSheet = `
clientName: Acme
contactName: Jane Doe
email: jane@acme.test
contactNumber: "+44 20 7946 0958"
projectName: Storefront
projectDescription: A new online store
budget: "$5,000"
startDate: "2026-04-01"
categories: [development, infrastructure]
services:
  web-app: [auth, payments]
  cloud: []
signature: Jane Doe
agreed: true
`

func TestLoadSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSheet), 0o644))

	s, err := LoadSheet(path)
	require.NoError(t, err)
	require.Equal(t, "Acme", s.ClientName)
	require.Equal(t, []string{"development", "infrastructure"}, s.Categories)
	require.Equal(t, []string{"auth", "payments"}, s.Services["web-app"])
	require.True(t, s.Agreed)

	_, err = LoadSheet(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestParseSheet_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseSheet(strings.NewReader("clientNmae: typo\n"))
	require.Error(t, err)

	s, err := ParseSheet(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, s.ClientName)
}

func TestSheetApply(t *testing.T) {
	s, err := ParseSheet(strings.NewReader(sampleSheet))
	require.NoError(t, err)

	w := New(WithClock(clock))
	w.SetCatalogue(testCatalogue())
	require.NoError(t, s.Apply(w))

	require.Equal(t, StepReview, w.Current())
	require.Empty(t, w.Errors())
	require.Equal(t, "1700", w.Total().String())
	require.True(t, w.Answers().Selection.HasService("cloud"))
	require.Equal(t, "Jane Doe", w.Answers().Signature)

	_, err = w.BeginSubmit()
	require.NoError(t, err)
}

func TestSheetApply_StopsAtFailingStep(t *testing.T) {
	s, err := ParseSheet(strings.NewReader(sampleSheet))
	require.NoError(t, err)
	s.Email = "not-an-email"

	w := New(WithClock(clock))
	w.SetCatalogue(testCatalogue())
	err = s.Apply(w)

	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	require.Equal(t, StepClientInfo, vf.Step)
	require.Contains(t, vf.Errors, FieldEmail)
	require.Equal(t, StepClientInfo, w.Current())
}

func TestSheetApply_UnknownReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Sheet)
		want   string
	}{
		{"category", func(s *Sheet) { s.Categories = []string{"gardening"} }, `unknown category "gardening"`},
		{"service", func(s *Sheet) { s.Services = map[string][]string{"nope": nil} }, `unknown service "nope"`},
		{"feature", func(s *Sheet) { s.Services = map[string][]string{"cloud": {"auth"}} }, `unknown feature "auth" for service "cloud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSheet(strings.NewReader(sampleSheet))
			require.NoError(t, err)
			tt.mutate(s)

			w := New(WithClock(clock))
			w.SetCatalogue(testCatalogue())
			require.EqualError(t, s.Apply(w), tt.want)
		})
	}
}

func TestSheetApply_NeedsCatalogue(t *testing.T) {
	s, err := ParseSheet(strings.NewReader(sampleSheet))
	require.NoError(t, err)
	require.ErrorIs(t, s.Apply(New(WithClock(clock))), ErrCatalogueUnavailable)
}
