package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dallionking/project-estimator/internal/backend"
	"github.com/Dallionking/project-estimator/internal/catalogue"
)

type fakeSubmitter struct {
	calls int
	got   Answers
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, a Answers) error {
	f.calls++
	f.got = a
	return f.err
}

func TestWizard_StartsOnClientInfo(t *testing.T) {
	w := New()
	require.Equal(t, StepClientInfo, w.Current())
	require.Equal(t, CatalogueLoading, w.CatalogueStatus())
	require.Equal(t, SubmitIdle, w.SubmitState())
	require.Empty(t, w.Errors())
}

func TestWizard_AdvanceBlockedByInvalidEmail(t *testing.T) {
	w := New(WithClock(clock))
	w.Update(validClientInfo)
	w.SetField(FieldEmail, "not-an-email")

	require.False(t, w.Advance())
	require.Equal(t, StepClientInfo, w.Current())
	require.Equal(t, "Please enter a valid email address", w.Error(FieldEmail))
	require.Len(t, w.Errors(), 1)
}

func TestWizard_AdvanceBlockedByEndBeforeStart(t *testing.T) {
	w := wizardAt(StepProjectDetails)
	w.Update(func(a *Answers) {
		validProjectDetails(a)
		a.StartDate = "2026-06-01"
		a.EndDate = "2026-05-01"
	})

	require.False(t, w.Advance())
	require.Equal(t, StepProjectDetails, w.Current())
	require.NotEmpty(t, w.Error(FieldEndDate))
}

func TestWizard_AdvanceClampsAtReview(t *testing.T) {
	w := wizardAt(StepReview)
	w.Update(func(a *Answers) {
		a.Agreed = true
		a.Signature = "Jane Doe"
	})

	require.True(t, w.Advance())
	require.Equal(t, StepReview, w.Current())
}

func TestWizard_ZeroFeaturesAdvanceToReview(t *testing.T) {
	w := wizardAt(StepFeatures)
	require.Equal(t, 0, w.Answers().Selection.FeatureCount())

	require.True(t, w.Advance())
	require.Equal(t, StepReview, w.Current())
}

func TestWizard_ServicesRequiresCatalogue(t *testing.T) {
	w := wizardAt(StepServices)
	w.ToggleService(testCatalogue()["cloud"])
	w.CatalogueRetry()

	require.False(t, w.Advance())
	require.Equal(t, StepServices, w.Current())
	require.NotEmpty(t, w.Error(FieldCatalogue))

	w.CatalogueFailed(errors.New("boom"))
	require.False(t, w.Advance())
	require.Contains(t, w.Error(FieldCatalogue), "could not be loaded")

	w.SetCatalogue(testCatalogue())
	require.Empty(t, w.Error(FieldCatalogue))
	require.True(t, w.Advance())
	require.Equal(t, StepFeatures, w.Current())
}

func TestWizard_RetreatKeepsAnswersAndSkipsValidation(t *testing.T) {
	w := wizardAt(StepProjectDetails)
	w.SetField(FieldProjectName, "")

	w.Retreat()
	require.Equal(t, StepClientInfo, w.Current())
	require.Equal(t, "Acme", w.Answers().ClientName)
	require.Empty(t, w.Errors())

	w.Retreat()
	require.Equal(t, StepClientInfo, w.Current())
}

func TestWizard_JumpTo(t *testing.T) {
	t.Run("backward always allowed", func(t *testing.T) {
		w := wizardAt(StepFeatures)
		w.Update(func(a *Answers) { a.ClientName = "" })

		require.True(t, w.JumpTo(StepClientInfo))
		require.Equal(t, StepClientInfo, w.Current())
		require.Equal(t, StepFeatures, w.Furthest())
	})

	t.Run("forward blocked by current step", func(t *testing.T) {
		w := New(WithClock(clock))
		require.False(t, w.JumpTo(StepReview))
		require.Equal(t, StepClientInfo, w.Current())
		require.NotEmpty(t, w.Errors())
	})

	t.Run("forward limited to reached steps and the next one", func(t *testing.T) {
		w := New(WithClock(clock))
		w.SetCatalogue(testCatalogue())
		w.Update(validClientInfo)

		require.False(t, w.JumpTo(StepReview))
		require.False(t, w.JumpTo(StepCategory))
		require.Equal(t, StepClientInfo, w.Current())

		require.True(t, w.JumpTo(StepProjectDetails))
		require.Equal(t, StepProjectDetails, w.Furthest())
		require.True(t, w.JumpTo(StepClientInfo))
		require.True(t, w.JumpTo(StepProjectDetails))
	})

	t.Run("forward to a reached step validates only the current step", func(t *testing.T) {
		w := wizardAt(StepFeatures)
		require.True(t, w.JumpTo(StepClientInfo))
		require.True(t, w.JumpTo(StepFeatures))
		require.Equal(t, StepFeatures, w.Current())
	})

	t.Run("same step and unknown step", func(t *testing.T) {
		w := New()
		require.True(t, w.JumpTo(StepClientInfo))
		require.False(t, w.JumpTo(Step(42)))
		require.Equal(t, StepClientInfo, w.Current())
	})
}

func TestWizard_BlurSetsAndClearsOneField(t *testing.T) {
	w := New(WithClock(clock))
	w.SetField(FieldEmail, "bad")

	w.Blur(FieldEmail)
	require.Equal(t, map[string]string{FieldEmail: "Please enter a valid email address"}, map[string]string(w.Errors()))

	w.SetField(FieldEmail, "ok@example.com")
	require.Empty(t, w.Errors())

	w.Blur(FieldCompanyName)
	require.Empty(t, w.Errors())
}

func TestWizard_EditClearsFixedErrorsOnly(t *testing.T) {
	w := New(WithClock(clock))
	require.False(t, w.Advance())
	require.Len(t, w.Errors(), 4)

	w.SetField(FieldClientName, "Acme")
	require.Len(t, w.Errors(), 3)
	require.Empty(t, w.Error(FieldClientName))

	w.SetField(FieldEmail, "still-bad")
	require.Equal(t, "Please enter a valid email address", w.Error(FieldEmail))

	require.False(t, w.SetField("nope", "x"))
}

func TestWizard_ReviewScenario(t *testing.T) {
	w := wizardAt(StepReview)

	require.False(t, w.Advance())
	require.NotEmpty(t, w.Error(FieldAgreed))
	require.NotEmpty(t, w.Error(FieldSignature))

	sub := &fakeSubmitter{}
	err := w.Submit(context.Background(), sub)
	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	require.Equal(t, StepReview, vf.Step)
	require.Equal(t, []string{FieldAgreed, FieldSignature}, vf.Errors.Fields())
	require.Zero(t, sub.calls)

	w.SetAgreed(true)
	require.Empty(t, w.Error(FieldAgreed))
	require.NotEmpty(t, w.Error(FieldSignature))
	w.SetField(FieldSignature, "Jane Doe")
	require.Empty(t, w.Errors())
	require.True(t, w.Advance())
}

func reviewReady() *Wizard {
	w := wizardAt(StepReview)
	w.SetAgreed(true)
	w.SetField(FieldSignature, "Jane Doe")
	return w
}

func TestWizard_SubmitSuccessIsTerminal(t *testing.T) {
	w := reviewReady()
	sub := &fakeSubmitter{}

	require.NoError(t, w.Submit(context.Background(), sub))
	require.True(t, w.Submitted())
	require.Equal(t, 1, sub.calls)
	require.Equal(t, "Acme", sub.got.ClientName)
	require.True(t, sub.got.Selection.HasService("web-app"))

	err := w.Submit(context.Background(), sub)
	require.ErrorIs(t, err, ErrAlreadySubmitted)
	require.Equal(t, 1, sub.calls)
}

func TestWizard_SubmitFailureKeepsAnswers(t *testing.T) {
	w := New(WithClock(clock), WithMessageFunc(backend.MessageOf))
	w.SetCatalogue(testCatalogue())
	reviewReadyWith(w)

	sub := &fakeSubmitter{err: &backend.APIError{Status: 500, Message: "Failed to submit project details"}}
	err := w.Submit(context.Background(), sub)
	require.Error(t, err)

	require.Equal(t, SubmitFailed, w.SubmitState())
	require.Equal(t, "Failed to submit project details", w.SubmitError())
	require.Equal(t, StepReview, w.Current())
	require.Equal(t, "Acme", w.Answers().ClientName)
	require.Equal(t, "Jane Doe", w.Answers().Signature)
	require.True(t, w.Answers().Selection.HasService("web-app"))

	sub.err = nil
	require.NoError(t, w.Submit(context.Background(), sub))
	require.True(t, w.Submitted())
	require.Empty(t, w.SubmitError())
}

// reviewReadyWith drives an existing wizard to a submittable Review step.
func reviewReadyWith(w *Wizard) {
	cat := w.Catalogue()
	w.Update(validClientInfo)
	w.Advance()
	w.Update(validProjectDetails)
	w.Advance()
	w.ToggleCategory(catalogue.CategoryDevelopment)
	w.Advance()
	w.ToggleService(cat["web-app"])
	w.Advance()
	w.Advance()
	w.SetAgreed(true)
	w.SetField(FieldSignature, "Jane Doe")
}

func TestWizard_SubmitFallbackMessage(t *testing.T) {
	w := reviewReady()
	w.FinishSubmit(errors.New("connection refused"))
	require.Equal(t, FallbackSubmitMessage, w.SubmitError())

	w = reviewReady()
	w.message = backend.MessageOf
	w.FinishSubmit(&backend.APIError{Status: 502})
	require.Equal(t, FallbackSubmitMessage, w.SubmitError())
}

func TestWizard_BeginSubmitRejectsDoubleSubmit(t *testing.T) {
	w := reviewReady()

	snapshot, err := w.BeginSubmit()
	require.NoError(t, err)
	require.Equal(t, "Acme", snapshot.ClientName)
	require.Equal(t, SubmitInFlight, w.SubmitState())

	_, err = w.BeginSubmit()
	require.ErrorIs(t, err, ErrSubmitInFlight)

	w.FinishSubmit(nil)
	require.True(t, w.Submitted())
}

func TestWizard_TotalTracksSelection(t *testing.T) {
	w := wizardAt(StepFeatures)
	cat := w.Catalogue()
	auth, _ := cat.FindFeature("web-app", "auth")
	payments, _ := cat.FindFeature("web-app", "payments")

	w.ToggleFeature("web-app", auth)
	w.ToggleFeature("web-app", payments)
	require.Equal(t, "1700", w.Total().String())

	w.ToggleService(cat["web-app"])
	require.True(t, w.Total().IsZero())
}

func TestWizard_SubmitUnreachableWithoutServices(t *testing.T) {
	w := New(WithClock(clock))
	w.SetCatalogue(testCatalogue())
	w.Update(validClientInfo)

	require.False(t, w.JumpTo(StepReview))
	w.SetAgreed(true)
	w.SetField(FieldSignature, "Jane Doe")

	sub := &fakeSubmitter{}
	var vf *ValidationFailure
	require.ErrorAs(t, w.Submit(context.Background(), sub), &vf)
	require.Equal(t, StepProjectDetails, vf.Step)
	require.Equal(t, StepProjectDetails, w.Current())
	require.NotEmpty(t, w.Error(FieldProjectName))
	require.Zero(t, sub.calls)
	require.Equal(t, SubmitIdle, w.SubmitState())
}

func TestWizard_SubmitRechecksEditedSteps(t *testing.T) {
	w := reviewReady()
	cat := w.Catalogue()

	// Drop the only service, step back without validation, then jump to Review.
	require.True(t, w.JumpTo(StepServices))
	w.ToggleService(cat["web-app"])
	w.Retreat()
	require.True(t, w.JumpTo(StepReview))

	sub := &fakeSubmitter{}
	var vf *ValidationFailure
	require.ErrorAs(t, w.Submit(context.Background(), sub), &vf)
	require.Equal(t, StepServices, vf.Step)
	require.Equal(t, StepServices, w.Current())
	require.NotEmpty(t, w.Error(FieldServices))
	require.Zero(t, sub.calls)
}
