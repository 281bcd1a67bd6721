package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/project-estimator/internal/catalogue"
)

// FallbackSubmitMessage is shown when a failed submission carries no message.
const FallbackSubmitMessage = "Failed to submit project details. Please try again."

var (
	ErrSubmitInFlight       = errors.New("a submission is already in progress")
	ErrAlreadySubmitted     = errors.New("project details were already submitted")
	ErrCatalogueUnavailable = errors.New("service catalogue is not available")
)

// ValidationFailure is returned when an action is blocked by step errors.
type ValidationFailure struct {
	Step   Step
	Errors Errors
}

// Error implements the error interface.
func (v *ValidationFailure) Error() string {
	msgs := make([]string, 0, len(v.Errors))
	for _, f := range v.Errors.Fields() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f, v.Errors[f]))
	}
	return fmt.Sprintf("%s step is incomplete (%s)", v.Step.Title(), strings.Join(msgs, "; "))
}

// Submitter sends finished answers to the intake backend.
type Submitter interface {
	Submit(ctx context.Context, a Answers) error
}

// MessageFunc extracts a user-facing message from a submission error.
type MessageFunc func(error) string

// CatalogueStatus tracks the catalogue fetch for the session.
type CatalogueStatus int

const (
	CatalogueLoading CatalogueStatus = iota
	CatalogueReady
	CatalogueFailed
)

// SubmitState tracks the terminal action.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitInFlight
	SubmitDone
	SubmitFailed
)

// Wizard is the step controller. It owns the answers, the current step and
// the current validation errors. It is not safe for concurrent use; every
// mutation comes from a single user-driven event loop.
type Wizard struct {
	answers  Answers
	current  Step
	furthest Step
	errs     Errors
	now      func() time.Time
	message  MessageFunc

	catalogue    catalogue.Catalogue
	catStatus    CatalogueStatus
	catErr       error
	submitState  SubmitState
	submitErrMsg string
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithClock overrides the clock used for date rules.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithMessageFunc sets how submission errors become user-facing text.
func WithMessageFunc(fn MessageFunc) Option {
	return func(w *Wizard) { w.message = fn }
}

// New creates a wizard on the first step with empty answers and the
// catalogue still loading.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		current:   FirstStep,
		furthest:  FirstStep,
		errs:      Errors{},
		now:       time.Now,
		catStatus: CatalogueLoading,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Current returns the current step.
func (w *Wizard) Current() Step { return w.current }

// Furthest returns the furthest step reached so far.
func (w *Wizard) Furthest() Step { return w.furthest }

// Answers returns the live answer record.
func (w *Wizard) Answers() *Answers { return &w.answers }

// Errors returns a copy of the errors for the current step.
func (w *Wizard) Errors() Errors {
	out := make(Errors, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

// Error returns the current message for field, or "".
func (w *Wizard) Error(field string) string { return w.errs[field] }

// Total is the running estimate for the current selection.
func (w *Wizard) Total() decimal.Decimal { return Total(w.answers.Selection) }

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

// Advance validates the current step and, if it passes, moves to the next
// one. It returns false and keeps the errors when the step is incomplete.
func (w *Wizard) Advance() bool {
	errs := w.validateCurrent()
	w.errs = errs
	if !errs.OK() {
		return false
	}
	next := w.current + 1
	if next > LastStep {
		next = LastStep
	}
	w.moveTo(next)
	return true
}

// Retreat moves back one step without validation. Answers are kept.
func (w *Wizard) Retreat() {
	prev := w.current - 1
	if prev < FirstStep {
		prev = FirstStep
	}
	w.moveTo(prev)
}

// JumpTo moves directly to step. Earlier steps are always reachable. A later
// step is reachable when it was reached before or is the next one, and only
// when the current step validates.
func (w *Wizard) JumpTo(step Step) bool {
	if !step.Valid() {
		return false
	}
	switch {
	case step == w.current:
		return true
	case step < w.current:
		w.moveTo(step)
		return true
	case step > w.furthest && step != w.current+1:
		return false
	}

	errs := w.validateCurrent()
	w.errs = errs
	if !errs.OK() {
		return false
	}
	w.moveTo(step)
	return true
}

func (w *Wizard) moveTo(step Step) {
	w.current = step
	if step > w.furthest {
		w.furthest = step
	}
	w.errs = Errors{}
}

func (w *Wizard) validateCurrent() Errors {
	errs := Validate(w.current, &w.answers, w.now())
	if w.current == StepServices && w.catStatus != CatalogueReady {
		errs[FieldCatalogue] = w.catalogueMessage()
	}
	return errs
}

// Blur re-evaluates one field of the current step after the user leaves it.
func (w *Wizard) Blur(field string) {
	msg := ValidateField(w.current, field, &w.answers, w.now())
	if msg == "" {
		delete(w.errs, field)
		return
	}
	w.errs[field] = msg
}

// revalidateShown clears errors that the latest edit has fixed. Fields that
// were not reporting errors are not newly flagged.
func (w *Wizard) revalidateShown() {
	if len(w.errs) == 0 {
		return
	}
	fresh := w.validateCurrent()
	for f := range w.errs {
		if msg, ok := fresh[f]; ok {
			w.errs[f] = msg
		} else {
			delete(w.errs, f)
		}
	}
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetField updates a string field and reports whether the name is known.
func (w *Wizard) SetField(field, value string) bool {
	if !w.answers.Set(field, value) {
		return false
	}
	w.revalidateShown()
	return true
}

// SetAgreed sets the agreement flag.
func (w *Wizard) SetAgreed(v bool) {
	w.answers.Agreed = v
	w.revalidateShown()
}

// Update applies fn to the answers.
func (w *Wizard) Update(fn func(a *Answers)) {
	fn(&w.answers)
	w.revalidateShown()
}

// ToggleCategory toggles a category selection.
func (w *Wizard) ToggleCategory(c catalogue.Category) {
	w.answers.Selection = w.answers.Selection.ToggleCategory(c)
	w.revalidateShown()
}

// ToggleService toggles a service selection.
func (w *Wizard) ToggleService(svc catalogue.Service) {
	w.answers.Selection = w.answers.Selection.ToggleService(svc)
	w.revalidateShown()
}

// ToggleFeature toggles a feature of a selected service.
func (w *Wizard) ToggleFeature(serviceID string, f catalogue.Feature) {
	w.answers.Selection = w.answers.Selection.ToggleFeature(serviceID, f)
	w.revalidateShown()
}

// ---------------------------------------------------------------------------
// Catalogue
// ---------------------------------------------------------------------------

// SetCatalogue records a successfully fetched catalogue.
func (w *Wizard) SetCatalogue(cat catalogue.Catalogue) {
	w.catalogue = cat
	w.catStatus = CatalogueReady
	w.catErr = nil
	delete(w.errs, FieldCatalogue)
}

// CatalogueFailed records a failed fetch.
func (w *Wizard) CatalogueFailed(err error) {
	w.catStatus = CatalogueFailed
	w.catErr = err
}

// CatalogueRetry marks the catalogue as loading again before a refetch.
func (w *Wizard) CatalogueRetry() {
	w.catStatus = CatalogueLoading
	w.catErr = nil
}

// Catalogue returns the loaded catalogue, or nil.
func (w *Wizard) Catalogue() catalogue.Catalogue { return w.catalogue }

// CatalogueStatus returns the fetch state.
func (w *Wizard) CatalogueStatus() CatalogueStatus { return w.catStatus }

// CatalogueErr returns the last fetch error.
func (w *Wizard) CatalogueErr() error { return w.catErr }

func (w *Wizard) catalogueMessage() string {
	if w.catStatus == CatalogueFailed {
		return "The service catalogue could not be loaded. Reload to try again."
	}
	return "The service catalogue is still loading."
}

// ---------------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------------

// BeginSubmit checks every step again and marks a submission in flight. When
// an earlier step no longer validates the wizard moves back to it.
// It returns a snapshot of the answers to send.
func (w *Wizard) BeginSubmit() (Answers, error) {
	switch w.submitState {
	case SubmitInFlight:
		return Answers{}, ErrSubmitInFlight
	case SubmitDone:
		return Answers{}, ErrAlreadySubmitted
	}

	// Earlier answers may have been changed after leaving their step.
	for _, step := range Steps() {
		errs := Validate(step, &w.answers, w.now())
		if errs.OK() {
			continue
		}
		if step != w.current {
			w.moveTo(step)
		}
		w.errs = errs
		return Answers{}, &ValidationFailure{Step: step, Errors: errs}
	}

	w.submitState = SubmitInFlight
	w.submitErrMsg = ""
	return w.answers.Clone(), nil
}

// FinishSubmit records the outcome of the request started by BeginSubmit.
// Answers are kept on failure so the user can retry.
func (w *Wizard) FinishSubmit(err error) {
	if err == nil {
		w.submitState = SubmitDone
		w.submitErrMsg = ""
		return
	}
	w.submitState = SubmitFailed
	msg := ""
	if w.message != nil {
		msg = w.message(err)
	}
	if msg == "" {
		msg = FallbackSubmitMessage
	}
	w.submitErrMsg = msg
}

// Submit runs BeginSubmit, the request and FinishSubmit in one call.
func (w *Wizard) Submit(ctx context.Context, s Submitter) error {
	snapshot, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	err = s.Submit(ctx, snapshot)
	w.FinishSubmit(err)
	return err
}

// SubmitState returns the submission state.
func (w *Wizard) SubmitState() SubmitState { return w.submitState }

// SubmitError returns the user-facing message of the last failed submission.
func (w *Wizard) SubmitError() string { return w.submitErrMsg }

// Submitted reports whether the project was accepted.
func (w *Wizard) Submitted() bool { return w.submitState == SubmitDone }
