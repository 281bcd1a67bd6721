package models

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/quote"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func price(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func testCatalogue() catalogue.Catalogue {
	return catalogue.Catalogue{
		"web-app": {
			ID:       "web-app",
			Name:     "Web Application",
			Category: catalogue.CategoryDevelopment,
			FeatureCategories: []catalogue.FeatureCategory{
				{ID: "core", Name: "Core", Features: []catalogue.Feature{
					{ID: "auth", Name: "Authentication", Price: price(500)},
					{ID: "payments", Name: "Payments", Price: price(1200)},
				}},
				{ID: "extras", Name: "Extras", Features: []catalogue.Feature{
					{ID: "i18n", Name: "Localisation", Price: price(300)},
				}},
			},
		},
		"cloud": {
			ID:       "cloud",
			Name:     "Cloud Setup",
			Category: catalogue.CategoryInfrastructure,
		},
	}
}

type fakeSubmitter struct {
	calls []quote.Answers
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, a quote.Answers) error {
	f.calls = append(f.calls, a)
	return f.err
}

func newModel(sub quote.Submitter) EstimatorModel {
	return NewEstimatorModel(EstimatorDeps{
		Catalogue: catalogue.Static(testCatalogue()),
		Submitter: sub,
		Message:   func(error) string { return "Failed to submit project details" },
		Timeout:   time.Second,
		Now:       func() time.Time { return fixedNow },
		Log:       zerolog.Nop(),
	})
}

func send(m EstimatorModel, msgs ...tea.Msg) (EstimatorModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(EstimatorModel)
	}
	return m, cmd
}

func keys(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func alt(r rune) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true} }

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	space    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// runCmd executes cmd and any batch it expands to, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

func findSubmitDone(t *testing.T, cmd tea.Cmd) submitDoneMsg {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if done, ok := msg.(submitDoneMsg); ok {
			return done
		}
	}
	t.Fatal("command did not produce a submission result")
	return submitDoneMsg{}
}

func fillClient(a *quote.Answers) {
	a.ClientName = "Acme"
	a.ContactName = "Jane Doe"
	a.Email = "jane@acme.test"
	a.ContactNumber = "+1 555 123 4567"
}

func fillProject(a *quote.Answers) {
	a.ProjectName = "Storefront"
	a.ProjectDescription = "A new online store"
	a.Budget = "1500"
}

// atCategory returns a model with a loaded catalogue on the Category step.
func atCategory(t *testing.T, sub quote.Submitter) EstimatorModel {
	t.Helper()
	m, _ := send(newModel(sub), catalogueLoadedMsg{cat: testCatalogue()})
	m.Wizard().Update(fillClient)
	m, _ = send(m, enter)
	m.Wizard().Update(fillProject)
	m, _ = send(m, enter)
	require.Equal(t, quote.StepCategory, m.Wizard().Current())
	return m
}

func TestEstimator_TypingUpdatesAnswers(t *testing.T) {
	m, _ := send(newModel(nil), keys("Acme"), tab, keys("Jane Doe"), tab, keys("jane@acme.test"))

	a := m.Wizard().Answers()
	require.Equal(t, "Acme", a.ClientName)
	require.Equal(t, "Jane Doe", a.ContactName)
	require.Equal(t, "jane@acme.test", a.Email)
	require.Equal(t, 2, m.focus)

	m, _ = send(m, shiftTab)
	require.Equal(t, 1, m.focus)
	m, _ = send(m, shiftTab, shiftTab)
	require.Equal(t, len(m.forms[quote.StepClientInfo])-1, m.focus, "focus wraps")
}

func TestEstimator_BlurValidatesField(t *testing.T) {
	m, _ := send(newModel(nil), tab, tab, keys("nope"), tab)

	require.Equal(t, "Please enter a valid email address", m.Wizard().Error(quote.FieldEmail))
	require.Equal(t, "Client name is required", m.Wizard().Error(quote.FieldClientName))
	require.Empty(t, m.Wizard().Error(quote.FieldContactNumber), "fields never left are not checked")

	// Fixing the value clears the shown error without leaving the field.
	m, _ = send(m, shiftTab, keys("@acme.test"))
	require.Empty(t, m.Wizard().Error(quote.FieldEmail))
}

func TestEstimator_EnterBlockedByValidation(t *testing.T) {
	m, _ := send(newModel(nil), keys("Acme"), enter)

	require.Equal(t, quote.StepClientInfo, m.Wizard().Current())
	require.Equal(t, "Primary contact name is required", m.Wizard().Error(quote.FieldContactName))
	require.Equal(t, 1, m.focus, "focus moves to the first failing field")
	require.Contains(t, m.View(), "Primary contact name is required")

	m, _ = send(m, keys("Jane Doe"), tab, keys("jane@acme.test"), tab, keys("+1 555 123 4567"), enter)
	require.Equal(t, quote.StepProjectDetails, m.Wizard().Current())
	require.Empty(t, m.Wizard().Errors())
	require.Equal(t, 0, m.focus)
}

func TestEstimator_ServicesNeedCatalogue(t *testing.T) {
	m, _ := send(newModel(nil))
	m.Wizard().Update(fillClient)
	m, _ = send(m, enter)
	m.Wizard().Update(fillProject)
	m, _ = send(m, enter, space, enter)
	require.Equal(t, quote.StepServices, m.Wizard().Current())
	require.Contains(t, m.View(), "Loading the service catalogue")

	m, _ = send(m, enter)
	require.Equal(t, quote.StepServices, m.Wizard().Current())
	require.NotEmpty(t, m.Wizard().Error(quote.FieldCatalogue))

	m, _ = send(m, catalogueLoadedMsg{err: errors.New("connection refused")})
	require.Equal(t, quote.CatalogueFailed, m.Wizard().CatalogueStatus())
	require.Contains(t, m.View(), "could not be loaded")

	m, cmd := send(m, keys("r"))
	require.Equal(t, quote.CatalogueLoading, m.Wizard().CatalogueStatus())
	require.NotNil(t, cmd)

	var loaded bool
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(catalogueLoadedMsg); ok {
			m, _ = send(m, msg)
			loaded = true
		}
	}
	require.True(t, loaded)
	require.Equal(t, quote.CatalogueReady, m.Wizard().CatalogueStatus())

	m, _ = send(m, space, enter)
	require.Equal(t, quote.StepFeatures, m.Wizard().Current())
}

func TestEstimator_FetchCatalogueCommand(t *testing.T) {
	msg := newModel(nil).fetchCatalogue()()
	loaded, ok := msg.(catalogueLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	require.Len(t, loaded.cat, 2)

	m := NewEstimatorModel(EstimatorDeps{Log: zerolog.Nop()})
	loaded = m.fetchCatalogue()().(catalogueLoadedMsg)
	require.Error(t, loaded.err)
}

func TestEstimator_FullFlowAndSubmit(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("boom")}
	m := atCategory(t, sub)

	// Category: development is the first row.
	m, _ = send(m, space, enter)
	require.Equal(t, quote.StepServices, m.Wizard().Current())

	// Services: only web-app is offered for development.
	require.Len(t, m.serviceRows(), 1)
	m, _ = send(m, space, enter)
	require.Equal(t, quote.StepFeatures, m.Wizard().Current())

	// Features: auth then payments.
	m, _ = send(m, space, down, space)
	require.Equal(t, "1700", m.Wizard().Total().String())
	m, _ = send(m, space)
	require.Equal(t, "500", m.Wizard().Total().String(), "toggling twice removes the feature")
	m, _ = send(m, space, enter)
	require.Equal(t, quote.StepReview, m.Wizard().Current())
	require.NotEmpty(t, m.brief)

	// Submit without signature or agreement.
	m, _ = send(m, enter)
	require.Equal(t, quote.StepReview, m.Wizard().Current())
	require.Equal(t, "Signature is required", m.Wizard().Error(quote.FieldSignature))
	require.NotEmpty(t, m.Wizard().Error(quote.FieldAgreed))
	require.Empty(t, sub.calls)

	m, _ = send(m, keys("Jane Doe"), tab, space)
	require.True(t, m.Wizard().Answers().Agreed)

	m, cmd := send(m, enter)
	require.Equal(t, quote.SubmitInFlight, m.Wizard().SubmitState())
	require.Contains(t, m.View(), "Submitting your project")

	// A second enter while in flight does nothing.
	_, again := send(m, enter)
	require.Nil(t, again)

	m, _ = send(m, findSubmitDone(t, cmd))
	require.Len(t, sub.calls, 1)
	require.Equal(t, quote.SubmitFailed, m.Wizard().SubmitState())
	require.Equal(t, "Failed to submit project details", m.Wizard().SubmitError())
	require.Equal(t, "Acme", m.Wizard().Answers().ClientName, "answers survive a failed submission")
	require.Equal(t, 2, m.Wizard().Answers().Selection.FeatureCount())

	sub.err = nil
	m, cmd = send(m, enter)
	m, _ = send(m, findSubmitDone(t, cmd))
	require.True(t, m.Wizard().Submitted())
	require.Len(t, sub.calls, 2)
	require.Equal(t, "1700", quote.Total(sub.calls[1].Selection).String())
	require.Equal(t, "Jane Doe", sub.calls[1].Signature)
	require.Contains(t, m.View(), "Project submitted!")

	_, cmd = send(m, enter)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEstimator_JumpAndRetreat(t *testing.T) {
	m := atCategory(t, nil)

	m, _ = send(m, alt('1'))
	require.Equal(t, quote.StepClientInfo, m.Wizard().Current())
	require.Equal(t, "Acme", m.forms[quote.StepClientInfo][0].input.Value(), "inputs reload from answers")

	m, _ = send(m, alt('3'))
	require.Equal(t, quote.StepCategory, m.Wizard().Current(), "forward jump when the current step is valid")

	m, _ = send(m, esc)
	require.Equal(t, quote.StepProjectDetails, m.Wizard().Current())

	m, _ = send(m, alt('9'))
	require.Equal(t, quote.StepProjectDetails, m.Wizard().Current())
	require.Equal(t, "Storefront", m.Wizard().Answers().ProjectName, "unbound alt keys are not typed")

	m.Wizard().SetField(quote.FieldProjectName, "")
	m, _ = send(m, alt('6'))
	require.Equal(t, quote.StepProjectDetails, m.Wizard().Current())
	require.Equal(t, "Project name is required", m.Wizard().Error(quote.FieldProjectName))

	m, _ = send(m, esc, esc)
	require.Equal(t, quote.StepClientInfo, m.Wizard().Current(), "esc on the first step stays put")
}

func TestEstimator_JumpCannotSkipAhead(t *testing.T) {
	m := atCategory(t, nil)
	m, _ = send(m, space)
	require.True(t, m.Wizard().Answers().Selection.HasCategory(catalogue.AllCategories()[0]))

	m, _ = send(m, alt('6'))
	require.Equal(t, quote.StepCategory, m.Wizard().Current(), "review was never reached")

	m, _ = send(m, alt('4'))
	require.Equal(t, quote.StepServices, m.Wizard().Current(), "the next step is reachable")
}

func TestEstimator_SubmitReturnsToEditedStep(t *testing.T) {
	sub := &fakeSubmitter{}
	m := atCategory(t, sub)
	m, _ = send(m, space, enter, space, enter, enter)
	require.Equal(t, quote.StepReview, m.Wizard().Current())
	m, _ = send(m, keys("Jane Doe"), tab, space)

	// Drop the only service and come back to Review through Category.
	m, _ = send(m, alt('4'), space, esc)
	require.Equal(t, quote.StepCategory, m.Wizard().Current())
	m, _ = send(m, alt('6'))
	require.Equal(t, quote.StepReview, m.Wizard().Current())

	m, cmd := send(m, enter)
	require.Equal(t, quote.StepServices, m.Wizard().Current())
	require.NotEmpty(t, m.Wizard().Error(quote.FieldServices))
	require.Equal(t, quote.SubmitIdle, m.Wizard().SubmitState())
	require.Nil(t, cmd, "no request is started")
	require.Empty(t, sub.calls)
}

func TestEstimator_QuitConfirmation(t *testing.T) {
	m, _ := send(newModel(nil), keys("Acme"), ctrlC)
	require.True(t, m.confirmQuit)
	require.Contains(t, m.View(), "Quit the estimator?")

	m, cmd := send(m, keys("n"))
	require.False(t, m.confirmQuit)
	require.False(t, m.Aborted())
	require.Nil(t, cmd)
	require.Equal(t, "Acme", m.Wizard().Answers().ClientName)

	m, _ = send(m, ctrlC)
	m, cmd = send(m, keys("y"))
	require.True(t, m.Aborted())
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEstimator_WindowSize(t *testing.T) {
	m, _ := send(newModel(nil), tea.WindowSizeMsg{Width: 40, Height: 20})
	require.Equal(t, 60, m.width)
	require.Equal(t, 20, m.height)
	require.NotEmpty(t, m.View())
}

func TestJumpTarget(t *testing.T) {
	tests := []struct {
		key  string
		want quote.Step
		ok   bool
	}{
		{"alt+1", quote.StepClientInfo, true},
		{"alt+4", quote.StepServices, true},
		{"alt+6", quote.StepReview, true},
		{"alt+7", 0, false},
		{"alt+0", 0, false},
		{"1", 0, false},
		{"alt+a", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := jumpTarget(tt.key)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		focus, n, size int
		start, end     int
	}{
		{0, 3, 5, 0, 3},
		{0, 10, 4, 0, 4},
		{5, 10, 4, 3, 7},
		{9, 10, 4, 6, 10},
	}
	for _, tt := range tests {
		start, end := window(tt.focus, tt.n, tt.size)
		require.Equal(t, tt.start, start)
		require.Equal(t, tt.end, end)
	}
}
