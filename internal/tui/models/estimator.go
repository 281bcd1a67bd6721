package models

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/quote"
	"github.com/Dallionking/project-estimator/internal/tui/components"
	"github.com/Dallionking/project-estimator/internal/tui/styles"
)

// ---------------------------------------------------------------------------
// Form fields
// ---------------------------------------------------------------------------

type fieldSpec struct {
	label       string
	placeholder string
	required    bool
}

var fieldSpecs = map[string]fieldSpec{
	quote.FieldClientName:         {"Client name", "Acme Corp", true},
	quote.FieldContactName:        {"Primary contact", "Jane Doe", true},
	quote.FieldEmail:              {"Email", "jane@example.com", true},
	quote.FieldContactNumber:      {"Contact number", "+1 555 123 4567", true},
	quote.FieldCompanyName:        {"Company", "", false},
	quote.FieldIndustry:           {"Industry", "Retail, healthcare, education...", false},
	quote.FieldProjectName:        {"Project name", "", true},
	quote.FieldProjectDescription: {"Description", "What should we build?", true},
	quote.FieldObjectives:         {"Objectives", "", false},
	quote.FieldTargetAudience:     {"Target audience", "", false},
	quote.FieldBudget:             {"Budget", "5000", false},
	quote.FieldStartDate:          {"Start date", quote.DateLayout, false},
	quote.FieldEndDate:            {"End date", quote.DateLayout, false},
	quote.FieldMilestones:         {"Milestones", "", false},
	quote.FieldBackground:         {"Background", "", false},
	quote.FieldStakeholders:       {"Stakeholders", "", false},
	quote.FieldGoals:              {"Goals", "", false},
	quote.FieldConstraints:        {"Constraints", "", false},
	quote.FieldExpansionPlans:     {"Expansion plans", "", false},
	quote.FieldSignature:          {"Signature", "Type your full name", true},
}

// formField binds a text input to one answer field.
type formField struct {
	name  string
	spec  fieldSpec
	input textinput.Model
}

func newFormField(name string) formField {
	spec := fieldSpecs[name]
	ti := textinput.New()
	ti.Placeholder = spec.placeholder
	ti.CharLimit = 500
	ti.Width = 56
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	return formField{name: name, spec: spec, input: ti}
}

// textFieldsOf returns the text-input fields of a step. The Review step's
// agreement flag is a checkbox and is handled separately.
func textFieldsOf(step quote.Step) []string {
	var out []string
	for _, f := range step.Fields() {
		if _, ok := fieldSpecs[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// featureRow is one line of the Features checklist.
type featureRow struct {
	service catalogue.Service
	group   string
	feature catalogue.Feature
}

// ---------------------------------------------------------------------------
// Tea messages
// ---------------------------------------------------------------------------

type catalogueLoadedMsg struct {
	cat catalogue.Catalogue
	err error
}

type submitDoneMsg struct{ err error }

// ---------------------------------------------------------------------------
// EstimatorModel
// ---------------------------------------------------------------------------

// EstimatorDeps are the collaborators of the estimator wizard.
type EstimatorDeps struct {
	Catalogue catalogue.Provider
	Submitter quote.Submitter
	Message   quote.MessageFunc
	Timeout   time.Duration
	Now       func() time.Time
	Log       zerolog.Logger
}

// EstimatorModel implements tea.Model for `estimator estimate`. It walks the
// user through six steps:
//
//	1. Client    -- contact details
//	2. Project   -- scope, budget and dates
//	3. Category  -- service categories (multi-select)
//	4. Services  -- services in the chosen categories, from the catalogue
//	5. Features  -- priced features of the chosen services
//	6. Review    -- brief, signature, agreement and submit
//
// All answers live in the quote.Wizard; the model only holds view state.
type EstimatorModel struct {
	wizard    *quote.Wizard
	provider  catalogue.Provider
	submitter quote.Submitter
	timeout   time.Duration
	log       zerolog.Logger

	forms  map[quote.Step][]formField
	focus  int // focused field; on Review, len(fields) is the agreement box
	cursor int // checklist row

	spin spinner.Model

	confirm     components.ConfirmDialog
	confirmQuit bool
	aborted     bool

	brief       string
	briefScroll int

	width  int
	height int
}

// NewEstimatorModel creates the wizard model. The catalogue fetch starts with
// Init.
func NewEstimatorModel(d EstimatorDeps) EstimatorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	opts := []quote.Option{quote.WithMessageFunc(d.Message)}
	if d.Now != nil {
		opts = append(opts, quote.WithClock(d.Now))
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	forms := make(map[quote.Step][]formField)
	for _, step := range []quote.Step{quote.StepClientInfo, quote.StepProjectDetails, quote.StepReview} {
		for _, name := range textFieldsOf(step) {
			forms[step] = append(forms[step], newFormField(name))
		}
	}

	m := EstimatorModel{
		wizard:    quote.New(opts...),
		provider:  d.Catalogue,
		submitter: d.Submitter,
		timeout:   timeout,
		log:       d.Log,
		forms:     forms,
		spin:      s,
		width:     100,
		height:    40,
	}
	m.enterStep()
	return m
}

// Wizard exposes the underlying controller.
func (m EstimatorModel) Wizard() *quote.Wizard { return m.wizard }

// Aborted reports whether the user quit before submitting.
func (m EstimatorModel) Aborted() bool { return m.aborted }

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init starts the catalogue fetch.
func (m EstimatorModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCatalogue(), m.spin.Tick, textinput.Blink)
}

// Update processes messages and key events.
func (m EstimatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width < 60 {
			m.width = 60
		}
		m.height = msg.Height
		if m.wizard.Current() == quote.StepReview {
			m.renderBrief()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case catalogueLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("catalogue fetch failed")
			m.wizard.CatalogueFailed(msg.err)
			return m, nil
		}
		m.log.Info().Int("services", len(msg.cat)).Msg("catalogue loaded")
		m.wizard.SetCatalogue(msg.cat)
		return m, nil

	case submitDoneMsg:
		m.wizard.FinishSubmit(msg.err)
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("submission failed")
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// View renders the current step.
func (m EstimatorModel) View() string {
	if m.wizard.Submitted() {
		return m.viewSubmitted()
	}

	contentWidth := clampWidth(m.width-4, 96)
	step := m.wizard.Current()

	var sections []string

	progress := components.ProgressStep{
		Steps:    quote.StepLabels(),
		Current:  int(step),
		Furthest: int(m.wizard.Furthest()),
		Width:    contentWidth,
	}
	sections = append(sections, "")
	sections = append(sections, "  "+progress.Render())
	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(contentWidth))
	sections = append(sections, "")

	heading := fmt.Sprintf("Step %d of %d: %s", int(step)+1, len(quote.Steps()), step.Title())
	sections = append(sections, "  "+styles.Title.Render(heading), "")

	var body string
	switch step {
	case quote.StepClientInfo, quote.StepProjectDetails:
		body = m.viewForm(step)
	case quote.StepCategory:
		body = m.viewCategories()
	case quote.StepServices:
		body = m.viewServices()
	case quote.StepFeatures:
		body = m.viewFeatures()
	case quote.StepReview:
		body = m.viewReview()
	}

	panel := components.NewEstimatePanel(m.wizard.Answers(), 34).Render()
	if m.width >= 100 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(m.width-40).Render(body), panel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "  "+panel)
	}

	if m.confirmQuit {
		body = lipgloss.Place(m.width, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, m.confirm.View())
	}
	sections = append(sections, body)

	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(contentWidth))
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ---------------------------------------------------------------------------
// Async commands
// ---------------------------------------------------------------------------

func (m EstimatorModel) fetchCatalogue() tea.Cmd {
	provider, timeout := m.provider, m.timeout
	return func() tea.Msg {
		if provider == nil {
			return catalogueLoadedMsg{err: errors.New("no catalogue source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cat, err := provider.Fetch(ctx)
		return catalogueLoadedMsg{cat: cat, err: err}
	}
}

func (m EstimatorModel) submitCmd(a quote.Answers) tea.Cmd {
	submitter, timeout := m.submitter, m.timeout
	return func() tea.Msg {
		if submitter == nil {
			return submitDoneMsg{err: errors.New("no intake endpoint configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return submitDoneMsg{err: submitter.Submit(ctx, a)}
	}
}

func (m EstimatorModel) busy() bool {
	return m.wizard.CatalogueStatus() == quote.CatalogueLoading ||
		m.wizard.SubmitState() == quote.SubmitInFlight
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m EstimatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Quit confirmation takes priority.
	if m.confirmQuit {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		if !m.confirm.Done {
			return m, cmd
		}
		m.confirmQuit = false
		if m.confirm.Confirmed {
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.wizard.Submitted() {
		switch key {
		case "enter", "esc", "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if key == "ctrl+c" {
		m.confirm = components.NewConfirmDialog("Quit the estimator?", "Your answers will be discarded.")
		m.confirmQuit = true
		return m, nil
	}

	if step, ok := jumpTarget(key); ok {
		if m.wizard.SubmitState() == quote.SubmitInFlight {
			return m, nil
		}
		if m.wizard.JumpTo(step) {
			cmd := m.enterStep()
			return m, cmd
		}
		return m, nil
	}
	if strings.HasPrefix(key, "alt+") {
		return m, nil
	}

	switch m.wizard.Current() {
	case quote.StepClientInfo, quote.StepProjectDetails:
		return m.handleFormKey(msg)
	case quote.StepCategory:
		return m.handleCategoryKey(key)
	case quote.StepServices:
		return m.handleServicesKey(key)
	case quote.StepFeatures:
		return m.handleFeaturesKey(key)
	case quote.StepReview:
		return m.handleReviewKey(msg)
	}
	return m, nil
}

// jumpTarget maps alt+1..alt+6 to a step.
func jumpTarget(key string) (quote.Step, bool) {
	n, ok := strings.CutPrefix(key, "alt+")
	if !ok || len(n) != 1 || n[0] < '1' || n[0] > '9' {
		return 0, false
	}
	step := quote.Step(int(n[0]-'1')) + quote.FirstStep
	return step, step.Valid()
}

// Steps 1-2: text forms.
func (m EstimatorModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "enter":
		return m.advance()
	case "esc":
		return m.retreat()
	}
	return m.updateFocusedInput(msg)
}

// Step 3: categories.
func (m EstimatorModel) handleCategoryKey(key string) (tea.Model, tea.Cmd) {
	cats := catalogue.AllCategories()
	switch key {
	case "up", "k":
		m.cursor = moveCursor(m.cursor, -1, len(cats))
	case "down", "j":
		m.cursor = moveCursor(m.cursor, 1, len(cats))
	case " ", "x":
		if m.cursor < len(cats) {
			m.wizard.ToggleCategory(cats[m.cursor])
		}
	case "enter":
		return m.advance()
	case "esc":
		return m.retreat()
	}
	return m, nil
}

// Step 4: services.
func (m EstimatorModel) handleServicesKey(key string) (tea.Model, tea.Cmd) {
	rows := m.serviceRows()
	switch key {
	case "up", "k":
		m.cursor = moveCursor(m.cursor, -1, len(rows))
	case "down", "j":
		m.cursor = moveCursor(m.cursor, 1, len(rows))
	case " ", "x":
		if m.cursor < len(rows) {
			m.wizard.ToggleService(rows[m.cursor])
		}
	case "r":
		if m.wizard.CatalogueStatus() == quote.CatalogueFailed {
			m.wizard.CatalogueRetry()
			return m, tea.Batch(m.fetchCatalogue(), m.spin.Tick)
		}
	case "enter":
		return m.advance()
	case "esc":
		return m.retreat()
	}
	return m, nil
}

// Step 5: features.
func (m EstimatorModel) handleFeaturesKey(key string) (tea.Model, tea.Cmd) {
	rows := m.featureRows()
	switch key {
	case "up", "k":
		m.cursor = moveCursor(m.cursor, -1, len(rows))
	case "down", "j":
		m.cursor = moveCursor(m.cursor, 1, len(rows))
	case " ", "x":
		if m.cursor < len(rows) {
			r := rows[m.cursor]
			m.wizard.ToggleFeature(r.service.ID, r.feature)
		}
	case "enter":
		return m.advance()
	case "esc":
		return m.retreat()
	}
	return m, nil
}

// Step 6: review and submit.
func (m EstimatorModel) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wizard.SubmitState() == quote.SubmitInFlight {
		return m, nil
	}

	fields := m.forms[quote.StepReview]
	onAgree := m.focus == len(fields)

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "pgdown":
		m.briefScroll += 5
		return m, nil
	case "pgup":
		m.briefScroll = max(m.briefScroll-5, 0)
		return m, nil
	case "enter":
		return m.submit()
	case "esc":
		return m.retreat()
	case " ":
		if onAgree {
			m.wizard.SetAgreed(!m.wizard.Answers().Agreed)
			return m, nil
		}
	}
	if onAgree {
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

func (m EstimatorModel) advance() (tea.Model, tea.Cmd) {
	if m.wizard.Advance() {
		cmd := m.enterStep()
		return m, cmd
	}
	// Move focus to the first field reporting an error.
	for i, f := range m.forms[m.wizard.Current()] {
		if m.wizard.Error(f.name) != "" {
			return m.setFocus(i)
		}
	}
	return m, nil
}

func (m EstimatorModel) retreat() (tea.Model, tea.Cmd) {
	if m.wizard.Current() == quote.FirstStep {
		return m, nil
	}
	m.wizard.Retreat()
	cmd := m.enterStep()
	return m, cmd
}

// enterStep resets view state for the wizard's current step and loads the
// step's inputs from the answers.
func (m *EstimatorModel) enterStep() tea.Cmd {
	step := m.wizard.Current()
	m.cursor = 0
	m.focus = 0
	m.briefScroll = 0

	a := m.wizard.Answers()
	for s, fields := range m.forms {
		for i := range fields {
			fields[i].input.Blur()
			if s == step {
				fields[i].input.SetValue(a.Get(fields[i].name))
			}
		}
	}

	if step == quote.StepReview {
		m.renderBrief()
	}

	fields := m.forms[step]
	if len(fields) == 0 {
		return nil
	}
	return fields[0].input.Focus()
}

func (m EstimatorModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	step := m.wizard.Current()
	n := len(m.forms[step])
	if step == quote.StepReview {
		n++
	}
	if n == 0 {
		return m, nil
	}
	return m.setFocus(((m.focus+delta)%n + n) % n)
}

// setFocus moves focus to field i, validating the field being left.
func (m EstimatorModel) setFocus(i int) (tea.Model, tea.Cmd) {
	fields := m.forms[m.wizard.Current()]
	if m.focus < len(fields) {
		fields[m.focus].input.Blur()
		m.wizard.Blur(fields[m.focus].name)
	} else {
		m.wizard.Blur(quote.FieldAgreed)
	}

	m.focus = i
	if i < len(fields) {
		return m, fields[i].input.Focus()
	}
	return m, nil
}

func (m EstimatorModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := m.forms[m.wizard.Current()]
	if m.focus >= len(fields) {
		return m, nil
	}
	f := &fields[m.focus]
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != m.wizard.Answers().Get(f.name) {
		m.wizard.SetField(f.name, f.input.Value())
	}
	return m, cmd
}

func (m EstimatorModel) submit() (tea.Model, tea.Cmd) {
	snapshot, err := m.wizard.BeginSubmit()
	if err != nil {
		var vf *quote.ValidationFailure
		if !errors.As(err, &vf) {
			return m, nil
		}
		if vf.Step != quote.StepReview {
			cmd := m.enterStep()
			return m, cmd
		}
		if vf.Errors[quote.FieldSignature] != "" {
			return m.setFocus(0)
		}
		return m, nil
	}
	m.log.Info().
		Str("project", snapshot.ProjectName).
		Str("total", quote.Total(snapshot.Selection).String()).
		Msg("submitting project")
	return m, tea.Batch(m.submitCmd(snapshot), m.spin.Tick)
}

// ---------------------------------------------------------------------------
// Checklist rows
// ---------------------------------------------------------------------------

func (m EstimatorModel) serviceRows() []catalogue.Service {
	if m.wizard.CatalogueStatus() != quote.CatalogueReady {
		return nil
	}
	rows := m.wizard.Catalogue().InCategories(m.wizard.Answers().Selection.CategorySet())
	rank := make(map[catalogue.Category]int)
	for i, c := range catalogue.AllCategories() {
		rank[c] = i
	}
	sort.SliceStable(rows, func(i, j int) bool { return rank[rows[i].Category] < rank[rows[j].Category] })
	return rows
}

func (m EstimatorModel) featureRows() []featureRow {
	var rows []featureRow
	for _, svc := range m.wizard.Answers().Selection.Services() {
		for _, fc := range svc.FeatureCategories {
			for _, f := range fc.Features {
				rows = append(rows, featureRow{service: svc, group: fc.Name, feature: f})
			}
		}
	}
	return rows
}

func moveCursor(cur, delta, n int) int {
	if n == 0 {
		return 0
	}
	cur += delta
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// ---------------------------------------------------------------------------
// View renderers
// ---------------------------------------------------------------------------

func (m EstimatorModel) viewForm(step quote.Step) string {
	var b strings.Builder

	fields := m.forms[step]
	perPage := max((m.height-16)/4, 3)
	start, end := window(m.focus, len(fields), perPage)

	if start > 0 {
		b.WriteString("  " + styles.Dim(fmt.Sprintf("↑ %d more", start)) + "\n\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.viewField(fields[i], i == m.focus))
	}
	if end < len(fields) {
		b.WriteString("  " + styles.Dim(fmt.Sprintf("↓ %d more", len(fields)-end)) + "\n")
	}
	return b.String()
}

func (m EstimatorModel) viewField(f formField, focused bool) string {
	var b strings.Builder
	labelColor := styles.TextSecondary
	if focused {
		labelColor = styles.AccentPrimary
	}
	label := f.spec.label
	if f.spec.required {
		label += " *"
	}
	b.WriteString("  " + lipgloss.NewStyle().Foreground(labelColor).Bold(true).Render(label) + "\n")
	b.WriteString("  " + f.input.View() + "\n")
	if msg := m.wizard.Error(f.name); msg != "" {
		b.WriteString(components.FieldError{Message: msg, Indent: 2}.Render() + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m EstimatorModel) viewCategories() string {
	var b strings.Builder
	b.WriteString("  " + styles.Dim("Use space to toggle, enter to continue") + "\n\n")

	sel := m.wizard.Answers().Selection
	for i, c := range catalogue.AllCategories() {
		b.WriteString(m.checklistLine(i, sel.HasCategory(c), c.Label(), ""))
		b.WriteString("        " + styles.Dim(c.Description()) + "\n")
	}
	b.WriteString(m.stepError(quote.FieldCategories))
	return b.String()
}

func (m EstimatorModel) viewServices() string {
	var b strings.Builder

	switch m.wizard.CatalogueStatus() {
	case quote.CatalogueLoading:
		b.WriteString("  " + m.spin.View() + " Loading the service catalogue...\n")
		return b.String()
	case quote.CatalogueFailed:
		b.WriteString(components.FieldError{Message: "The service catalogue could not be loaded.", Indent: 2}.Render() + "\n")
		if err := m.wizard.CatalogueErr(); err != nil {
			b.WriteString("  " + styles.Dim(styles.TruncateWithEllipsis(err.Error(), 70)) + "\n")
		}
		b.WriteString("\n  Press " + styles.Cyan("r") + " to try again.\n")
		return b.String()
	}

	b.WriteString("  " + styles.Dim("Use space to toggle, enter to continue") + "\n\n")

	rows := m.serviceRows()
	if len(rows) == 0 {
		b.WriteString("  " + styles.Dim("No services are offered in the selected categories.") + "\n")
	}

	sel := m.wizard.Answers().Selection
	var group catalogue.Category
	for i, svc := range rows {
		if svc.Category != group {
			group = svc.Category
			b.WriteString("  " + lipgloss.NewStyle().Foreground(styles.AccentSecondary).Bold(true).Render(group.Label()) + "\n")
		}
		b.WriteString(m.checklistLine(i, sel.HasService(svc.ID), svc.Name, fmt.Sprintf("%d features", svc.FeatureCount())))
		if svc.Description != "" {
			b.WriteString("        " + styles.Dim(styles.TruncateWithEllipsis(svc.Description, 70)) + "\n")
		}
	}
	b.WriteString(m.stepError(quote.FieldServices))
	b.WriteString(m.stepError(quote.FieldCatalogue))
	return b.String()
}

func (m EstimatorModel) viewFeatures() string {
	var b strings.Builder
	b.WriteString("  " + styles.Dim("Features are optional. Use space to toggle, enter to review.") + "\n\n")

	rows := m.featureRows()
	if len(rows) == 0 {
		b.WriteString("  " + styles.Dim("The selected services have no optional features.") + "\n")
		return b.String()
	}

	perPage := max(m.height-18, 5)
	start, end := window(m.cursor, len(rows), perPage)

	sel := m.wizard.Answers().Selection
	lastService, lastGroup := "", ""
	if start > 0 {
		lastService, lastGroup = rows[start-1].service.ID, rows[start-1].group
	}
	for i := start; i < end; i++ {
		r := rows[i]
		if r.service.ID != lastService {
			lastService, lastGroup = r.service.ID, ""
			b.WriteString("  " + styles.Title.Render(r.service.Name) + "\n")
		}
		if r.group != lastGroup {
			lastGroup = r.group
			b.WriteString("    " + lipgloss.NewStyle().Foreground(styles.AccentSecondary).Render(r.group) + "\n")
		}
		b.WriteString(m.checklistLine(i, sel.HasFeature(r.service.ID, r.feature.ID), r.feature.Name,
			quote.FormatMoney(r.feature.Price)))
	}
	if end < len(rows) {
		b.WriteString("  " + styles.Dim(fmt.Sprintf("↓ %d more", len(rows)-end)) + "\n")
	}
	return b.String()
}

func (m EstimatorModel) viewReview() string {
	var b strings.Builder

	fields := m.forms[quote.StepReview]
	for i, f := range fields {
		b.WriteString(m.viewField(f, i == m.focus))
	}

	agreeFocused := m.focus == len(fields)
	agreeLabel := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	if agreeFocused {
		agreeLabel = agreeLabel.Foreground(styles.AccentPrimary).Bold(true)
	}
	b.WriteString("  " + styles.Cursor(agreeFocused) + styles.Checkbox(m.wizard.Answers().Agreed) + " " +
		agreeLabel.Render("I agree to the terms and conditions") + "\n")
	if msg := m.wizard.Error(quote.FieldAgreed); msg != "" {
		b.WriteString(components.FieldError{Message: msg, Indent: 2}.Render() + "\n")
	}
	b.WriteString("\n")

	switch m.wizard.SubmitState() {
	case quote.SubmitInFlight:
		b.WriteString("  " + m.spin.View() + " Submitting your project...\n\n")
	case quote.SubmitFailed:
		b.WriteString(components.FieldError{Message: m.wizard.SubmitError(), Indent: 2}.Render() + "\n")
		b.WriteString("  " + styles.Dim("Your answers are kept. Press enter to try again.") + "\n\n")
	default:
		b.WriteString("  " + styles.Dim("Press enter to submit") + "\n\n")
	}

	lines := strings.Split(m.brief, "\n")
	room := max(m.height-26, 6)
	scroll := min(m.briefScroll, max(len(lines)-room, 0))
	b.WriteString(truncateToHeight(strings.Join(lines[scroll:], "\n"), room))
	b.WriteString("\n")
	return b.String()
}

func (m EstimatorModel) viewSubmitted() string {
	var b strings.Builder
	a := m.wizard.Answers()

	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render("Project submitted!") + "\n\n")

	panelStyle := lipgloss.NewStyle().
		Background(styles.BgPanel).
		Border(styles.RoundedBorder).
		BorderForeground(styles.AccentPrimary).
		Padding(1).
		Width(clampWidth(m.width-6, 60))

	var summary strings.Builder
	summary.WriteString(styles.Label.Render("PROJECT ") + "  " + styles.Value.Render(a.ProjectName) + "\n")
	summary.WriteString(styles.Label.Render("CLIENT  ") + "  " + styles.Value.Render(a.ClientName) + "\n")
	summary.WriteString(styles.Label.Render("SERVICES") + "  " + styles.Value.Render(fmt.Sprintf("%d", a.Selection.ServiceCount())) + "\n")
	summary.WriteString(styles.Label.Render("FEATURES") + "  " + styles.Value.Render(fmt.Sprintf("%d", a.Selection.FeatureCount())) + "\n")
	summary.WriteString(styles.Label.Render("ESTIMATE") + "  " + styles.MoneyText.Render(quote.FormatMoney(m.wizard.Total())))

	b.WriteString("  " + panelStyle.Render(summary.String()) + "\n\n")
	b.WriteString("  We will be in touch at " + styles.Cyan(a.Email) + ".\n\n")
	b.WriteString("  Press Enter to exit.\n")
	return b.String()
}

func (m EstimatorModel) checklistLine(i int, checked bool, label, note string) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	if i == m.cursor {
		labelStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	}
	line := "  " + styles.Cursor(i == m.cursor) + styles.Checkbox(checked) + " " + labelStyle.Render(label)
	if note != "" {
		line += "  " + styles.Gold(note)
	}
	return line + "\n"
}

func (m EstimatorModel) stepError(field string) string {
	msg := m.wizard.Error(field)
	if msg == "" {
		return ""
	}
	return "\n" + components.FieldError{Message: msg, Indent: 2}.Render() + "\n"
}

func (m *EstimatorModel) renderBrief() {
	m.brief = components.RenderMarkdown(quote.Brief(m.wizard.Answers()), clampWidth(m.width-44, 80))
}

// ---------------------------------------------------------------------------
// Footer
// ---------------------------------------------------------------------------

func (m EstimatorModel) renderFooter() string {
	if m.confirmQuit {
		return components.Footer{
			Hints: []components.KeyHint{{Key: "y", Desc: "quit"}, {Key: "n", Desc: "stay"}},
			Width: m.width,
		}.Render()
	}

	var f components.Footer
	switch m.wizard.Current() {
	case quote.StepClientInfo, quote.StepProjectDetails:
		f = components.FormFooter(m.width)
	case quote.StepServices:
		f = components.ChecklistFooter(m.width)
		if m.wizard.CatalogueStatus() == quote.CatalogueFailed {
			f.Hints = append([]components.KeyHint{{Key: "r", Desc: "retry"}}, f.Hints...)
		}
	case quote.StepReview:
		f = components.Footer{
			Hints: []components.KeyHint{
				{Key: "tab", Desc: "next field"},
				{Key: "space", Desc: "agree"},
				{Key: "pgup/pgdn", Desc: "scroll"},
				{Key: "enter", Desc: "submit"},
				{Key: "esc", Desc: "back"},
			},
			Width: m.width,
		}
	default:
		f = components.ChecklistFooter(m.width)
	}
	f.Hints = append(f.Hints, components.KeyHint{Key: "ctrl+c", Desc: "quit"})
	return f.Render()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// window returns the [start, end) slice of n rows of which at most size are
// shown, keeping focus visible.
func window(focus, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := focus - size/2
	if start < 0 {
		start = 0
	}
	if start > n-size {
		start = n - size
	}
	return start, start + size
}

func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n")
}

func clampWidth(val, max int) int {
	if val > max {
		return max
	}
	if val < 10 {
		return 10
	}
	return val
}
