// Package onboarding is the interactive terminal host for the brand setup
// wizard. It maps key presses onto wizard.Controller operations and renders
// the current step, its live errors and the overall progress.
package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
	"github.com/icyhq/icy/internal/tui/theme"
	"github.com/icyhq/icy/internal/wizard"
)

// Next is where the user wants to go after completing onboarding.
type Next int

const (
	NextNone Next = iota
	NextDiscovery
	NextDashboard
)

// Options configures a run.
type Options struct {
	// Initial resumes from saved values. May be nil.
	Initial *brand.Profile
	// Step is the step to resume at; 0 starts at the beginning.
	Step int
	// Key is the store key the profile will be saved under.
	Key string
	// Save persists the finalized profile. It runs once, after Submit.
	Save func(brand.Profile) error
}

// Result is what the host hands back to the CLI when the program exits.
type Result struct {
	Profile   brand.Profile
	Completed bool
	Cancelled bool
	Step      int
	Next      Next
	SaveErr   error
}

// savedMsg reports the outcome of Options.Save.
type savedMsg struct {
	err error
}

// Model is the BubbleTea model for onboarding.
type Model struct {
	ctrl *wizard.Controller
	opts Options

	inputs  map[wizard.Field]*textinput.Model
	desc    textarea.Model
	focus   int
	cursors map[wizard.Field]int
	touched map[wizard.Field]bool
	banner  string

	width  int
	height int

	cancelled bool
	completed bool
	saving    bool
	quitAfter bool // a quit was chosen while the save was still running
	saveErr   error
	profile   brand.Profile
	choice    int
	next      Next
}

// New creates the model. Submitting hands the profile to opts.Save.
func New(opts Options) *Model {
	m := &Model{
		opts:    opts,
		cursors: make(map[wizard.Field]int),
		touched: make(map[wizard.Field]bool),
		width:   100,
		height:  40,
	}

	var initial brand.Profile
	if opts.Initial != nil {
		initial = *opts.Initial
	}
	m.ctrl = wizard.Resume(initial, opts.Step, func(p brand.Profile) {
		m.profile = p
	})

	name := newTextInput(wizard.ProductName, m.ctrl.Text(wizard.ProductName))
	interests := newTextInput(wizard.TargetInterests, m.ctrl.Text(wizard.TargetInterests))
	m.inputs = map[wizard.Field]*textinput.Model{
		wizard.ProductName:     &name,
		wizard.TargetInterests: &interests,
	}
	m.desc = newDescriptionInput(m.ctrl.Text(wizard.ProductDescription))

	for _, f := range wizard.Fields {
		if f.Kind() != wizard.KindChoice {
			continue
		}
		if i := indexOf(f.Catalog(), m.ctrl.Text(f)); i >= 0 {
			m.cursors[f] = i
		}
	}
	if opts.Initial != nil {
		// Resumed values were entered before; show their problems right away.
		for _, f := range wizard.Fields {
			m.touched[f] = true
		}
	}
	return m
}

// Init focuses the first field.
func (m *Model) Init() tea.Cmd {
	return m.syncFocus()
}

// Controller exposes the underlying wizard state.
func (m *Model) Controller() *wizard.Controller {
	return m.ctrl
}

// Result returns the outcome of the run.
func (m *Model) Result() Result {
	r := Result{
		Completed: m.completed,
		Cancelled: m.cancelled,
		Step:      m.ctrl.Step(),
		Next:      m.next,
		SaveErr:   m.saveErr,
	}
	if m.completed {
		r.Profile = m.profile.Clone()
	} else {
		r.Profile = m.ctrl.Values()
	}
	return r
}

// Update handles messages for onboarding.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case savedMsg:
		m.saving = false
		m.saveErr = msg.err
		if msg.err != nil {
			logger.Error("onboarding: saving profile: %v", msg.err)
		}
		if m.quitAfter {
			return m, tea.Quit
		}
		return m, nil

	case descriptionEditedMsg:
		m.desc.SetValue(msg.content)
		m.setText(wizard.ProductDescription, msg.content)
		return m, nil

	case editorFailedMsg:
		m.banner = "Could not open $EDITOR: " + msg.err.Error()
		return m, nil

	case tea.KeyPressMsg:
		if m.completed {
			return m.updateComplete(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if m.completed {
		return m, nil
	}
	return m, m.forwardToInput(msg)
}

// handleKey processes navigation keys. handled is false for keys that
// belong to the focused text input.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	f := m.focused()

	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return tea.Quit, true
	case "esc":
		if m.ctrl.Step() == 1 {
			m.cancelled = true
			return tea.Quit, true
		}
		m.ctrl.GoPrevious()
		m.focus = 0
		m.banner = ""
		return m.syncFocus(), true
	case "tab":
		m.focus = (m.focus + 1) % len(m.stepFields())
		return m.syncFocus(), true
	case "shift+tab":
		n := len(m.stepFields())
		m.focus = (m.focus - 1 + n) % n
		return m.syncFocus(), true
	case "ctrl+n":
		return m.goNext(), true
	case "ctrl+s":
		return m.submit(), true
	case "ctrl+e":
		if f == wizard.ProductDescription {
			return openEditor(m.desc.Value()), true
		}
		return nil, true
	case "enter":
		return m.enter(), true
	}

	if f.Kind() == wizard.KindText {
		return nil, false
	}

	switch msg.String() {
	case "up", "k":
		m.moveCursor(f, -1)
	case "down", "j":
		m.moveCursor(f, 1)
	case "space", " ":
		m.pick(f)
	}
	return nil, true
}

// enter selects the highlighted option, then moves on: to the next field,
// or off the step when the last field is focused.
func (m *Model) enter() tea.Cmd {
	f := m.focused()
	if f.Kind() == wizard.KindChoice {
		m.pick(f)
	}
	m.touched[f] = true

	if m.focus < len(m.stepFields())-1 {
		m.focus++
		return m.syncFocus()
	}
	if m.ctrl.Step() == wizard.TotalSteps {
		return m.submit()
	}
	return m.goNext()
}

func (m *Model) goNext() tea.Cmd {
	before := m.ctrl.Step()
	if err := m.ctrl.GoNext(); err != nil {
		m.reportErrors(err)
		return nil
	}
	if m.ctrl.Step() != before {
		m.focus = 0
		m.banner = ""
	}
	return m.syncFocus()
}

func (m *Model) submit() tea.Cmd {
	p, err := m.ctrl.Submit()
	if err != nil {
		m.reportErrors(err)
		return nil
	}

	m.completed = true
	m.banner = ""
	m.profile = p
	m.blurAll()
	if m.opts.Save == nil {
		return nil
	}
	m.saving = true
	save := m.opts.Save
	return func() tea.Msg { return savedMsg{err: save(p)} }
}

func (m *Model) reportErrors(err error) {
	var verrs wizard.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		for _, f := range verrs.Fields() {
			m.touched[f] = true
		}
		m.banner = fmt.Sprintf("%d field(s) need attention", len(verrs))
	case errors.Is(err, wizard.ErrNotFinalStep):
		m.banner = "Finish all steps before submitting"
	default:
		m.banner = err.Error()
	}
}

// pick selects the highlighted option of a choice field or toggles it for
// a multi-select field.
func (m *Model) pick(f wizard.Field) {
	opts := f.Catalog()
	if len(opts) == 0 {
		return
	}
	m.ctrl.SetField(f, opts[m.cursors[f]].Value)
	m.touched[f] = true
}

func (m *Model) moveCursor(f wizard.Field, delta int) {
	n := len(f.Catalog())
	if n == 0 {
		return
	}
	m.cursors[f] = (m.cursors[f] + delta + n) % n
}

func (m *Model) setText(f wizard.Field, v string) {
	m.ctrl.SetField(f, v)
	m.touched[f] = true
}

// forwardToInput passes msg to the focused text input and mirrors its value
// into the controller.
func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	f := m.focused()
	var cmd tea.Cmd

	switch {
	case f == wizard.ProductDescription:
		before := m.desc.Value()
		m.desc, cmd = m.desc.Update(msg)
		if v := m.desc.Value(); v != before {
			m.setText(f, v)
		}
	case m.inputs[f] != nil:
		in := m.inputs[f]
		before := in.Value()
		*in, cmd = in.Update(msg)
		if v := in.Value(); v != before {
			m.setText(f, v)
		}
	}
	return cmd
}

func (m *Model) updateComplete(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.choice = 1 - m.choice
	case "enter":
		if m.choice == 0 {
			m.next = NextDiscovery
		} else {
			m.next = NextDashboard
		}
		return m.quit()
	case "esc", "q", "ctrl+c":
		m.next = NextNone
		return m.quit()
	}
	return m, nil
}

// quit exits once the pending save has reported back, so Result carries
// its outcome.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.saving {
		m.quitAfter = true
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) stepFields() []wizard.Field {
	return wizard.Step(m.ctrl.Step()).Fields
}

func (m *Model) focused() wizard.Field {
	fields := m.stepFields()
	if m.focus >= len(fields) {
		m.focus = 0
	}
	return fields[m.focus]
}

func (m *Model) blurAll() {
	for _, in := range m.inputs {
		in.Blur()
	}
	m.desc.Blur()
}

// syncFocus focuses the text input of the focused field, if it has one.
func (m *Model) syncFocus() tea.Cmd {
	m.blurAll()
	f := m.focused()
	if f == wizard.ProductDescription {
		return m.desc.Focus()
	}
	if in := m.inputs[f]; in != nil {
		return in.Focus()
	}
	return nil
}

func (m *Model) modalWidth() int {
	return min(max(m.width-10, 60), 100)
}

func (m *Model) resize() {
	w := m.modalWidth() - 8
	for _, in := range m.inputs {
		in.SetWidth(w)
	}
	m.desc.SetWidth(w)
}

// View renders the onboarding UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render draws the modal centered on the screen.
func (m *Model) render() string {
	s := theme.Current().S()

	var body string
	if m.completed {
		body = m.renderComplete()
	} else {
		body = m.renderStep()
	}

	modal := s.ModalContainer.Width(m.modalWidth()).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) renderStep() string {
	s := theme.Current().S()
	step := wizard.Step(m.ctrl.Step())
	inner := m.modalWidth() - 8

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render(fmt.Sprintf("Brand Setup · Step %d of %d: %s",
		step.Number, wizard.TotalSteps, step.Title)))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(step.Description))
	b.WriteString("\n")
	b.WriteString(renderProgress(m.ctrl.Progress(), inner-5))
	b.WriteString("\n\n")

	for i, f := range step.Fields {
		b.WriteString(m.renderField(f, i == m.focus))
		b.WriteString("\n")
	}

	if m.banner != "" {
		b.WriteString(s.Banner.Render("! " + m.banner))
		b.WriteString("\n\n")
	}

	b.WriteString(renderButtons(inner, navButtons(step.Number, wizard.TotalSteps, m.ctrl.StepValid(step.Number))...))
	b.WriteString("\n\n")
	b.WriteString(m.hints())
	return b.String()
}

func (m *Model) renderField(f wizard.Field, focused bool) string {
	s := theme.Current().S()

	var b strings.Builder
	label := f.Label()
	if f.Multi() {
		label += " (select all that apply)"
	}
	if focused {
		b.WriteString(s.LabelFocused.Render("› " + label))
	} else {
		b.WriteString(s.Label.Render("  " + label))
	}
	b.WriteString("\n")

	switch {
	case f == wizard.ProductDescription:
		b.WriteString(m.desc.View())
	case m.inputs[f] != nil:
		b.WriteString(m.inputs[f].View())
	default:
		b.WriteString(m.renderOptions(f, focused))
	}
	b.WriteString("\n")

	if msg := m.ctrl.FieldError(f); msg != "" && m.touched[f] {
		b.WriteString(s.FieldError.Render("✗ " + msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderOptions(f wizard.Field, focused bool) string {
	s := theme.Current().S()

	lines := make([]string, 0, len(f.Catalog()))
	for i, o := range f.Catalog() {
		cursor := "  "
		if focused && i == m.cursors[f] {
			cursor = s.OptionCursor.Render("> ")
		}

		var mark string
		selected := m.ctrl.Selected(f, o.Value)
		switch {
		case f.Multi() && selected:
			mark = "[x]"
		case f.Multi():
			mark = "[ ]"
		case selected:
			mark = "(•)"
		default:
			mark = "( )"
		}

		text := mark + " " + o.Label
		if selected {
			text = s.OptionSelected.Render(text)
		} else {
			text = s.Option.Render(text)
		}
		if o.Description != "" {
			text += " " + s.OptionDesc.Render(o.Description)
		}
		lines = append(lines, cursor+text)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) hints() string {
	s := theme.Current().S()
	f := m.focused()

	pairs := []string{"tab", "next field"}
	switch {
	case f.Multi():
		pairs = append(pairs, "↑↓", "move", "space", "toggle")
	case f.Kind() == wizard.KindChoice:
		pairs = append(pairs, "↑↓", "move", "enter", "select")
	case f == wizard.ProductDescription:
		pairs = append(pairs, "ctrl+e", "$EDITOR")
	}
	if m.ctrl.Step() == wizard.TotalSteps {
		pairs = append(pairs, "ctrl+s", "submit")
	} else {
		pairs = append(pairs, "ctrl+n", "next step")
	}
	if m.ctrl.Step() == 1 {
		pairs = append(pairs, "esc", "cancel")
	} else {
		pairs = append(pairs, "esc", "back")
	}
	return s.HintBar(pairs...)
}

func (m *Model) renderComplete() string {
	s := theme.Current().S()
	inner := m.modalWidth() - 8

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render("Brand Setup Complete"))
	b.WriteString("\n")
	b.WriteString(renderProgress(100, inner-5))
	b.WriteString("\n\n")
	b.WriteString(s.Success.Render("✓ " + m.profile.ProductName + " is ready for influencer discovery"))
	b.WriteString("\n")

	switch {
	case m.saving:
		b.WriteString(s.Subtitle.Render("Saving..."))
	case m.saveErr != nil:
		b.WriteString(s.FieldError.Render("✗ Could not save profile: " + m.saveErr.Error()))
	case m.opts.Save != nil:
		b.WriteString(s.Subtitle.Render("Saved under " + m.opts.Key))
	}
	b.WriteString("\n\n")

	discover := Button{Label: "Start discovery"}
	dashboard := Button{Label: "Dashboard"}
	if m.choice == 0 {
		discover.State = ButtonFocused
	} else {
		dashboard.State = ButtonFocused
	}
	b.WriteString(renderButtons(inner, discover, dashboard))
	b.WriteString("\n\n")
	b.WriteString(s.HintBar("←→", "choose", "enter", "go", "q", "quit"))
	return b.String()
}

func indexOf(c brand.Catalog, value string) int {
	for i, o := range c {
		if o.Value == value {
			return i
		}
	}
	return -1
}
