// Package discovery plays the influencer discovery animation shown after a
// brand profile is saved. It is illustrative only: no searching happens.
package discovery

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/tui/theme"
	"github.com/icyhq/icy/internal/wizard"
)

type tickMsg struct{}

type holdDoneMsg struct{}

// Model is the BubbleTea model for the discovery screen.
type Model struct {
	profile brand.Profile
	speed   float64

	phase     int // index into Phases; len(Phases) once all are done
	phaseTick int
	progress  float64

	spinner spinner.Model

	width    int
	height   int
	finished bool
	skipped  bool
}

// New creates the animation for p. speed scales every duration; values <= 0
// mean normal speed.
func New(p brand.Profile, speed float64) *Model {
	if speed <= 0 {
		speed = 1
	}
	s := theme.Current()
	return &Model{
		profile: p.Clone(),
		speed:   speed,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(s.S().Spinner),
		),
		width:  100,
		height: 40,
	}
}

// Init starts the progress and spinner ticks.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// Progress returns the overall completion percentage.
func (m *Model) Progress() float64 {
	return m.progress
}

// Phase returns the index of the running phase, or len(Phases) when done.
func (m *Model) Phase() int {
	return m.phase
}

// Done reports whether every phase has completed.
func (m *Model) Done() bool {
	return m.phase >= len(Phases)
}

// Finished reports whether the completion hold elapsed.
func (m *Model) Finished() bool {
	return m.finished
}

// Skipped reports whether the user quit early.
func (m *Model) Skipped() bool {
	return m.skipped
}

// Update handles messages for the discovery screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.Done() {
				m.skipped = true
			}
			return m, tea.Quit
		case "enter":
			if m.Done() {
				m.finished = true
				return m, tea.Quit
			}
		}
		return m, nil

	case tickMsg:
		return m, m.advance()

	case holdDoneMsg:
		m.finished = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// advance moves progress one tick forward within the running phase.
func (m *Model) advance() tea.Cmd {
	if m.Done() {
		return nil
	}

	share := 100 / float64(len(Phases))
	total := ticksFor(Phases[m.phase], m.speed)
	m.phaseTick++
	start := float64(m.phase) * share
	m.progress = start + share*float64(min(m.phaseTick, total))/float64(total)

	if m.phaseTick < total {
		return tick()
	}

	m.phase++
	m.phaseTick = 0
	if m.Done() {
		m.progress = 100
		return tea.Tick(holdFor(m.speed), func(time.Time) tea.Msg { return holdDoneMsg{} })
	}
	return tick()
}

// View renders the discovery screen.
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

func (m *Model) render() string {
	s := theme.Current().S()
	width := min(max(m.width-10, 60), 90)
	inner := width - 8

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render("ICY is Working Its Magic"))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(m.subtitle()))
	b.WriteString("\n\n")

	label := "Discovery Progress"
	pct := fmt.Sprintf("%.0f%%", m.progress)
	gap := max(inner-lipgloss.Width(label)-lipgloss.Width(pct), 1)
	b.WriteString(s.Label.Render(label) + strings.Repeat(" ", gap) + s.ProgressLabel.Render(pct))
	b.WriteString("\n")
	b.WriteString(gradientBar(m.progress, inner))
	b.WriteString("\n\n")

	for i, p := range Phases {
		b.WriteString(m.renderPhase(i, p))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.Done() {
		b.WriteString(s.Success.Render("✓ Discovery complete"))
		b.WriteString("\n\n")
		b.WriteString(s.HintBar("enter", "done", "q", "quit"))
	} else {
		b.WriteString(s.OptionDesc.Render("Did you know? Each influencer is checked against 50+ data points, " +
			"from engagement rates to audience demographics and brand safety."))
		b.WriteString("\n\n")
		b.WriteString(s.HintBar("q", "skip"))
	}

	modal := s.ModalContainer.Width(width).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) subtitle() string {
	name := m.profile.ProductName
	if strings.TrimSpace(name) == "" {
		name = "your campaign"
	}
	platforms := wizard.Display(m.profile, wizard.Platforms)
	if platforms == "-" {
		return "Discovering the perfect influencers for " + name + "..."
	}
	return fmt.Sprintf("Discovering the perfect influencers for %s on %s...", name, platforms)
}

func (m *Model) renderPhase(i int, p Phase) string {
	s := theme.Current().S()
	switch {
	case i < m.phase:
		return s.Success.Render("✓ "+p.Title) + "\n  " + s.OptionDesc.Render(p.Description)
	case i == m.phase:
		return m.spinner.View() + " " + s.OptionCursor.Render(p.Title) + "\n  " + s.Subtitle.Render(p.Description)
	default:
		return s.Option.Render("○ "+p.Title) + "\n  " + s.OptionDesc.Render(p.Description)
	}
}

// gradientBar fills the bar with a primary to tertiary color sweep.
func gradientBar(percent float64, width int) string {
	t := theme.Current()
	filled := int(percent / 100 * float64(width))

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i >= filled {
			b.WriteString(t.S().ProgressEmpty.Render("░"))
			continue
		}
		hex := theme.InterpolateColor(t.Primary, t.Tertiary, float64(i)/float64(max(width-1, 1)))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█"))
	}
	return b.String()
}
