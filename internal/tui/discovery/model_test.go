package discovery

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runTicks feeds n progress ticks and returns the last command.
func runTicks(m *Model, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = m.Update(tickMsg{})
	}
	return cmd
}

func TestTicksFor(t *testing.T) {
	tests := []struct {
		phase Phase
		speed float64
		want  int
	}{
		{Phases[0], 1, 40},
		{Phases[1], 1, 60},
		{Phases[2], 1, 50},
		{Phases[3], 1, 40},
		{Phases[1], 2, 30},
		{Phases[1], 0, 60},
		{Phases[0], 1000, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ticksFor(tt.phase, tt.speed), "%s at %vx", tt.phase.Title, tt.speed)
	}
	assert.Equal(t, 500*time.Millisecond, holdFor(2))
}

func TestPhasesAdvanceEvenly(t *testing.T) {
	m := New(testfixtures.EcoClean(), 1)

	runTicks(m, 20)
	assert.Equal(t, 0, m.Phase())
	assert.InDelta(t, 12.5, m.Progress(), 0.001)

	runTicks(m, 20)
	assert.Equal(t, 1, m.Phase())
	assert.InDelta(t, 25, m.Progress(), 0.001)

	runTicks(m, 60)
	assert.Equal(t, 2, m.Phase())
	assert.InDelta(t, 50, m.Progress(), 0.001)

	runTicks(m, 50)
	assert.Equal(t, 3, m.Phase())
	assert.InDelta(t, 75, m.Progress(), 0.001)

	cmd := runTicks(m, 40)
	require.True(t, m.Done())
	assert.Equal(t, 100.0, m.Progress())
	assert.NotNil(t, cmd, "completion hold is scheduled")
	assert.False(t, m.Finished())

	assert.Nil(t, runTicks(m, 1), "ticks after completion are ignored")
	assert.Equal(t, 100.0, m.Progress())

	_, cmd = m.Update(holdDoneMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, m.Finished())
	assert.False(t, m.Skipped())
}

func TestSpeedShortensPhases(t *testing.T) {
	m := New(testfixtures.EcoClean(), 4)
	runTicks(m, 10)
	assert.Equal(t, 1, m.Phase())
}

func TestQuitEarlyIsSkip(t *testing.T) {
	m := New(testfixtures.EcoClean(), 1)
	runTicks(m, 3)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.NotNil(t, cmd)
	assert.True(t, m.Skipped())
}

func TestEnterAfterCompletion(t *testing.T) {
	m := New(testfixtures.EcoClean(), 1000)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "enter does nothing while running")

	runTicks(m, len(Phases))
	require.True(t, m.Done())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, m.Finished())
}

func TestRender(t *testing.T) {
	m := New(testfixtures.EcoClean(), 1)
	runTicks(m, 45)

	out := ansi.Strip(m.render())
	assert.Contains(t, out, "ICY is Working Its Magic")
	assert.Contains(t, out, "EcoClean Skincare on Instagram, YouTube")
	assert.Contains(t, out, "✓ Scanning Social Platforms")
	assert.Contains(t, out, "Analyzing Brand Fit")
	assert.Contains(t, out, "○ Checking Audience Match")
	assert.Contains(t, out, "27%")

	m = New(brand.Profile{}, 1)
	assert.Contains(t, ansi.Strip(m.render()), "Discovering the perfect influencers for your campaign...")
}

func TestGradientBar(t *testing.T) {
	out := ansi.Strip(gradientBar(50, 10))
	assert.Equal(t, "█████░░░░░", out)
}
