package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 2), "position is clamped")
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	assert.Equal(t, []uint8{0xcb, 0xa6, 0xf7}, []uint8{r, g, b})

	r, g, b = ParseHexColor("bogus")
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})
}

func TestCurrentIsStable(t *testing.T) {
	assert.Same(t, Current(), Current())
	assert.Same(t, Current().S(), Current().S())
	assert.Equal(t, "catppuccin-mocha", Current().Name)
}

func TestHintBar(t *testing.T) {
	s := Current().S()
	assert.Equal(t, "tab next • esc back", ansi.Strip(s.HintBar("tab", "next", "esc", "back")))
	assert.Empty(t, s.HintBar("tab"))
	assert.Empty(t, s.HintBar())
}

func TestApplyGradient(t *testing.T) {
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
	assert.Equal(t, "icy", ansi.Strip(ApplyGradient("icy", "#cba6f7", "#89b4fa")))
}
