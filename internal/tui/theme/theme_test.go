package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "tokyo-night", ByName("tokyo-night").Name)
	assert.Equal(t, FlexokiDark.Name, ByName("nope").Name)
}

func TestKnownAndNames(t *testing.T) {
	assert.True(t, Known("terminal"))
	assert.False(t, Known(""))
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}

func TestAmountColor(t *testing.T) {
	th := FlexokiDark
	assert.Equal(t, th.GreenBright, th.Amount(1))
	assert.Equal(t, th.Red, th.Amount(-1))
	assert.Equal(t, th.TextMuted, th.Amount(0))
}
