package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func TestTabVisualWidthMatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for active := range Tabs {
		var want []string
		total := 0
		for i, tab := range Tabs {
			label := tab.Name
			if i != active && tab.KeyPos < 0 {
				label += "[" + string(tab.Key) + "]"
			}
			want = append(want, " "+label+" ")
			total += TabVisualWidth(tab, i == active)
		}
		plain := strings.Join(want, "│")
		assert.Equal(t, len([]rune(plain)), total+len(Tabs)-1)

		bar := RenderTabBar(active, 200)
		assert.Equal(t, 200, lipgloss.Width(bar))
		assert.True(t, strings.HasPrefix(stripANSI(bar), plain), "active=%d", active)
	}
}

func TestTabVisualWidth_InactiveSettingsShowsKey(t *testing.T) {
	settings := Tabs[len(Tabs)-1]
	assert.Equal(t, len(settings.Name)+2, TabVisualWidth(settings, true))
	assert.Equal(t, len(settings.Name)+2+3, TabVisualWidth(settings, false))
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 0, TabIdxByKey('o'))
	assert.Equal(t, 4, TabIdxByKey('x'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}

func TestStatusBar_NoticeReplacesHints(t *testing.T) {
	theme.SetActive("flexoki-dark")

	plain := stripANSI(RenderStatusBar(80, Status{DataAge: "0.1s"}))
	assert.Contains(t, plain, "[?]help")
	assert.Contains(t, plain, "loaded 0.1s")

	failed := stripANSI(RenderStatusBar(80, Status{Notice: Notice{Text: "save failed", Err: true}}))
	assert.Contains(t, failed, "✗ save failed")
	assert.NotContains(t, failed, "[?]help")
	assert.Equal(t, 80, lipgloss.Width(failed))
}

func TestSparkline_HandlesNegatives(t *testing.T) {
	line := stripANSI(Sparkline([]float64{-10, 0, 10}, theme.Active.Accent))
	assert.Equal(t, "▁▄█", line)
}

func TestHBar(t *testing.T) {
	line := stripANSI(HBar("Food", 6, 50, 100, 10, "N$50", theme.Active.Red))
	assert.Equal(t, "Food   █████      N$50", line)

	tiny := stripANSI(HBar("Fees", 4, 1, 1000, 10, "N$1", theme.Active.Red))
	assert.Contains(t, tiny, "█")
}

func TestProgressClamp(t *testing.T) {
	assert.Contains(t, stripANSI(ProgressBar(1.7, 10)), "100%")
	assert.Contains(t, stripANSI(ProgressBar(-1, 10)), "0%")
	assert.Equal(t, "xy…", truncate("xyzzy", 3))
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "2K", formatChartLabel(2000))
	assert.Equal(t, "1.5M", formatChartLabel(1_500_000))
	assert.Equal(t, "0.50", formatChartLabel(0.5))
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
