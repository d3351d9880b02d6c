package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	require.Less(t, shortLines, tallLines)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	require.Len(t, lines, tallLines)

	for i := shortLines; i < len(lines); i++ {
		assert.Contains(t, lines[i], "\x1b[", "padding line %d has no styling", i)
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)
	shortCard := ContentCard("Short", "A", 30)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	for i, line := range lines {
		assert.Equal(t, 50, lipgloss.Width(line), "line %d", i)
	}
}

func TestLayoutRow(t *testing.T) {
	assert.Equal(t, []int{34, 33, 33}, LayoutRow(100, 3))
	assert.Nil(t, LayoutRow(100, 0))
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Balance", Value: "N$1,000.00", Sign: 1},
		{Label: "This month", Value: "-N$50.00", Sign: -1},
		{Label: "Health", Value: "72/100", Delta: "B"},
	}, 90)
	for _, line := range strings.Split(row, "\n") {
		assert.Equal(t, 90, lipgloss.Width(line))
	}
}
