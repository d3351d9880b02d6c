package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/fintrack/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			assert.Equal(t, i, a.tabAtX(x), "active=%d x=%d", active, x)
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}

		assert.Equal(t, -1, a.tabAtX(pos+5), "active=%d past last tab", active)
	}
}

func TestTabAtXSeparatorIsNotATab(t *testing.T) {
	a := App{activeTab: 0}
	first := components.TabVisualWidth(components.Tabs[0], true)
	assert.Equal(t, -1, a.tabAtX(first))
	assert.Equal(t, 1, a.tabAtX(first+1))
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a := App{loaded: true}
	x := components.TabVisualWidth(components.Tabs[0], true) + 2

	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft})
	assert.Equal(t, tabTransactions, m.(App).activeTab)

	// Clicks below the tab bar are ignored.
	m, _ = a.Update(tea.MouseMsg{X: x, Y: 3, Button: tea.MouseButtonLeft})
	assert.Equal(t, tabOverview, m.(App).activeTab)
}
