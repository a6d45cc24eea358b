package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/swcatalog/internal/swapi"
)

// Tab indexes swapi.Kinds in navigation order.
type Tab int

// tabCount is the number of kind tabs.
var tabCount = len(swapi.Kinds)

// Kind returns the entity kind shown by the tab.
func (t Tab) Kind() swapi.Kind {
	if int(t) >= 0 && int(t) < tabCount {
		return swapi.Kinds[t]
	}
	return swapi.Kinds[0]
}

// Label returns the display label for a tab.
func (t Tab) Label() string {
	return t.Kind().Label()
}

// Next cycles forward to the next tab, wrapping around.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % tabCount)
}

// Prev cycles backward to the previous tab, wrapping around.
func (t Tab) Prev() Tab {
	return Tab((int(t) + tabCount - 1) % tabCount)
}

// TabFromNumber converts a 1-based number key to a Tab.
// Returns the tab and true if valid, or the first tab and false otherwise.
func TabFromNumber(n int) (Tab, bool) {
	idx := n - 1
	if idx >= 0 && idx < tabCount {
		return Tab(idx), true
	}
	return 0, false
}

// TabFromKind returns the tab showing kind.
func TabFromKind(kind swapi.Kind) (Tab, bool) {
	for i, k := range swapi.Kinds {
		if k == kind {
			return Tab(i), true
		}
	}
	return 0, false
}

// TabBar renders a horizontal row of tab labels.
type TabBar struct {
	ActiveTab Tab
	Width     int
}

// View renders the tab bar as a single styled line. The active tab is bold
// and accented; inactive tabs are muted.
func (tb TabBar) View() string {
	var parts []string
	for i := range tabCount {
		tab := Tab(i)
		label := fmt.Sprintf("[%d] %s", i+1, tab.Label())
		if tab == tb.ActiveTab {
			parts = append(parts, activeTabText.Render(label))
		} else {
			parts = append(parts, mutedText.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(tb.Width).
		PaddingLeft(1).
		Render(strings.Join(parts, "  "))
}
