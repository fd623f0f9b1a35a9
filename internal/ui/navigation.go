package ui

import (
	"github.com/covao/chibiui/internal/core"
	"github.com/covao/chibiui/internal/logging/events"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// visibleNav returns the tree rows matching the current filter. The root row
// always survives filtering so the pane never collapses to nothing.
func (m *Model) visibleNav() []core.NavEntry {
	if m.filter == "" {
		return m.nav
	}
	visible := make([]core.NavEntry, 0, len(m.nav))
	for _, entry := range m.nav {
		if entry.Depth == 0 || fuzzy.MatchFold(m.filter, entry.Path) {
			visible = append(visible, entry)
		}
	}
	return visible
}

func (m *Model) moveNavCursor(delta int) {
	visible := m.visibleNav()
	if len(visible) == 0 {
		return
	}
	m.navCursor += delta
	if m.navCursor < 0 {
		m.navCursor = len(visible) - 1
	}
	if m.navCursor >= len(visible) {
		m.navCursor = 0
	}
	events.UI.TreeCursor(visible[m.navCursor].Path, m.navCursor)
}

// navEnter navigates to the row under the cursor. The session updates the
// current path and echoes a render request back; the page is also shown
// directly so headless-driven tests see the switch without a program loop.
func (m *Model) navEnter() {
	visible := m.visibleNav()
	if m.navCursor < 0 || m.navCursor >= len(visible) {
		return
	}
	entry := visible[m.navCursor]
	events.UI.TreeSelect(entry.Path)
	if m.session.NavigateTo(entry.Path) {
		m.showPage(entry.Path)
		m.errMsg = ""
	}
}

func (m *Model) setFilter(query string) {
	m.filter = query
	m.navCursor = 0
	events.UI.Filter(query)
}
