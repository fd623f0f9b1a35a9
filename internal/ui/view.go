package ui

import (
	"fmt"
	"strings"

	"github.com/covao/chibiui/internal/value"
	"github.com/covao/chibiui/internal/widget"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	navPaneMinWidth = 16
	navPaneMaxWidth = 32
)

// View implements tea.Model. The frame is assembled from scratch every time:
// the tree pane from the session's node snapshot, the form pane from the
// visible page's declarations plus the live store.
func (m *Model) View() string {
	title := m.session.Title()
	var b strings.Builder
	if title != "" {
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
	}
	nav := m.renderNavPane()
	form := m.renderFormPane()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, nav, " ", form))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg)))
	} else if m.infoMsg != "" {
		b.WriteString(styles.Info.Render(m.infoMsg))
	}
	b.WriteString("\n")
	b.WriteString(styles.Footer.Render("↑/↓ move  tab pane  enter select  ←/→ adjust  q quit"))
	return b.String()
}

func (m *Model) navPaneWidth() int {
	if m.width <= 0 {
		return navPaneMinWidth
	}
	w := m.width / 3
	if w < navPaneMinWidth {
		w = navPaneMinWidth
	}
	if w > navPaneMaxWidth {
		w = navPaneMaxWidth
	}
	return w
}

func (m *Model) renderNavPane() string {
	width := m.navPaneWidth()
	visible := m.visibleNav()
	lines := make([]string, 0, len(visible)+1)
	for i, entry := range visible {
		label := strings.Repeat("  ", entry.Depth) + entry.Name
		label = truncate.StringWithTail(label, uint(width), "…")
		switch {
		case m.focus == focusNav && i == m.navCursor:
			label = styles.NavSelected.Render(label)
		case entry.Path == m.page:
			label = styles.NavCurrent.Render(label)
		default:
			label = styles.NavItem.Render(label)
		}
		lines = append(lines, label)
	}
	prompt := styles.FilterPrompt.Render("/") + styles.Filter.Render(m.filter)
	lines = append(lines, prompt)
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFormPane() string {
	width := m.width - m.navPaneWidth() - 1
	if width <= 0 {
		width = 40
	}
	lines := make([]string, 0, len(m.widgets)+1)
	lines = append(lines, styles.Title.Render(m.page))
	if len(m.widgets) == 0 {
		lines = append(lines, styles.Info.Render("(no widgets)"))
	}
	for i, decl := range m.widgets {
		focused := m.focus == focusForm && i == m.formCursor
		line := m.renderWidgetLine(decl, focused)
		lines = append(lines, truncate.StringWithTail(line, uint(width), "…"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderWidgetLine(decl widget.Decl, focused bool) string {
	key := m.widgetKey(decl)
	labelStyle := styles.Label
	if focused {
		labelStyle = styles.FocusedLabel
	}
	current, err := m.session.Get(key)
	display := "?"
	if err == nil {
		display = current.Display()
	}
	if focused && m.editing && m.editKey == key {
		return labelStyle.Render(decl.Label+": ") + styles.Editing.Render(m.input.View())
	}
	switch decl.Kind {
	case widget.Selector:
		return labelStyle.Render(decl.Label+": ") + styles.Value.Render("◂ "+display+" ▸")
	case widget.Slider:
		scale := fmt.Sprintf(" [%s..%s/%s]",
			value.Number(decl.Min).Display(),
			value.Number(decl.Max).Display(),
			value.Number(decl.Step).Display())
		return labelStyle.Render(decl.Label+": ") + styles.Value.Render(display) + styles.Info.Render(scale)
	case widget.Checkbox:
		mark := "[ ]"
		if display == "true" {
			mark = "[x]"
		}
		return labelStyle.Render(mark + " " + decl.Label)
	case widget.Button:
		line := styles.Button.Render("[ " + decl.Label + " ]")
		if display == "true" {
			line += styles.Info.Render(" (pressed)")
		}
		if focused {
			line = labelStyle.Render("▸ ") + line
		}
		return line
	default:
		// Textbox and FileBrowse share the plain text presentation.
		return labelStyle.Render(decl.Label+": ") + styles.Value.Render(display)
	}
}
