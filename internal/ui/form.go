package ui

import (
	"github.com/covao/chibiui/internal/logging/events"
	"github.com/covao/chibiui/internal/path"
	"github.com/covao/chibiui/internal/value"
	"github.com/covao/chibiui/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) moveFormCursor(delta int) {
	if len(m.widgets) == 0 {
		return
	}
	m.formCursor += delta
	if m.formCursor < 0 {
		m.formCursor = len(m.widgets) - 1
	}
	if m.formCursor >= len(m.widgets) {
		m.formCursor = 0
	}
	events.UI.FormCursor(m.page, m.formCursor)
}

// widgetKey resolves the store key for a declaration on the visible page.
func (m *Model) widgetKey(decl widget.Decl) string {
	return path.FullKey(m.page, decl.Label)
}

// activateWidget applies the focused control's primary action: buttons latch
// true, checkboxes toggle, selectors advance, text-like controls open an
// inline editor. The write goes through the session so the host observes it
// immediately.
func (m *Model) activateWidget() {
	decl, ok := m.currentWidget()
	if !ok {
		return
	}
	key := m.widgetKey(decl)
	events.UI.Activate(key, decl.Kind.String())
	switch decl.Kind {
	case widget.Button:
		m.setAndReport(key, value.Bool(true))
	case widget.Checkbox:
		current, err := m.session.Get(key)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		flag, err := current.AsBool()
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		m.setAndReport(key, value.Bool(!flag))
	case widget.Selector:
		m.cycleSelector(decl, key, 1)
	case widget.Textbox, widget.FileBrowse:
		m.startEdit(key)
	}
}

// adjustWidget handles left/right on the focused control: sliders step,
// selectors cycle.
func (m *Model) adjustWidget(direction int) {
	decl, ok := m.currentWidget()
	if !ok {
		return
	}
	key := m.widgetKey(decl)
	switch decl.Kind {
	case widget.Slider:
		current, err := m.session.Get(key)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		num, err := current.AsNumber()
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		next := num + float64(direction)*decl.Step
		if next < decl.Min {
			next = decl.Min
		}
		if next > decl.Max {
			next = decl.Max
		}
		m.setAndReport(key, value.Number(next))
	case widget.Selector:
		m.cycleSelector(decl, key, direction)
	}
}

func (m *Model) cycleSelector(decl widget.Decl, key string, direction int) {
	if len(decl.Options) == 0 {
		return
	}
	current, err := m.session.Get(key)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	selected, err := current.AsString()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	idx := 0
	for i, option := range decl.Options {
		if option == selected {
			idx = i
			break
		}
	}
	idx = (idx + direction + len(decl.Options)) % len(decl.Options)
	m.setAndReport(key, value.String(decl.Options[idx]))
}

// startEdit opens the inline editor seeded with the cell's live value, never
// the declaration default.
func (m *Model) startEdit(key string) {
	current, err := m.session.Get(key)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	text, err := current.AsString()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.editing = true
	m.editKey = key
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.input.Focus()
	events.UI.EditStart(key)
}

func (m *Model) handleEditKey(keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "enter":
		m.commitEdit()
		return nil
	case "esc":
		events.UI.EditCancel(m.editKey)
		m.cancelEdit()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return cmd
}

func (m *Model) commitEdit() {
	key := m.editKey
	text := m.input.Value()
	m.cancelEdit()
	m.setAndReport(key, value.String(text))
	events.UI.EditCommit(key)
}

func (m *Model) cancelEdit() {
	m.editing = false
	m.editKey = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) setAndReport(key string, v value.Value) {
	if err := m.session.Set(key, v); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}
