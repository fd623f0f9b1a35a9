package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.editing {
		return m.handleEditKey(keyMsg)
	}
	switch keyMsg.String() {
	case "q":
		if m.focus == focusNav && m.filter != "" {
			m.setFilter(m.filter + "q")
			return nil
		}
		return tea.Quit
	case "esc":
		if m.focus == focusNav && m.filter != "" {
			m.setFilter("")
			return nil
		}
		return tea.Quit
	case "tab":
		m.toggleFocus()
	case "up":
		m.moveCursor(-1)
	case "down":
		m.moveCursor(1)
	case "left":
		if m.focus == focusForm {
			m.adjustWidget(-1)
		}
	case "right":
		if m.focus == focusForm {
			m.adjustWidget(1)
		}
	case "enter":
		if m.focus == focusNav {
			m.navEnter()
		} else {
			m.activateWidget()
		}
	case " ":
		if m.focus == focusForm {
			m.activateWidget()
		} else {
			m.appendFilter(" ")
		}
	case "backspace":
		m.backspaceFilter()
	default:
		if m.focus == focusNav && keyMsg.Type == tea.KeyRunes {
			m.appendFilter(string(keyMsg.Runes))
		}
	}
	return nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusNav {
		m.focus = focusForm
	} else {
		m.focus = focusNav
	}
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusNav {
		m.moveNavCursor(delta)
		return
	}
	m.moveFormCursor(delta)
}

func (m *Model) appendFilter(text string) {
	if m.focus != focusNav {
		return
	}
	m.setFilter(m.filter + text)
}

func (m *Model) backspaceFilter() {
	if m.focus != focusNav || m.filter == "" {
		return
	}
	runes := []rune(m.filter)
	m.setFilter(string(runes[:len(runes)-1]))
}
