package ui

import (
	"reflect"

	"github.com/covao/chibiui/internal/core"
	"github.com/covao/chibiui/internal/theme"
	"github.com/covao/chibiui/internal/widget"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type focusArea int

const (
	focusNav focusArea = iota
	focusForm
)

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for one session: a filterable tree
// pane plus the form controls of the currently visible page. Controls are
// rebuilt wholesale from declarations and live values on every renderMsg;
// nothing is patched incrementally.
type Model struct {
	session *core.Session

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	focus      focusArea
	nav        []core.NavEntry
	navCursor  int
	filter     string
	page       string
	widgets    []widget.Decl
	formCursor int

	editing bool
	editKey string
	input   textinput.Model

	errMsg  string
	infoMsg string

	ready    func()
	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the renderer state for the session. The ready callback
// fires once, after the first frame has been assembled.
func NewModel(s *core.Session, width, height int, ready func()) *Model {
	input := textinput.New()
	input.Prompt = ""
	m := &Model{
		session: s,
		ready:   ready,
		input:   input,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.refreshNav()
	m.showPage(s.CurrentPath())
	m.registerHandlers()
	return m
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(readyMsg{}):          m.handleReadyMsg,
		reflect.TypeOf(nodeAddedMsg{}):      m.handleNodeAddedMsg,
		reflect.TypeOf(renderMsg{}):         m.handleRenderMsg,
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return readyMsg{} }
}

// Update is part of the tea.Model interface.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler, ok := m.handlers[reflect.TypeOf(msg)]; ok {
		return m, handler(msg)
	}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleReadyMsg(tea.Msg) tea.Cmd {
	m.refreshNav()
	m.showPage(m.session.CurrentPath())
	if m.ready != nil {
		m.ready()
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

func (m *Model) handleNodeAddedMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(nodeAddedMsg); !ok {
		return nil
	}
	m.refreshNav()
	return nil
}

func (m *Model) handleRenderMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(renderMsg)
	if !ok {
		return nil
	}
	if update.path != m.session.CurrentPath() {
		return nil
	}
	m.showPage(update.path)
	return nil
}

// refreshNav re-snapshots the flattened tree, keeping the cursor on the same
// path when it survives the update.
func (m *Model) refreshNav() {
	var selected string
	if visible := m.visibleNav(); m.navCursor < len(visible) {
		selected = visible[m.navCursor].Path
	}
	m.nav = m.session.NavEntries()
	if selected == "" {
		return
	}
	for i, entry := range m.visibleNav() {
		if entry.Path == selected {
			m.navCursor = i
			return
		}
	}
}

// showPage rebuilds the form pane from the page's declarations. Any edit in
// flight is abandoned; the store keeps whatever was last committed.
func (m *Model) showPage(path string) {
	widgets, ok := m.session.PageWidgets(path)
	if !ok {
		return
	}
	m.page = path
	m.widgets = widgets
	if m.formCursor >= len(widgets) {
		m.formCursor = 0
	}
	m.cancelEdit()
}

func (m *Model) currentWidget() (widget.Decl, bool) {
	if m.formCursor < 0 || m.formCursor >= len(m.widgets) {
		return widget.Decl{}, false
	}
	return m.widgets[m.formCursor], true
}

// Page exposes the visible path for tests.
func (m *Model) Page() string { return m.page }
