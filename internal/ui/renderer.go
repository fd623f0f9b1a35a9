// Package ui renders a session with Bubble Tea: a navigation tree pane on the
// left and the visible page's form controls on the right. It satisfies the
// core.Renderer contract; all control state lives on the tea event loop and
// the host reaches it only through queued messages.
package ui

import (
	"errors"
	"sync"

	"github.com/covao/chibiui/internal/core"
	"github.com/covao/chibiui/internal/logging"
	"github.com/covao/chibiui/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

// readyMsg is emitted once the first frame has been constructed.
type readyMsg struct{}

// nodeAddedMsg announces a new navigation tree node.
type nodeAddedMsg struct {
	path string
}

// renderMsg requests a full rebuild of the controls for one page.
type renderMsg struct {
	path string
}

// Renderer drives a tea.Program for one session.
type Renderer struct {
	width   int
	height  int
	model   *Model
	program *tea.Program

	ready     chan struct{}
	done      chan struct{}
	readyOnce sync.Once
}

// New creates a renderer. Zero width/height track the terminal size.
func New(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start spawns the render loop and blocks until the first frame is ready.
// The loop owns every control; when it exits (quit key or kill) the session
// is closed so host polling loops observe the shutdown.
func (r *Renderer) Start(s *core.Session) error {
	r.model = NewModel(s, r.width, r.height, func() {
		r.readyOnce.Do(func() { close(r.ready) })
	})
	r.program = tea.NewProgram(r.model, tea.WithAltScreen())
	go func() {
		_, err := r.program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logging.Error(err)
		}
		close(r.done)
		s.Close()
	}()
	select {
	case <-r.ready:
		return nil
	case <-r.done:
		return errors.New("ui: render loop exited before first frame")
	}
}

// NodeAdded queues a tree pane refresh for a freshly created node.
func (r *Renderer) NodeAdded(n *tree.Node) {
	r.send(nodeAddedMsg{path: n.Path})
}

// RenderNode queues a rebuild of the page at n from its declarations and the
// live store.
func (r *Renderer) RenderNode(n *tree.Node) {
	r.send(renderMsg{path: n.Path})
}

// Close asks the render loop to quit. Safe after the loop already exited.
func (r *Renderer) Close() {
	if r.program == nil {
		return
	}
	select {
	case <-r.done:
	default:
		r.program.Quit()
	}
}

func (r *Renderer) send(msg tea.Msg) {
	if r.program == nil {
		return
	}
	select {
	case <-r.done:
	default:
		r.program.Send(msg)
	}
}
