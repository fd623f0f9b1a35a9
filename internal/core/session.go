// Package core wires the path resolver, navigation tree and value store into
// a single session and decides when the renderer must rebuild the visible
// page.
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/covao/chibiui/internal/logging/events"
	"github.com/covao/chibiui/internal/path"
	"github.com/covao/chibiui/internal/store"
	"github.com/covao/chibiui/internal/tree"
	"github.com/covao/chibiui/internal/value"
	"github.com/covao/chibiui/internal/widget"
)

var (
	// ErrNotFound reports an unknown path or value key.
	ErrNotFound = store.ErrNotFound
	// ErrClosed reports an operation after the session shut down.
	ErrClosed = store.ErrClosed
	// ErrInvalidLabel reports an empty or all-separator widget label.
	ErrInvalidLabel = errors.New("chibiui: invalid label")
)

// Renderer is the external collaborator that materializes pages. The session
// only ever hands it work; control state lives entirely on the renderer's own
// event loop. Implementations must tolerate calls after their loop exits.
type Renderer interface {
	// Start launches the render loop and blocks until the first frame is
	// ready. Called exactly once.
	Start(s *Session) error
	// NodeAdded announces a newly created tree node, root-down, once each.
	NodeAdded(n *tree.Node)
	// RenderNode requests a full rebuild of the node's control list from its
	// declarations and the live value store.
	RenderNode(n *tree.Node)
	// Close tears the render surface down. Idempotent.
	Close()
}

// NavEntry is a flattened tree row handed to the renderer's navigation pane.
type NavEntry struct {
	Path  string
	Name  string
	Depth int
}

// Session is the mutable state behind one UI instance: the navigation tree,
// the value store and the currently visible path.
type Session struct {
	mu       sync.Mutex
	title    string
	tree     *tree.Tree
	store    *store.Store
	renderer Renderer
	current  string
	alive    bool

	// Nodes created while mu is held, flushed to the renderer after unlock
	// so render work never runs under the session lock.
	pending []*tree.Node
}

// NewSession creates a live session rooted at "/" with no renderer attached.
func NewSession(title string) *Session {
	s := &Session{
		title:   title,
		tree:    tree.New(),
		store:   store.New(),
		current: path.Root,
		alive:   true,
	}
	s.tree.SetOnCreate(func(n *tree.Node) {
		s.pending = append(s.pending, n)
	})
	return s
}

// Title returns the session title.
func (s *Session) Title() string { return s.title }

// Store exposes the value store; its own lock makes it safe from any
// goroutine.
func (s *Session) Store() *store.Store { return s.store }

// AttachRenderer registers the renderer, replays the existing tree into it
// and starts its loop, blocking until the first frame is up.
func (s *Session) AttachRenderer(r Renderer) error {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return ErrClosed
	}
	s.renderer = r
	var existing []*tree.Node
	s.tree.Walk(func(n *tree.Node) {
		if n.Path != path.Root {
			existing = append(existing, n)
		}
	})
	s.mu.Unlock()

	s.store.SetNotify(s.onValueChanged)
	for _, n := range existing {
		r.NodeAdded(n)
	}
	if err := r.Start(s); err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}
	events.Session.Ready(s.title)
	return nil
}

// Declare adds one widget declaration. The label may carry a page path
// ("Person/Name"); missing ancestor nodes are created on the way. Declaring
// an already-present (kind, label) pair on the same page is a silent no-op
// and never touches the existing cell.
func (s *Session) Declare(decl widget.Decl) error {
	parent, leaf := path.SplitLabel(decl.Label)
	if leaf == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, decl.Label)
	}
	decl.Label = leaf

	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return ErrClosed
	}
	node, added := s.tree.Declare(parent, decl)
	key := path.FullKey(parent, leaf)
	if added {
		s.store.Ensure(key, decl.Default)
	}
	created := s.takePending()
	r := s.renderer
	visible := added && node.Path == s.current
	s.mu.Unlock()

	if !added {
		events.Widget.Duplicate(node.Path, decl.Kind.String(), leaf)
		return nil
	}
	events.Widget.Declare(node.Path, decl.Kind.String(), leaf)
	if r != nil {
		for _, n := range created {
			r.NodeAdded(n)
		}
		if visible {
			r.RenderNode(node)
		}
	}
	return nil
}

// Get reads the live value at a fully-qualified key.
func (s *Session) Get(p string) (value.Value, error) {
	v, err := s.store.Get(path.Normalize(p))
	if errors.Is(err, store.ErrNotFound) {
		events.Value.Miss(p)
	}
	return v, err
}

// Set replaces the live value at a fully-qualified key. Missing keys fail
// with ErrNotFound and are never created.
func (s *Session) Set(p string, v value.Value) error {
	key := path.Normalize(p)
	if err := s.store.Set(key, v); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			events.Value.Miss(key)
		}
		return err
	}
	events.Value.Set(key)
	return nil
}

// NavigateTo moves the visible path to p when a node exists there. On an
// unknown path it reports false and leaves the current path unchanged.
func (s *Session) NavigateTo(p string) bool {
	p = path.Normalize(p)
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return false
	}
	node, ok := s.tree.Node(p)
	if !ok {
		s.mu.Unlock()
		events.Session.Navigate(p, false)
		return false
	}
	s.current = p
	r := s.renderer
	s.mu.Unlock()

	events.Session.Navigate(p, true)
	if r != nil {
		r.RenderNode(node)
	}
	return true
}

// CurrentPath returns the path currently materialized by the renderer.
func (s *Session) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// NavEntries flattens the tree depth-first for the navigation pane. The root
// is always the first row.
func (s *Session) NavEntries() []NavEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []NavEntry
	s.tree.Walk(func(n *tree.Node) {
		name := n.Name()
		if n.Path == path.Root {
			name = "Root"
		}
		entries = append(entries, NavEntry{
			Path:  n.Path,
			Name:  name,
			Depth: len(path.Segments(n.Path)),
		})
	})
	return entries
}

// PageWidgets returns a copy of the declarations on the node at p.
func (s *Session) PageWidgets(p string) ([]widget.Decl, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.tree.Node(p)
	if !ok {
		return nil, false
	}
	decls := make([]widget.Decl, len(node.Widgets))
	copy(decls, node.Widgets)
	return decls, true
}

// Alive reports whether the session still accepts operations.
func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// Close shuts the session down: the store starts failing softly and the
// renderer, if any, is torn down. Safe to call from either the host or the
// renderer side, any number of times.
func (s *Session) Close() {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.alive = false
	r := s.renderer
	s.mu.Unlock()

	s.store.Close()
	if r != nil {
		r.Close()
	}
	events.Session.Close(s.title)
}

func (s *Session) takePending() []*tree.Node {
	created := s.pending
	s.pending = nil
	return created
}

func (s *Session) onValueChanged(key string) {
	parent, _ := path.SplitLabel(key)
	s.mu.Lock()
	node, ok := s.tree.Node(parent)
	visible := ok && parent == s.current
	r := s.renderer
	s.mu.Unlock()
	if visible && r != nil {
		r.RenderNode(node)
	}
}
