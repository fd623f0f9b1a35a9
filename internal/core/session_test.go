package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/covao/chibiui/internal/tree"
	"github.com/covao/chibiui/internal/value"
	"github.com/covao/chibiui/internal/widget"
)

// recordingRenderer captures the dispatch sequence the session sends it.
type recordingRenderer struct {
	mu       sync.Mutex
	started  bool
	closed   bool
	added    []string
	rendered []string
}

func (r *recordingRenderer) Start(*Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	return nil
}

func (r *recordingRenderer) NodeAdded(n *tree.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, n.Path)
}

func (r *recordingRenderer) RenderNode(n *tree.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = append(r.rendered, n.Path)
}

func (r *recordingRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *recordingRenderer) renderCount(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.rendered {
		if p == path {
			count++
		}
	}
	return count
}

func TestDeclareIsIdempotent(t *testing.T) {
	s := NewSession("test")
	if err := s.Declare(widget.NewTextbox("Person/Name", "John")); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if err := s.Declare(widget.NewTextbox("Person/Name", "Jane")); err != nil {
		t.Fatalf("duplicate declare should be silent: %v", err)
	}
	widgets, ok := s.PageWidgets("/Person")
	if !ok {
		t.Fatalf("expected /Person page")
	}
	if len(widgets) != 1 {
		t.Fatalf("expected one widget, got %d", len(widgets))
	}
	v, err := s.Get("/Person/Name")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got, _ := v.AsString(); got != "John" {
		t.Fatalf("second declaration must not reseed the cell, got %q", got)
	}
}

func TestDeclareRejectsEmptyLabel(t *testing.T) {
	s := NewSession("test")
	for _, label := range []string{"", "/", "///"} {
		if err := s.Declare(widget.NewTextbox(label, "x")); !errors.Is(err, ErrInvalidLabel) {
			t.Fatalf("Declare(%q) = %v, want ErrInvalidLabel", label, err)
		}
	}
}

func TestDeclareAutoCreatesAncestors(t *testing.T) {
	s := NewSession("test")
	if err := s.Declare(widget.NewTextbox("A/B/C/Field", "x")); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	entries := s.NavEntries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	want := []string{"/", "/A", "/A/B", "/A/B/C"}
	if len(paths) != len(want) {
		t.Fatalf("nav entries %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("nav entries %v, want %v", paths, want)
		}
	}
}

func TestSliderDefaultSnapsToStep(t *testing.T) {
	s := NewSession("test")
	if err := s.Declare(widget.NewSlider("S", 0, 10, 3, 4)); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	v, err := s.Get("/S")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got, _ := v.AsNumber(); got != 3 {
		t.Fatalf("slider default should snap 4 to 3, got %v", got)
	}
}

func TestButtonLatchesUntilReset(t *testing.T) {
	s := NewSession("test")
	if err := s.Declare(widget.NewButton("Go")); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if err := s.Set("/Go", value.Bool(true)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		v, err := s.Get("/Go")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if pressed, _ := v.AsBool(); !pressed {
			t.Fatalf("button must stay true until reset (poll %d)", i)
		}
	}
	if err := s.Set("/Go", value.Bool(false)); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	v, _ := s.Get("/Go")
	if pressed, _ := v.AsBool(); pressed {
		t.Fatalf("button should be false after reset")
	}
}

func TestNavigateToUnknownPathKeepsCurrent(t *testing.T) {
	s := NewSession("test")
	s.Declare(widget.NewTextbox("Person/Name", "John"))
	if !s.NavigateTo("/Person") {
		t.Fatalf("expected navigation to /Person to succeed")
	}
	if s.NavigateTo("/Nonexistent") {
		t.Fatalf("expected navigation to unknown path to fail")
	}
	if got := s.CurrentPath(); got != "/Person" {
		t.Fatalf("current path should stay /Person, got %q", got)
	}
}

func TestEndToEndHeadlessScenario(t *testing.T) {
	s := NewSession("scenario")
	if err := s.Declare(widget.NewTextbox("Person/Name", "John")); err != nil {
		t.Fatalf("declare textbox: %v", err)
	}
	if err := s.Declare(widget.NewSelector("Person/Gender", []string{"M", "F"}, "M")); err != nil {
		t.Fatalf("declare selector: %v", err)
	}
	if !s.NavigateTo("/Person") {
		t.Fatalf("NavigateTo(/Person) should succeed")
	}
	v, err := s.Get("/Person/Name")
	if err != nil {
		t.Fatalf("get name: %v", err)
	}
	if got, _ := v.AsString(); got != "John" {
		t.Fatalf("expected John, got %q", got)
	}
	if err := s.Set("/Person/Name", value.String("Jane")); err != nil {
		t.Fatalf("set name: %v", err)
	}
	v, _ = s.Get("/Person/Name")
	if got, _ := v.AsString(); got != "Jane" {
		t.Fatalf("expected Jane, got %q", got)
	}
	if s.NavigateTo("/Nonexistent") {
		t.Fatalf("NavigateTo(/Nonexistent) should fail")
	}
	if got := s.CurrentPath(); got != "/Person" {
		t.Fatalf("current path should stay /Person, got %q", got)
	}
}

func TestRendererReceivesNodesAndRenders(t *testing.T) {
	s := NewSession("test")
	s.Declare(widget.NewTextbox("Existing/Field", "x"))
	r := &recordingRenderer{}
	if err := s.AttachRenderer(r); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if !r.started {
		t.Fatalf("renderer should have been started")
	}
	// Pre-attach nodes are replayed.
	if len(r.added) != 1 || r.added[0] != "/Existing" {
		t.Fatalf("expected replay of /Existing, got %v", r.added)
	}

	// Declaring on the visible page triggers a rebuild; elsewhere it does not.
	s.Declare(widget.NewTextbox("Title", "t"))
	if got := r.renderCount("/"); got != 1 {
		t.Fatalf("expected one render of /, got %d", got)
	}
	s.Declare(widget.NewTextbox("Other/Field", "y"))
	if got := r.renderCount("/Other"); got != 0 {
		t.Fatalf("declaration on a hidden page must not render it, got %d", got)
	}

	if !s.NavigateTo("/Other") {
		t.Fatalf("navigate failed")
	}
	if got := r.renderCount("/Other"); got != 1 {
		t.Fatalf("navigation must render the target page, got %d", got)
	}
}

func TestValueChangeRerendersVisiblePage(t *testing.T) {
	s := NewSession("test")
	r := &recordingRenderer{}
	if err := s.AttachRenderer(r); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	s.Declare(widget.NewTextbox("Person/Name", "John"))
	s.NavigateTo("/Person")
	before := r.renderCount("/Person")
	if err := s.Set("/Person/Name", value.String("Jane")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if after := r.renderCount("/Person"); after != before+1 {
		t.Fatalf("expected one more render of /Person, got %d -> %d", before, after)
	}
}

func TestCloseMakesOperationsFailSoftly(t *testing.T) {
	s := NewSession("test")
	r := &recordingRenderer{}
	if err := s.AttachRenderer(r); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	s.Declare(widget.NewButton("Go"))
	s.Close()
	if s.Alive() {
		t.Fatalf("session should not be alive after Close")
	}
	if !r.closed {
		t.Fatalf("renderer should have been closed")
	}
	if _, err := s.Get("/Go"); err == nil {
		t.Fatalf("Get after Close must fail")
	}
	if err := s.Set("/Go", value.Bool(true)); err == nil {
		t.Fatalf("Set after Close must fail")
	}
	if err := s.Declare(widget.NewButton("Again")); !errors.Is(err, ErrClosed) {
		t.Fatalf("Declare after Close = %v, want ErrClosed", err)
	}
	if s.NavigateTo("/") {
		t.Fatalf("NavigateTo after Close must fail")
	}
	s.Close() // idempotent
}

func TestGetAcceptsUnnormalizedPaths(t *testing.T) {
	s := NewSession("test")
	s.Declare(widget.NewTextbox("Person/Name", "John"))
	v, err := s.Get("Person/Name")
	if err != nil {
		t.Fatalf("get without leading slash failed: %v", err)
	}
	if got, _ := v.AsString(); got != "John" {
		t.Fatalf("expected John, got %q", got)
	}
}
