package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/covao/chibiui/internal/value"
)

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func TestViewShowsPageWidgetsWithLiveValues(t *testing.T) {
	s, h := newTestModel(t)
	h.enterPersonPage(t)
	view := plainView(h)
	for _, want := range []string{
		"/Person",
		"Name: John",
		"Gender: ◂ Male ▸",
		"Age: 30 [0..100/1]",
		"[x] Subscribe",
		"[ Submit ]",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	if err := s.Set("/Person/Name", value.String("Jane")); err != nil {
		t.Fatalf("set: %v", err)
	}
	h.Send(renderMsg{path: "/Person"})
	view = plainView(h)
	if !strings.Contains(view, "Name: Jane") {
		t.Fatalf("view should reflect the updated cell:\n%s", view)
	}
	if strings.Contains(view, "Name: John") {
		t.Fatalf("stale value still rendered:\n%s", view)
	}
}

func TestViewShowsPressedButton(t *testing.T) {
	s, h := newTestModel(t)
	h.enterPersonPage(t)
	if err := s.Set("/Person/Submit", value.Bool(true)); err != nil {
		t.Fatalf("set: %v", err)
	}
	h.Send(renderMsg{path: "/Person"})
	if view := plainView(h); !strings.Contains(view, "(pressed)") {
		t.Fatalf("pressed button should be marked:\n%s", view)
	}
}

func TestViewShowsFilterQuery(t *testing.T) {
	_, h := newTestModel(t)
	h.Type("per")
	if view := plainView(h); !strings.Contains(view, "/per") {
		t.Fatalf("filter prompt should echo the query:\n%s", view)
	}
}

func TestViewShowsInlineEditor(t *testing.T) {
	_, h := newTestModel(t)
	h.enterPersonPage(t)
	h.Key(tea.KeyTab)
	h.Key(tea.KeyEnter)
	h.Type("x")
	if view := plainView(h); !strings.Contains(view, "Johnx") {
		t.Fatalf("editor buffer should be visible while editing:\n%s", view)
	}
	h.Key(tea.KeyEsc)
}
