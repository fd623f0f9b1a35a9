package tree

import (
	"testing"

	"github.com/covao/chibiui/internal/widget"
)

func TestEnsureCreatesAncestors(t *testing.T) {
	tr := New()
	node := tr.Ensure("/A/B/C")
	if node.Path != "/A/B/C" {
		t.Fatalf("Ensure returned %q", node.Path)
	}
	for _, p := range []string{"/", "/A", "/A/B", "/A/B/C"} {
		if _, ok := tr.Node(p); !ok {
			t.Fatalf("expected node at %q", p)
		}
	}
	if tr.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", tr.Len())
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	tr := New()
	tr.Ensure("/A/B")
	tr.Ensure("/A/B/C")
	tr.Ensure("/A/B/C")
	if tr.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", tr.Len())
	}
	a, _ := tr.Node("/A")
	if children := a.Children(); len(children) != 1 {
		t.Fatalf("expected /A to keep one child, got %d", len(children))
	}
}

func TestOnCreateFiresOncePerNodeRootDown(t *testing.T) {
	tr := New()
	var created []string
	tr.SetOnCreate(func(n *Node) { created = append(created, n.Path) })
	tr.Ensure("/A/B")
	tr.Ensure("/A/B/C")
	tr.Ensure("/A")
	want := []string{"/A", "/A/B", "/A/B/C"}
	if len(created) != len(want) {
		t.Fatalf("created %v, want %v", created, want)
	}
	for i := range want {
		if created[i] != want[i] {
			t.Fatalf("created %v, want %v", created, want)
		}
	}
}

func TestDeclareDeduplicatesOnKindAndLabel(t *testing.T) {
	tr := New()
	node, added := tr.Declare("/Person", widget.NewTextbox("Name", "John"))
	if !added {
		t.Fatalf("first declaration should append")
	}
	if _, added = tr.Declare("/Person", widget.NewTextbox("Name", "Jane")); added {
		t.Fatalf("re-declaration with same kind and label must be ignored")
	}
	if len(node.Widgets) != 1 {
		t.Fatalf("expected one widget, got %d", len(node.Widgets))
	}
	if got, _ := node.Widgets[0].Default.AsString(); got != "John" {
		t.Fatalf("first default must win, got %q", got)
	}
}

func TestDeclareAllowsSameLabelDifferentKind(t *testing.T) {
	tr := New()
	tr.Declare("/Person", widget.NewTextbox("Name", "John"))
	node, added := tr.Declare("/Person", widget.NewSelector("Name", []string{"A", "B"}, "A"))
	if !added {
		t.Fatalf("same label with a different kind must be a distinct control")
	}
	if len(node.Widgets) != 2 {
		t.Fatalf("expected two widgets, got %d", len(node.Widgets))
	}
}

func TestWalkVisitsDepthFirstInCreationOrder(t *testing.T) {
	tr := New()
	tr.Ensure("/B")
	tr.Ensure("/A/X")
	tr.Ensure("/B/Y")
	var visited []string
	tr.Walk(func(n *Node) { visited = append(visited, n.Path) })
	want := []string{"/", "/B", "/B/Y", "/A", "/A/X"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestNodeName(t *testing.T) {
	tr := New()
	if name := tr.Root().Name(); name != "" {
		t.Fatalf("root name should be empty, got %q", name)
	}
	node := tr.Ensure("/Person/Profile")
	if node.Name() != "Profile" {
		t.Fatalf("expected leaf name Profile, got %q", node.Name())
	}
	if node.Parent().Path != "/Person" {
		t.Fatalf("expected parent /Person, got %q", node.Parent().Path)
	}
}
