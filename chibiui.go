// Package chibiui is a minimal declarative form UI: one navigable tree of
// pages holding input widgets whose live values are addressed by path
// strings. Hosts declare widgets with compound labels ("Person/Name"), then
// poll and push values while the renderer mirrors the same state.
//
// The zero-dependency way to use it is headless:
//
//	ui, err := chibiui.New("Demo", chibiui.WithNoGUI())
//	ui.AddTextbox("Person/Name", "John Doe")
//	ui.AddButton("Person/Submit")
//	for ui.IsAlive() {
//	    if ok, _ := ui.GetBool("Person/Submit"); ok {
//	        ui.Set("Person/Submit", false)
//	        // act on the form
//	    }
//	}
//
// Without WithNoGUI a terminal renderer starts on its own goroutine and New
// blocks until its first frame is up.
package chibiui

import (
	"fmt"

	"github.com/covao/chibiui/internal/core"
	"github.com/covao/chibiui/internal/logging/events"
	"github.com/covao/chibiui/internal/ui"
	"github.com/covao/chibiui/internal/value"
	"github.com/covao/chibiui/internal/widget"
)

// Value is the tagged variant held by every widget cell.
type Value = value.Value

// Errors returned by the facade. All failures are recoverable; a polling
// host loop can keep running across any of them.
var (
	ErrNotFound     = core.ErrNotFound
	ErrClosed       = core.ErrClosed
	ErrInvalidLabel = core.ErrInvalidLabel
	ErrTypeMismatch = value.ErrTypeMismatch
)

// Renderer materializes pages. The terminal renderer in internal/ui is the
// default; WithRenderer swaps in another implementation and WithNoGUI runs
// with none at all.
type Renderer = core.Renderer

type options struct {
	nogui    bool
	width    int
	height   int
	renderer Renderer
}

// Option configures session construction.
type Option func(*options)

// WithNoGUI keeps the full value tree working without any renderer.
func WithNoGUI() Option {
	return func(o *options) { o.nogui = true }
}

// WithSize fixes the rendered viewport instead of tracking the terminal.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithRenderer substitutes a custom renderer implementation.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// UI is one live session.
type UI struct {
	session *core.Session
}

// New constructs a session. Unless headless, it attaches the renderer and
// blocks until the render loop has produced its first frame; this is the only
// call that ever blocks the host.
func New(title string, opts ...Option) (*UI, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	session := core.NewSession(title)
	events.Session.Start(title, o.nogui)
	u := &UI{session: session}
	if o.nogui {
		return u, nil
	}
	renderer := o.renderer
	if renderer == nil {
		renderer = ui.New(o.width, o.height)
	}
	if err := session.AttachRenderer(renderer); err != nil {
		session.Close()
		return nil, fmt.Errorf("chibiui: %w", err)
	}
	return u, nil
}

// AddTextbox declares a text field. The label may carry a page path; missing
// pages are created on the way. Re-declaring an existing (type, label) pair
// is a no-op that leaves the live value alone.
func (u *UI) AddTextbox(label, defaultText string) error {
	return u.session.Declare(widget.NewTextbox(label, defaultText))
}

// AddSelector declares a dropdown. An empty default selects the first option.
func (u *UI) AddSelector(label string, options []string, defaultValue string) error {
	return u.session.Declare(widget.NewSelector(label, options, defaultValue))
}

// AddSlider declares a numeric slider. The default is snapped once to the
// nearest multiple of step from min (ties away from zero) before it seeds
// the cell.
func (u *UI) AddSlider(label string, min, max, step, defaultValue float64) error {
	return u.session.Declare(widget.NewSlider(label, min, max, step, defaultValue))
}

// AddCheckbox declares a boolean checkbox.
func (u *UI) AddCheckbox(label string, defaultValue bool) error {
	return u.session.Declare(widget.NewCheckbox(label, defaultValue))
}

// AddFileBrowse declares a file path field. It always starts empty.
func (u *UI) AddFileBrowse(label string) error {
	return u.session.Declare(widget.NewFileBrowse(label))
}

// AddButton declares a momentary button starting false. Activation latches
// the cell to true; it stays true until the host resets it with Set.
func (u *UI) AddButton(label string) error {
	return u.session.Declare(widget.NewButton(label))
}

// Get reads the live value at a path such as "/Person/Name". Paths without a
// leading slash are accepted and normalized.
func (u *UI) Get(path string) (Value, error) {
	return u.session.Get(path)
}

// GetString reads a string-typed cell.
func (u *UI) GetString(path string) (string, error) {
	v, err := u.session.Get(path)
	if err != nil {
		return "", err
	}
	return v.AsString()
}

// GetNumber reads a numeric cell.
func (u *UI) GetNumber(path string) (float64, error) {
	v, err := u.session.Get(path)
	if err != nil {
		return 0, err
	}
	return v.AsNumber()
}

// GetBool reads a boolean cell.
func (u *UI) GetBool(path string) (bool, error) {
	v, err := u.session.Get(path)
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// Set replaces the live value at a path. Accepted types are string, bool and
// any Go numeric; the value must match the cell's kind. Missing cells report
// ErrNotFound and are never created.
func (u *UI) Set(path string, v any) error {
	converted, err := convert(v)
	if err != nil {
		return err
	}
	return u.session.Set(path, converted)
}

// NavigateTo makes the node at path the visible page. Unknown paths report
// false and leave the current page unchanged.
func (u *UI) NavigateTo(path string) bool {
	return u.session.NavigateTo(path)
}

// CurrentPath returns the page currently materialized by the renderer.
func (u *UI) CurrentPath() string {
	return u.session.CurrentPath()
}

// IsAlive reports whether the session still accepts operations. It flips
// false when the host calls Close or the user quits the render surface.
func (u *UI) IsAlive() bool {
	return u.session.Alive()
}

// Close shuts the session down. Idempotent; afterwards Get and Set fail
// softly instead of panicking against a torn-down surface.
func (u *UI) Close() {
	u.session.Close()
}

// Session exposes the underlying controller for packages inside this module
// (the poll watcher feeds on it).
func (u *UI) Session() *core.Session {
	return u.session
}

func convert(v any) (value.Value, error) {
	switch t := v.(type) {
	case value.Value:
		return t, nil
	case string:
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case float64:
		return value.Number(t), nil
	case float32:
		return value.Number(float64(t)), nil
	case int:
		return value.Number(float64(t)), nil
	case int8:
		return value.Number(float64(t)), nil
	case int16:
		return value.Number(float64(t)), nil
	case int32:
		return value.Number(float64(t)), nil
	case int64:
		return value.Number(float64(t)), nil
	case uint:
		return value.Number(float64(t)), nil
	case uint8:
		return value.Number(float64(t)), nil
	case uint16:
		return value.Number(float64(t)), nil
	case uint32:
		return value.Number(float64(t)), nil
	case uint64:
		return value.Number(float64(t)), nil
	default:
		return value.Value{}, fmt.Errorf("%w: unsupported type %T", ErrTypeMismatch, v)
	}
}
