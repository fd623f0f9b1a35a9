// Package widget describes declared input controls independently of any
// rendering toolkit.
package widget

import "github.com/covao/chibiui/internal/value"

// Kind identifies the control type of a declaration.
type Kind int

const (
	Textbox Kind = iota
	Selector
	Slider
	Checkbox
	FileBrowse
	Button
)

func (k Kind) String() string {
	switch k {
	case Textbox:
		return "textbox"
	case Selector:
		return "selector"
	case Slider:
		return "slider"
	case Checkbox:
		return "checkbox"
	case FileBrowse:
		return "browse_file"
	case Button:
		return "button"
	default:
		return "unknown"
	}
}

// Decl is one declared control: its kind, leaf label and type-specific
// configuration. Two declarations collide when kind and label both match.
type Decl struct {
	Kind    Kind
	Label   string
	Default value.Value

	// Selector only.
	Options []string

	// Slider only.
	Min, Max, Step float64
}

// NewTextbox declares a text field with an initial string.
func NewTextbox(label, def string) Decl {
	return Decl{Kind: Textbox, Label: label, Default: value.String(def)}
}

// NewSelector declares a dropdown. An empty default selects the first option.
func NewSelector(label string, options []string, def string) Decl {
	if def == "" && len(options) > 0 {
		def = options[0]
	}
	return Decl{Kind: Selector, Label: label, Default: value.String(def), Options: append([]string(nil), options...)}
}

// NewSlider declares a numeric slider. The default is snapped to the nearest
// step multiple from min before it ever seeds a cell.
func NewSlider(label string, min, max, step, def float64) Decl {
	return Decl{
		Kind:    Slider,
		Label:   label,
		Default: value.Number(value.Snap(def, min, step)),
		Min:     min,
		Max:     max,
		Step:    step,
	}
}

// NewCheckbox declares a boolean checkbox.
func NewCheckbox(label string, def bool) Decl {
	return Decl{Kind: Checkbox, Label: label, Default: value.Bool(def)}
}

// NewFileBrowse declares a file picker. It always starts empty.
func NewFileBrowse(label string) Decl {
	return Decl{Kind: FileBrowse, Label: label, Default: value.String("")}
}

// NewButton declares a momentary button. The cell starts false and is set to
// true on activation; resetting it is the caller's job.
func NewButton(label string) Decl {
	return Decl{Kind: Button, Label: label, Default: value.Bool(false)}
}

// Matches reports whether another declaration names the same control.
func (d Decl) Matches(other Decl) bool {
	return d.Kind == other.Kind && d.Label == other.Label
}
