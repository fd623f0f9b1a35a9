// Package value defines the tagged variant stored in widget value cells.
// Headless and rendered sessions share the same representation, so a host
// reading a cell sees identical behaviour whether or not a renderer runs.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrTypeMismatch reports a typed accessor applied to a cell of another kind.
var ErrTypeMismatch = errors.New("value: type mismatch")

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged variant over string, float64 and bool.
type Value struct {
	kind Kind
	str  string
	num  float64
	flag bool
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports the variant held.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string variant or ErrTypeMismatch.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", typeMismatch(KindString, v.kind)
	}
	return v.str, nil
}

// AsNumber returns the numeric variant or ErrTypeMismatch.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, typeMismatch(KindNumber, v.kind)
	}
	return v.num, nil
}

// AsBool returns the boolean variant or ErrTypeMismatch.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, typeMismatch(KindBool, v.kind)
	}
	return v.flag, nil
}

// Display renders the value for on-screen presentation.
func (v Value) Display() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}

// Any unwraps the variant into its native Go type.
func (v Value) Any() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	default:
		return v.str
	}
}

func typeMismatch(want, got Kind) error {
	return fmt.Errorf("%w: want %s, cell holds %s", ErrTypeMismatch, want, got)
}

// Snap rounds v to the nearest multiple of step measured from min. Ties round
// away from zero: Snap(4.5, 0, 3) is 6. A non-positive step leaves v as is.
func Snap(v, min, step float64) float64 {
	if step <= 0 {
		return v
	}
	return min + math.Round((v-min)/step)*step
}
