package events

import "github.com/covao/chibiui/internal/logging"

type WidgetTracer struct{}

type ValueTracer struct{}

var (
	Widget = WidgetTracer{}
	Value  = ValueTracer{}
)

func (WidgetTracer) Declare(path, kind, label string) {
	logging.Trace("widget.declare", map[string]interface{}{
		"path":  path,
		"kind":  kind,
		"label": label,
	})
}

func (WidgetTracer) Duplicate(path, kind, label string) {
	logging.Trace("widget.duplicate", map[string]interface{}{
		"path":  path,
		"kind":  kind,
		"label": label,
	})
}

func (ValueTracer) Set(key string) {
	logging.Trace("value.set", map[string]interface{}{"key": key})
}

func (ValueTracer) Miss(key string) {
	logging.Trace("value.miss", map[string]interface{}{"key": key})
}
