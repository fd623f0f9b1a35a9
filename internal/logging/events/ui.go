package events

import "github.com/covao/chibiui/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) TreeSelect(path string) {
	logging.Trace("ui.tree-select", map[string]interface{}{"path": path})
}

func (UITracer) TreeCursor(path string, cursor int) {
	logging.Trace("ui.tree-cursor", map[string]interface{}{"path": path, "cursor": cursor})
}

func (UITracer) FormCursor(path string, cursor int) {
	logging.Trace("ui.form-cursor", map[string]interface{}{"path": path, "cursor": cursor})
}

func (UITracer) Activate(key, kind string) {
	logging.Trace("ui.activate", map[string]interface{}{"key": key, "kind": kind})
}

func (UITracer) EditStart(key string) {
	logging.Trace("ui.edit-start", map[string]interface{}{"key": key})
}

func (UITracer) EditCommit(key string) {
	logging.Trace("ui.edit-commit", map[string]interface{}{"key": key})
}

func (UITracer) EditCancel(key string) {
	logging.Trace("ui.edit-cancel", map[string]interface{}{"key": key})
}

func (UITracer) Filter(query string) {
	logging.Trace("ui.filter", map[string]interface{}{"query": query})
}
