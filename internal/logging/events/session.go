package events

import "github.com/covao/chibiui/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Start(title string, nogui bool) {
	logging.Trace("session.start", map[string]interface{}{"title": title, "nogui": nogui})
}

func (SessionTracer) Ready(title string) {
	logging.Trace("session.ready", map[string]interface{}{"title": title})
}

func (SessionTracer) Close(title string) {
	logging.Trace("session.close", map[string]interface{}{"title": title})
}

func (SessionTracer) Navigate(path string, ok bool) {
	logging.Trace("session.navigate", map[string]interface{}{"path": path, "ok": ok})
}
