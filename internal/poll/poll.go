// Package poll turns the host's button polling pattern into an event
// channel: each watched key is read at a fixed interval and a press event is
// emitted once per latch, with the cell reset to false on consumption.
package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/covao/chibiui/internal/store"
	"github.com/covao/chibiui/internal/value"
)

// Source is the slice of a session the watcher needs.
type Source interface {
	Get(path string) (value.Value, error)
	Set(path string, v value.Value) error
}

// Event reports one observed button press.
type Event struct {
	Key string
	Err error
}

// Watcher polls button cells at a fixed interval and publishes press events.
type Watcher struct {
	source   Source
	keys     []string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls every interval. One poller
// goroutine runs per key, matching the latch-then-reset discipline the host
// loop would otherwise hand-roll.
func NewWatcher(source Source, keys []string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		keys:     append([]string(nil), keys...),
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	for _, key := range w.keys {
		w.startPoller(key)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel of press events. It closes once every poller
// has exited after Stop, or after the session shuts down.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current tick; use Wait
// if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startPoller(key string) {
	throttle := newThrottle(w.interval)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				return
			default:
			}
			throttle.wait()
			pressed, err := w.consume(key)
			if err != nil {
				if errors.Is(err, store.ErrClosed) {
					return
				}
				w.emit(Event{Key: key, Err: err})
				continue
			}
			if pressed {
				w.emit(Event{Key: key})
			}
		}
	}()
}

// consume reads the latch and resets it when set.
func (w *Watcher) consume(key string) (bool, error) {
	v, err := w.source.Get(key)
	if err != nil {
		return false, err
	}
	pressed, err := v.AsBool()
	if err != nil {
		return false, err
	}
	if !pressed {
		return false, nil
	}
	if err := w.source.Set(key, value.Bool(false)); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Watcher) emit(evt Event) {
	select {
	case <-w.ctx.Done():
	case w.events <- evt:
	}
}
