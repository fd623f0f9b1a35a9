package poll

import (
	"errors"
	"testing"
	"time"

	"github.com/covao/chibiui/internal/core"
	"github.com/covao/chibiui/internal/value"
	"github.com/covao/chibiui/internal/widget"
)

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-events:
		if !ok {
			t.Fatalf("events channel closed before an event arrived")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a press event")
	}
	return Event{}
}

func waitClosed(t *testing.T, events <-chan Event) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for the events channel to close")
		}
	}
}

func TestWatcherEmitsPressAndResetsLatch(t *testing.T) {
	s := core.NewSession("test")
	if err := s.Declare(widget.NewButton("Go")); err != nil {
		t.Fatalf("declare: %v", err)
	}
	w := NewWatcher(s, []string{"/Go"}, time.Millisecond)
	defer w.Stop()

	if err := s.Set("/Go", value.Bool(true)); err != nil {
		t.Fatalf("set: %v", err)
	}
	evt := waitEvent(t, w.Events())
	if evt.Err != nil {
		t.Fatalf("unexpected poll error: %v", evt.Err)
	}
	if evt.Key != "/Go" {
		t.Fatalf("event key = %q, want /Go", evt.Key)
	}

	// The watcher consumed the press; the latch is back to false.
	deadline := time.Now().Add(time.Second)
	for {
		v, err := s.Get("/Go")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		pressed, _ := v.AsBool()
		if !pressed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("latch was not reset after the event")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWatcherEmitsOncePerPress(t *testing.T) {
	s := core.NewSession("test")
	s.Declare(widget.NewButton("Go"))
	w := NewWatcher(s, []string{"/Go"}, time.Millisecond)
	defer w.Stop()

	s.Set("/Go", value.Bool(true))
	waitEvent(t, w.Events())

	select {
	case evt, ok := <-w.Events():
		if ok {
			t.Fatalf("unexpected second event for a single press: %+v", evt)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherReportsKindErrors(t *testing.T) {
	s := core.NewSession("test")
	s.Declare(widget.NewTextbox("Name", "John"))
	w := NewWatcher(s, []string{"/Name"}, time.Millisecond)
	defer w.Stop()

	evt := waitEvent(t, w.Events())
	if !errors.Is(evt.Err, value.ErrTypeMismatch) {
		t.Fatalf("expected a kind mismatch error, got %v", evt.Err)
	}
	if evt.Key != "/Name" {
		t.Fatalf("event key = %q, want /Name", evt.Key)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	s := core.NewSession("test")
	s.Declare(widget.NewButton("Go"))
	w := NewWatcher(s, []string{"/Go"}, time.Millisecond)
	w.Stop()
	waitClosed(t, w.Events())
}

func TestWatcherExitsWhenSessionCloses(t *testing.T) {
	s := core.NewSession("test")
	s.Declare(widget.NewButton("Go"))
	w := NewWatcher(s, []string{"/Go"}, time.Millisecond)
	s.Close()
	waitClosed(t, w.Events())
}

func TestThrottleEnforcesInterval(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	th.wait() // first call is free
	start := time.Now()
	th.wait()
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("second wait returned after %s, want ~20ms", elapsed)
	}
}
