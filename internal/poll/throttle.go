package poll

import "time"

// throttle enforces a minimum gap between successive polls of one key.
type throttle struct {
	interval time.Duration
	last     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval}
}

func (t *throttle) wait() {
	if t.interval <= 0 {
		return
	}
	now := time.Now()
	if !t.last.IsZero() {
		if elapsed := now.Sub(t.last); elapsed < t.interval {
			time.Sleep(t.interval - elapsed)
			now = time.Now()
		}
	}
	t.last = now
}
