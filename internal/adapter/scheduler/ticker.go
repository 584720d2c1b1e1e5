package scheduler

import (
	"sync"
	"time"

	"taskboard/internal/core/ports"
)

// Ticker runs jobs on their own goroutine: once after the initial delay,
// then every interval. A non-positive interval runs the job once.
type Ticker struct{}

var _ ports.Scheduler = Ticker{}

func NewTicker() Ticker {
	return Ticker{}
}

func (Ticker) Schedule(initialDelay, interval time.Duration, fn func()) ports.CancelFunc {
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		timer := time.NewTimer(initialDelay)
		defer timer.Stop()

		select {
		case <-stop:
			return
		case <-timer.C:
		}
		fn()

		if interval <= 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
