package service

import "time"

// SetNotifierClock replaces the notifier's clock in tests.
func SetNotifierClock(n *DeadlineNotifier, now func() time.Time) {
	n.now = now
}
