package ports

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
)

// CancelFunc stops a scheduled job. It is safe to call more than once.
type CancelFunc func()

// Scheduler runs fn once after initialDelay and then every interval until
// cancelled.
type Scheduler interface {
	Schedule(initialDelay, interval time.Duration, fn func()) CancelFunc
}

// NotificationSurface is where local notifications are shown.
type NotificationSurface interface {
	Supported() bool
	Permission() domain.Permission
	RequestPermission(ctx context.Context, grant bool) (domain.Permission, error)
	Show(ctx context.Context, n domain.Notification) error
}

type NotificationInbox interface {
	NotificationSurface
	List() []domain.Notification
	Dismiss(tag string) bool
}
