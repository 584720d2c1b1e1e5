package notify

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// Unsupported stands in when the environment cannot show notifications.
type Unsupported struct{}

var _ ports.NotificationInbox = Unsupported{}

func (Unsupported) Supported() bool {
	return false
}

func (Unsupported) Permission() domain.Permission {
	return domain.PermissionDenied
}

func (Unsupported) RequestPermission(context.Context, bool) (domain.Permission, error) {
	return domain.PermissionDenied, domain.ErrNotificationsUnsupported
}

func (Unsupported) Show(context.Context, domain.Notification) error {
	return domain.ErrNotificationsUnsupported
}

func (Unsupported) List() []domain.Notification {
	return []domain.Notification{}
}

func (Unsupported) Dismiss(string) bool {
	return false
}
