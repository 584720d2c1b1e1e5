package notify

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const defaultCapacity = 100

// Inbox keeps the raised notifications in memory, newest first, for the HTTP
// front end to poll. A notification replaces any earlier one with its tag.
type Inbox struct {
	logger   *zap.Logger
	capacity int

	mu         sync.RWMutex
	permission domain.Permission
	items      []domain.Notification
}

var _ ports.NotificationInbox = (*Inbox)(nil)

func NewInbox(permission domain.Permission, logger *zap.Logger) *Inbox {
	if permission == "" {
		permission = domain.PermissionDefault
	}
	return &Inbox{
		logger:     logger,
		capacity:   defaultCapacity,
		permission: permission,
		items:      make([]domain.Notification, 0),
	}
}

func (i *Inbox) Supported() bool {
	return true
}

func (i *Inbox) Permission() domain.Permission {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.permission
}

// RequestPermission records the user's answer to the permission prompt.
func (i *Inbox) RequestPermission(_ context.Context, grant bool) (domain.Permission, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if grant {
		i.permission = domain.PermissionGranted
	} else {
		i.permission = domain.PermissionDenied
	}
	i.logger.Info("notification permission updated", zap.String("permission", string(i.permission)))
	return i.permission, nil
}

func (i *Inbox) Show(_ context.Context, n domain.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.permission != domain.PermissionGranted {
		return domain.ErrPermissionDenied
	}

	i.items = slices.DeleteFunc(i.items, func(existing domain.Notification) bool {
		return n.Tag != "" && existing.Tag == n.Tag
	})
	i.items = append([]domain.Notification{n}, i.items...)
	if len(i.items) > i.capacity {
		i.items = i.items[:i.capacity]
	}

	i.logger.Info("notification raised", zap.String("tag", n.Tag), zap.String("title", n.Title))
	return nil
}

func (i *Inbox) List() []domain.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.items)
}

// Dismiss removes the notification with tag and reports whether one existed.
func (i *Inbox) Dismiss(tag string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	before := len(i.items)
	i.items = slices.DeleteFunc(i.items, func(existing domain.Notification) bool {
		return existing.Tag == tag
	})
	return len(i.items) != before
}
