package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/metrics"
)

const (
	morningDigestHour = 10
	eveningDigestHour = 19
)

type NotifierConfig struct {
	InitialDelay time.Duration
	Interval     time.Duration
	// DailyDigest adds the 10:00 and 19:00 reminder of unfinished tasks.
	DailyDigest bool
	Location    *time.Location
}

// DeadlineNotifier periodically warns about unfinished tasks due tomorrow.
type DeadlineNotifier struct {
	tasks     ports.TaskLister
	surface   ports.NotificationSurface
	scheduler ports.Scheduler
	cfg       NotifierConfig
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	cancel ports.CancelFunc
}

func NewDeadlineNotifier(tasks ports.TaskLister, surface ports.NotificationSurface, scheduler ports.Scheduler, cfg NotifierConfig, logger *zap.Logger) *DeadlineNotifier {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.InitialDelay < 0 {
		cfg.InitialDelay = 0
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &DeadlineNotifier{
		tasks:     tasks,
		surface:   surface,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules the periodic check. It does nothing when notifications are
// unsupported, not permitted, or already scheduled.
func (n *DeadlineNotifier) Start(ctx context.Context) {
	if !n.surface.Supported() {
		n.logger.Debug("notifications unsupported, deadline notifier disabled")
		return
	}
	if n.surface.Permission() != domain.PermissionGranted {
		n.logger.Debug("notification permission not granted, deadline notifier disabled")
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		return
	}
	n.cancel = n.scheduler.Schedule(n.cfg.InitialDelay, n.cfg.Interval, func() {
		n.Check(context.WithoutCancel(ctx))
	})
	n.logger.Info("deadline notifier started", zap.Duration("interval", n.cfg.Interval))
}

func (n *DeadlineNotifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel == nil {
		return
	}
	n.cancel()
	n.cancel = nil
	n.logger.Info("deadline notifier stopped")
}

func (n *DeadlineNotifier) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cancel != nil
}

// Check raises one notification per unfinished task due tomorrow, plus the
// daily digest when enabled and the hour matches. It returns what was shown.
func (n *DeadlineNotifier) Check(ctx context.Context) []domain.Notification {
	now := n.now().In(n.cfg.Location)
	tasks := n.tasks.List()
	raised := make([]domain.Notification, 0)

	for _, task := range domain.DueTomorrow(tasks, now) {
		notification := domain.Notification{
			ID:        uuid.NewString(),
			Tag:       domain.DeadlineTag(task.ID),
			Title:     "Deadline tomorrow",
			Body:      fmt.Sprintf("%s (%s) is due tomorrow.", task.Title, task.Category.Label()),
			TaskID:    task.ID,
			CreatedAt: now,
		}
		if n.show(ctx, notification, "deadline") {
			raised = append(raised, notification)
		}
	}

	if n.cfg.DailyDigest {
		if notification, ok := digest(tasks, now); ok && n.show(ctx, notification, "daily") {
			raised = append(raised, notification)
		}
	}

	return raised
}

func (n *DeadlineNotifier) show(ctx context.Context, notification domain.Notification, kind string) bool {
	if err := n.surface.Show(ctx, notification); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) || errors.Is(err, domain.ErrNotificationsUnsupported) {
			n.logger.Debug("notification suppressed", zap.String("tag", notification.Tag), zap.Error(err))
		} else {
			n.logger.Warn("failed to show notification", zap.String("tag", notification.Tag), zap.Error(err))
		}
		return false
	}
	metrics.IncrementNotification(kind)
	return true
}

func digest(tasks []domain.Task, now time.Time) (domain.Notification, bool) {
	hour := now.Hour()
	if !slices.Contains([]int{morningDigestHour, eveningDigestHour}, hour) {
		return domain.Notification{}, false
	}
	pending := domain.Pending(tasks)
	if len(pending) == 0 {
		return domain.Notification{}, false
	}

	title, greeting := "Morning reminder", "Good morning! Don't forget today's tasks"
	if hour == eveningDigestHour {
		title, greeting = "Evening reminder", "Good evening! Check today's progress"
	}
	return domain.Notification{
		ID:        uuid.NewString(),
		Tag:       domain.DailyReminderTag(hour),
		Title:     title,
		Body:      fmt.Sprintf("%s. You have %d unfinished tasks.", greeting, len(pending)),
		CreatedAt: now,
	}, true
}
