package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskboard/internal/adapter/db"
	"taskboard/internal/adapter/export"
	"taskboard/internal/adapter/notify"
	"taskboard/internal/adapter/scheduler"
	"taskboard/internal/adapter/storage"
	"taskboard/internal/adapter/supabase"
	"taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const redisNamespace = "taskboard:"

// LocalStorage is the persisted key/value store, reachable by health checks.
type LocalStorage interface {
	ports.SessionStorage
	Ping(ctx context.Context) error
}

// App is the application state shared by the HTTP server and the CLI. It
// holds exactly one session.
type App struct {
	Config   *config.Config
	Storage  LocalStorage
	Backend  *supabase.Client
	Sessions *service.SessionService
	Tasks    *service.TaskService
	Inbox    ports.NotificationInbox
	Notifier *service.DeadlineNotifier
	Exporter *export.Exporter

	logger *zap.Logger

	mu          sync.Mutex
	ctx         context.Context
	unsubscribe func()
	closers     []func() error
}

// New wires every component. Nothing talks to the backend until Start.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, logger: logger, ctx: context.Background()}

	localStorage, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Storage = localStorage

	a.Backend = supabase.NewClient(supabase.Config{
		URL:        cfg.BackendURL,
		AnonKey:    cfg.BackendAnonKey,
		StorageKey: cfg.SessionKeyPrefix + ".token",
		Timeout:    cfg.HTTPTimeout,
	}, localStorage, logger.Named("supabase"))

	a.Sessions = service.NewSessionService(a.Backend, localStorage, cfg.SessionKeyPrefix, logger.Named("session"))
	a.Tasks = service.NewTaskService(a.Backend, a.Sessions, cfg.Location, logger.Named("tasks"))

	if cfg.NotificationsEnabled {
		a.Inbox = notify.NewInbox(domain.PermissionDefault, logger.Named("inbox"))
	} else {
		a.Inbox = notify.Unsupported{}
	}
	a.Notifier = service.NewDeadlineNotifier(a.Tasks, a.Inbox, scheduler.NewTicker(), service.NotifierConfig{
		InitialDelay: cfg.NotifyInitialDelay,
		Interval:     cfg.NotifyInterval,
		DailyDigest:  cfg.DailyDigest,
		Location:     cfg.Location,
	}, logger.Named("notifier"))

	a.Exporter = export.NewExporter(cfg.Location)

	return a, nil
}

// Start restores the persisted session and keeps the deadline notifier
// running while someone is signed in. A failed restore leaves the app signed
// out and is returned for logging only.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	a.ctx = ctx
	a.unsubscribe = a.Sessions.Subscribe(func(state domain.SessionState) {
		a.syncNotifier(state)
	})
	a.mu.Unlock()

	err := a.Sessions.Start(ctx)
	a.syncNotifier(a.Sessions.Current())
	return err
}

// PermissionChanged starts or stops the notifier after the user answered the
// permission prompt.
func (a *App) PermissionChanged(_ context.Context, permission domain.Permission) {
	a.logger.Info("notification permission changed", zap.String("permission", string(permission)))
	a.syncNotifier(a.Sessions.Current())
}

func (a *App) syncNotifier(state domain.SessionState) {
	a.mu.Lock()
	ctx := a.ctx
	a.mu.Unlock()

	if state.Identity == nil || a.Inbox.Permission() != domain.PermissionGranted {
		a.Notifier.Stop()
		return
	}
	a.Notifier.Start(ctx)
}

// Close stops background work and releases local storage. It is safe to call
// on a partially built App.
func (a *App) Close() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if a.Notifier != nil {
		a.Notifier.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Close()
	}
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			a.logger.Warn("failed to close resource", zap.Error(err))
		}
	}
}

func (a *App) openStorage(ctx context.Context) (LocalStorage, error) {
	switch a.Config.StorageDriver {
	case config.StorageMemory:
		return storage.NewMemory(), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		return storage.NewRedis(client, redisNamespace), nil
	default:
		conn, err := db.Connect(a.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s local storage: %w", a.Config.StorageDriver, err)
		}
		a.closers = append(a.closers, conn.Close)
		return newSQLStorage(ctx, conn)
	}
}

func newSQLStorage(ctx context.Context, conn *sqlx.DB) (LocalStorage, error) {
	sqlStorage, err := storage.NewSQL(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare local storage: %w", err)
	}
	return sqlStorage, nil
}
