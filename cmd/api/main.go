package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"taskboard/pkg/translator"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	"taskboard/internal/app"
	"taskboard/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageId, translator.LanguageEn},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	if err := application.Start(ctx); err != nil {
		logger.Warn("starting signed out", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, application.Sessions, httpadapter.Handlers{
		Health:        handlers.NewHealthHandler(application.Backend, application.Storage),
		Auth:          handlers.NewAuthHandler(application.Sessions),
		Tasks:         handlers.NewTaskHandler(application.Tasks, cfg.Location),
		Views:         handlers.NewViewHandler(application.Tasks, cfg.Location),
		Export:        handlers.NewExportHandler(application.Tasks, application.Exporter),
		Notifications: handlers.NewNotificationHandler(application.Inbox, application.PermissionChanged),
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	// Listens for SIGINT and SIGTERM. The server drains before the
	// notifier and storage are closed.
	wait := gfshutdown.GracefulShutdown(context.Background(), shutdownTimeout, map[string]gfshutdown.Operation{
		"taskboard": func(ctx context.Context) error {
			logger.Info("shutting down server")
			err := srv.Shutdown(ctx)
			cancel()
			application.Close()
			return err
		},
	})

	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	if err := logger.Sync(); err != nil {
		zap.L().Debug("failed to sync logger", zap.Error(err))
	}
	os.Exit(exitCode)
}
