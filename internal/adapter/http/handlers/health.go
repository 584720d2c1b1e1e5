package handlers

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/middleware"
)

const (
	StatusOk           = "ok"
	StatusDown         = "down"
	healthCheckTimeout = 2 * time.Second
)

// Pinger is a dependency the health check can reach.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Backend      string `json:"backend"`
	LocalStorage string `json:"local_storage"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	backend Pinger
	storage Pinger
}

func NewHealthHandler(backend, storage Pinger) *HealthHandler {
	return &HealthHandler{backend: backend, storage: storage}
}

// CheckHealth is down only when local storage is unreachable; the hosted
// backend being down leaves the app usable for reading the cached list.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := 200
	message := StatusOk

	if !check(ctx, h.storage) {
		statusCode = 500
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(200, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Backend:      statusOf(check(ctx, h.backend)),
			LocalStorage: statusOf(check(ctx, h.storage)),
		},
	})
}

func check(ctx context.Context, dependency Pinger) bool {
	if dependency == nil {
		return false
	}
	// Avoid hanging health checks if a dependency stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return dependency.Ping(timeoutCtx) == nil
}

func statusOf(ok bool) string {
	if ok {
		return StatusOk
	}
	return StatusDown
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
