package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Tasks         *handlers.TaskHandler
	Views         *handlers.ViewHandler
	Export        *handlers.ExportHandler
	Notifications *handlers.NotificationHandler
}

func RegisterRoutes(r *gin.Engine, identity ports.IdentitySource, h Handlers) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.POST("/auth/signup", h.Auth.SignUp)
		api.POST("/auth/signin", h.Auth.SignIn)
		api.POST("/auth/signout", h.Auth.SignOut)
		api.GET("/auth/session", h.Auth.Session)

		api.GET("/notifications", h.Notifications.ListNotifications)
		api.POST("/notifications/permission", h.Notifications.RequestPermission)
		api.DELETE("/notifications/:tag", h.Notifications.DismissNotification)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireIdentity(identity))
	{
		authed.GET("/tasks", h.Tasks.ListTasks)
		authed.POST("/tasks", h.Tasks.CreateTask)
		authed.POST("/tasks/refresh", h.Tasks.RefreshTasks)
		authed.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		authed.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		authed.GET("/calendar", h.Views.Calendar)
		authed.GET("/profile", h.Views.Profile)

		authed.GET("/export/pdf", h.Export.ExportPDF)
		authed.GET("/export/xlsx", h.Export.ExportSpreadsheet)
	}
}
