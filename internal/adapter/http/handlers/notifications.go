package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

// PermissionListener is told about every answer to the permission prompt.
type PermissionListener func(ctx context.Context, permission domain.Permission)

type NotificationHandler struct {
	inbox              ports.NotificationInbox
	onPermissionChange PermissionListener
}

func NewNotificationHandler(inbox ports.NotificationInbox, onPermissionChange PermissionListener) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, onPermissionChange: onPermissionChange}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NotificationList{
		Supported:     h.inbox.Supported(),
		Permission:    string(h.inbox.Permission()),
		Notifications: mapper.ToNotificationItems(h.inbox.List()),
	})
}

func (h *NotificationHandler) RequestPermission(c *gin.Context) {
	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidPermissionPayload)
		return
	}

	permission, err := h.inbox.RequestPermission(c.Request.Context(), *req.Granted)
	if err != nil {
		respondError(c, err, apierrors.MsgNotificationsUnsupported, "failed to request notification permission")
		return
	}
	if h.onPermissionChange != nil {
		h.onPermissionChange(c.Request.Context(), permission)
	}

	c.JSON(http.StatusOK, dto.PermissionItem{Permission: string(permission)})
}

func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	if !h.inbox.Dismiss(c.Param("tag")) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgNotificationNotFound, middleware.GetLang(c)),
		)
		return
	}

	c.Status(http.StatusNoContent)
}
