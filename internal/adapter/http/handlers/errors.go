package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

// statusFor maps a service error onto a status code and message key.
// fallbackKey is used for failures that are not tied to a known cause.
func statusFor(err error, fallbackKey string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoIdentity):
		return http.StatusUnauthorized, apierrors.MsgUnauthenticated
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, domain.ErrInvalidTask):
		return http.StatusBadRequest, apierrors.MsgInvalidTaskPayload
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, apierrors.MsgInvalidCredentials
	case errors.Is(err, domain.ErrEmailNotConfirmed):
		return http.StatusForbidden, apierrors.MsgEmailNotConfirmed
	case errors.Is(err, domain.ErrNotificationsUnsupported):
		return http.StatusNotImplemented, apierrors.MsgNotificationsUnsupported
	case domain.IsKind(err, domain.KindAuth) || domain.IsKind(err, domain.KindData):
		return http.StatusBadGateway, fallbackKey
	}
	return http.StatusInternalServerError, fallbackKey
}

// respondError translates a service error; server-side failures are logged.
func respondError(c *gin.Context, err error, fallbackKey string, logMsg string, fields ...zap.Field) {
	code, key := statusFor(err, fallbackKey)
	if code >= http.StatusInternalServerError {
		zap.L().Error(logMsg, append(fields, zap.Error(err))...)
	}
	c.JSON(code, apierrors.CreateError(code, key, middleware.GetLang(c)))
}

func badRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}
