package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type AuthHandler struct {
	sessionService ports.SessionService
}

func NewAuthHandler(sessionService ports.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidAuthPayload)
		return
	}

	identity, err := h.sessionService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSignUp, "failed to sign up")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToIdentityItem(identity))
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidAuthPayload)
		return
	}

	identity, err := h.sessionService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSignIn, "failed to sign in")
		return
	}

	c.JSON(http.StatusOK, mapper.ToIdentityItem(identity))
}

// SignOut answers 204 on success. When the backend call fails the local
// session is gone anyway and the failure is reported.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.sessionService.SignOut(c.Request.Context()); err != nil {
		respondError(c, err, apierrors.MsgFailSignOut, "failed to sign out")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToSessionItem(h.sessionService.Current()))
}
