package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		key  string
	}{
		{"not found", domain.DataError("update task", domain.ErrTaskNotFound), http.StatusNotFound, apierrors.MsgTaskNotFound},
		{"no identity", domain.DataError("create task", domain.ErrNoIdentity), http.StatusUnauthorized, apierrors.MsgUnauthenticated},
		{"invalid task", domain.ErrInvalidTask, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
		{"credentials", domain.AuthError("sign in", domain.ErrInvalidCredentials), http.StatusUnauthorized, apierrors.MsgInvalidCredentials},
		{"unconfirmed", domain.ErrEmailNotConfirmed, http.StatusForbidden, apierrors.MsgEmailNotConfirmed},
		{"notifications", domain.ErrNotificationsUnsupported, http.StatusNotImplemented, apierrors.MsgNotificationsUnsupported},
		{"backend", domain.DataError("create task", errors.New("timeout")), http.StatusBadGateway, apierrors.MsgFailCreateTask},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apierrors.MsgFailCreateTask},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, key := statusFor(tc.err, apierrors.MsgFailCreateTask)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.key, key)
		})
	}
}
