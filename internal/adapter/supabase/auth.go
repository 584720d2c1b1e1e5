package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// Sessions are refreshed slightly before they expire.
const expiryMargin = 30 * time.Second

var _ ports.IdentityProvider = (*Client)(nil)

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionPayload struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in,omitempty"`
	ExpiresAt    int64       `json:"expires_at,omitempty"`
	RefreshToken string      `json:"refresh_token"`
	User         userPayload `json:"user"`
}

// signUpPayload covers both answers of the signup endpoint: a bare user when
// confirmation is pending, or a full session when the account is confirmed.
type signUpPayload struct {
	sessionPayload
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) (domain.Identity, error) {
	var payload signUpPayload
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		token:  c.anonKey,
		body: map[string]any{
			"email":    email,
			"password": password,
			"data":     map[string]any{"email_confirm": true},
		},
	}, &payload)
	if err != nil {
		return domain.Identity{}, mapAuthError(err)
	}

	identity := domain.Identity{ID: payload.User.ID, Email: payload.User.Email}
	if identity.ID == "" {
		identity = domain.Identity{ID: payload.ID, Email: payload.Email}
	}

	if payload.AccessToken != "" {
		session := c.toSession(payload.sessionPayload)
		if err := c.saveSession(ctx, session); err != nil {
			return identity, err
		}
		c.emit(domain.AuthEventSignedIn, &session)
	}

	return identity, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	var payload sessionPayload
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		token:  c.anonKey,
		body:   map[string]string{"email": email, "password": password},
	}, &payload)
	if err != nil {
		return domain.Session{}, mapAuthError(err)
	}

	session := c.toSession(payload)
	if err := c.saveSession(ctx, session); err != nil {
		return domain.Session{}, err
	}
	c.emit(domain.AuthEventSignedIn, &session)
	return session, nil
}

// SignOut revokes every session of the user. The local copy is dropped
// whatever the backend answers.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	var remoteErr error
	if session != nil {
		remoteErr = c.do(ctx, request{
			method: http.MethodPost,
			path:   "/auth/v1/logout",
			query:  url.Values{"scope": {"global"}},
			token:  session.AccessToken,
		}, nil)
		remoteErr = ignoreStaleSession(remoteErr)
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if err := c.storage.Delete(ctx, c.storageKey); err != nil {
		c.logger.Warn("failed to delete stored session", zap.Error(err))
	}
	c.emit(domain.AuthEventSignedOut, nil)

	return remoteErr
}

// GetSession returns the live session, restoring it from local storage and
// refreshing it when the access token has expired.
func (c *Client) GetSession(ctx context.Context) (*domain.Session, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		stored, err := c.loadSession(ctx)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, nil
		}
		session = stored
	}

	if !session.Expired(c.now().Add(expiryMargin)) {
		c.mu.Lock()
		c.session = session
		c.mu.Unlock()
		return copySession(session), nil
	}

	refreshed, err := c.refresh(ctx, session.RefreshToken)
	if err != nil {
		c.logger.Warn("failed to refresh session, discarding it", zap.Error(err))
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
		if delErr := c.storage.Delete(ctx, c.storageKey); delErr != nil {
			c.logger.Warn("failed to delete stored session", zap.Error(delErr))
		}
		return nil, nil
	}
	return refreshed, nil
}

// ConfirmEmail calls the confirm_user_email database function.
func (c *Client) ConfirmEmail(ctx context.Context, email string) error {
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/rpc/confirm_user_email",
		token:  c.anonKey,
		body:   map[string]string{"user_email": email},
	}, nil)
	if err != nil {
		return domain.AuthError("confirm email", err)
	}
	return nil
}

func (c *Client) OnAuthStateChange(listener ports.AuthListener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, errors.New("session has no refresh token")
	}

	var payload sessionPayload
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"refresh_token"}},
		token:  c.anonKey,
		body:   map[string]string{"refresh_token": refreshToken},
	}, &payload)
	if err != nil {
		return nil, err
	}

	session := c.toSession(payload)
	if err := c.saveSession(ctx, session); err != nil {
		return nil, err
	}
	c.emit(domain.AuthEventTokenRefreshed, &session)
	return copySession(&session), nil
}

func (c *Client) emit(event domain.AuthEvent, session *domain.Session) {
	c.mu.RLock()
	listeners := make([]ports.AuthListener, 0, len(c.listeners))
	for _, listener := range c.listeners {
		listeners = append(listeners, listener)
	}
	c.mu.RUnlock()

	for _, listener := range listeners {
		listener(event, copySession(session))
	}
}

func (c *Client) saveSession(ctx context.Context, session domain.Session) error {
	payload := sessionPayload{
		AccessToken:  session.AccessToken,
		TokenType:    session.TokenType,
		RefreshToken: session.RefreshToken,
		User:         userPayload{ID: session.Identity.ID, Email: session.Identity.Email},
	}
	if !session.ExpiresAt.IsZero() {
		payload.ExpiresAt = session.ExpiresAt.Unix()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := c.storage.Set(ctx, c.storageKey, string(data)); err != nil {
		return domain.AuthError("persist session", err)
	}

	c.mu.Lock()
	c.session = &session
	c.mu.Unlock()
	return nil
}

func (c *Client) loadSession(ctx context.Context) (*domain.Session, error) {
	raw, ok, err := c.storage.Get(ctx, c.storageKey)
	if err != nil {
		return nil, domain.AuthError("load session", err)
	}
	if !ok {
		return nil, nil
	}

	var payload sessionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.AccessToken == "" {
		c.logger.Warn("discarding unreadable stored session", zap.Error(err))
		return nil, nil
	}
	session := c.toSession(payload)
	return &session, nil
}

func (c *Client) toSession(payload sessionPayload) domain.Session {
	session := domain.Session{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		TokenType:    payload.TokenType,
		Identity:     domain.Identity{ID: payload.User.ID, Email: payload.User.Email},
	}

	switch {
	case payload.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(payload.ExpiresAt, 0)
	case payload.ExpiresIn > 0:
		session.ExpiresAt = c.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	default:
		if expiry, err := tokenExpiry(payload.AccessToken); err == nil {
			session.ExpiresAt = expiry
		}
	}

	if session.Identity.ID == "" {
		if subject, err := tokenSubject(payload.AccessToken); err == nil {
			session.Identity.ID = subject
		}
	}

	return session
}

// The access token is only inspected, never trusted: the backend verifies it.
func parseClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func tokenExpiry(token string) (time.Time, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, jwt.ErrTokenRequiredClaimMissing
	}
	return claims.ExpiresAt.Time, nil
}

func tokenSubject(token string) (string, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return "", err
	}
	return claims.GetSubject()
}

func mapAuthError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	text := strings.ToLower(apiErr.Text())
	switch {
	case apiErr.ErrorCode == "email_not_confirmed" || strings.Contains(text, "email not confirmed"):
		return fmt.Errorf("%w: %s", domain.ErrEmailNotConfirmed, apiErr.Text())
	case apiErr.ErrorCode == "invalid_credentials" || strings.Contains(text, "invalid login credentials"):
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Text())
	}
	return err
}

// A logout against an already revoked token means the session is gone anyway.
func ignoreStaleSession(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return nil
		}
	}
	return err
}

func copySession(session *domain.Session) *domain.Session {
	if session == nil {
		return nil
	}
	value := *session
	return &value
}
