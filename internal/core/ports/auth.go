package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type AuthListener func(event domain.AuthEvent, session *domain.Session)

// IdentityProvider is the external identity/session service.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (domain.Identity, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*domain.Session, error)
	ConfirmEmail(ctx context.Context, email string) error
	OnAuthStateChange(listener AuthListener) (unsubscribe func())
}

// SessionStorage is the local key/value store holding persisted auth state.
type SessionStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key starting with prefix.
	Clear(ctx context.Context, prefix string) error
}

// IdentitySource publishes the current identity.
type IdentitySource interface {
	Current() domain.SessionState
	Subscribe(fn func(domain.SessionState)) (unsubscribe func())
}

type SessionService interface {
	IdentitySource
	SignUp(ctx context.Context, email, password string) (domain.Identity, error)
	SignIn(ctx context.Context, email, password string) (domain.Identity, error)
	SignOut(ctx context.Context) error
}
