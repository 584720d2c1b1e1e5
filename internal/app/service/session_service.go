package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/metrics"
)

// SessionService owns the current identity. It starts in the loading state
// until Start has asked the provider for a persisted session.
type SessionService struct {
	provider  ports.IdentityProvider
	storage   ports.SessionStorage
	keyPrefix string
	logger    *zap.Logger

	mu          sync.RWMutex
	state       domain.SessionState
	subscribers map[int]func(domain.SessionState)
	nextID      int

	unsubscribeProvider func()
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(provider ports.IdentityProvider, storage ports.SessionStorage, keyPrefix string, logger *zap.Logger) *SessionService {
	s := &SessionService{
		provider:    provider,
		storage:     storage,
		keyPrefix:   keyPrefix,
		logger:      logger,
		state:       domain.SessionState{Loading: true},
		subscribers: make(map[int]func(domain.SessionState)),
	}
	s.unsubscribeProvider = provider.OnAuthStateChange(s.onAuthEvent)
	return s
}

// Start restores the persisted session, if any, and leaves the loading state.
func (s *SessionService) Start(ctx context.Context) error {
	session, err := s.provider.GetSession(ctx)
	if err != nil {
		s.logger.Warn("failed to restore session", zap.Error(err))
		s.setState(nil, false)
		return domain.AuthError("restore session", err)
	}

	if session == nil {
		s.setState(nil, false)
		return nil
	}
	identity := session.Identity
	s.setState(&identity, false)
	s.logger.Info("session restored", zap.String("user_id", identity.ID))
	return nil
}

func (s *SessionService) SignUp(ctx context.Context, email, password string) (domain.Identity, error) {
	identity, err := s.provider.SignUp(ctx, email, password)
	metrics.IncrementAuthOperation("sign_up", err)
	if err != nil {
		return domain.Identity{}, domain.AuthError("sign up", err)
	}
	return identity, nil
}

// SignIn authenticates with email and password. An unconfirmed account is
// confirmed through the backend and the sign-in retried once.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	session, err := s.provider.SignIn(ctx, email, password)
	if errors.Is(err, domain.ErrEmailNotConfirmed) {
		s.logger.Info("email not confirmed, confirming and retrying sign in")
		if confirmErr := s.provider.ConfirmEmail(ctx, email); confirmErr != nil {
			s.logger.Warn("failed to confirm email", zap.Error(confirmErr))
		}
		session, err = s.provider.SignIn(ctx, email, password)
	}
	metrics.IncrementAuthOperation("sign_in", err)
	if err != nil {
		return domain.Identity{}, domain.AuthError("sign in", err)
	}

	identity := session.Identity
	s.setState(&identity, false)
	return identity, nil
}

// SignOut ends the session remotely and then always clears local state, so
// the caller is signed out even when the backend call fails.
func (s *SessionService) SignOut(ctx context.Context) error {
	remoteErr := s.provider.SignOut(ctx)
	metrics.IncrementAuthOperation("sign_out", remoteErr)

	if err := s.storage.Clear(ctx, s.keyPrefix); err != nil {
		s.logger.Warn("failed to clear local session storage", zap.String("prefix", s.keyPrefix), zap.Error(err))
	}
	s.setState(nil, false)

	if remoteErr != nil {
		s.logger.Warn("remote sign out failed, local session cleared", zap.Error(remoteErr))
		return domain.AuthError("sign out", remoteErr)
	}
	return nil
}

func (s *SessionService) Current() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

// Subscribe registers fn for every identity or loading change. fn is not
// called with the current state.
func (s *SessionService) Subscribe(fn func(domain.SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close detaches the service from the provider.
func (s *SessionService) Close() {
	if s.unsubscribeProvider != nil {
		s.unsubscribeProvider()
	}
}

func (s *SessionService) onAuthEvent(event domain.AuthEvent, session *domain.Session) {
	switch event {
	case domain.AuthEventSignedOut:
		s.setState(nil, false)
	case domain.AuthEventInitialSession, domain.AuthEventSignedIn, domain.AuthEventTokenRefreshed:
		if session == nil {
			s.setState(nil, false)
			return
		}
		identity := session.Identity
		s.setState(&identity, false)
	}
}

func (s *SessionService) setState(identity *domain.Identity, loading bool) {
	next := domain.SessionState{Identity: identity, Loading: loading}

	s.mu.Lock()
	if sameState(s.state, next) {
		s.mu.Unlock()
		return
	}
	s.state = copyState(next)
	subscribers := make([]func(domain.SessionState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(copyState(next))
	}
}

func sameState(a, b domain.SessionState) bool {
	if a.Loading != b.Loading {
		return false
	}
	if a.Identity == nil || b.Identity == nil {
		return a.Identity == nil && b.Identity == nil
	}
	return *a.Identity == *b.Identity
}

func copyState(state domain.SessionState) domain.SessionState {
	if state.Identity != nil {
		identity := *state.Identity
		state.Identity = &identity
	}
	return state
}
