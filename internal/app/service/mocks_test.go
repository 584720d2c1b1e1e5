package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type identityProviderMock struct {
	mock.Mock

	listener ports.AuthListener
}

func (m *identityProviderMock) SignUp(ctx context.Context, email, password string) (domain.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *identityProviderMock) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *identityProviderMock) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *identityProviderMock) GetSession(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)

	var session *domain.Session
	if value := args.Get(0); value != nil {
		session = value.(*domain.Session)
	}
	return session, args.Error(1)
}

func (m *identityProviderMock) ConfirmEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *identityProviderMock) OnAuthStateChange(listener ports.AuthListener) func() {
	m.listener = listener
	return func() { m.listener = nil }
}

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) DeleteTask(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type storageMock struct {
	mock.Mock
}

func (m *storageMock) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *storageMock) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *storageMock) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *storageMock) Clear(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

// identityStub is a settable IdentitySource.
type identityStub struct {
	mu          sync.Mutex
	state       domain.SessionState
	subscribers []func(domain.SessionState)
}

func (s *identityStub) Current() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *identityStub) Subscribe(fn func(domain.SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
	return func() {}
}

func (s *identityStub) set(identity *domain.Identity) {
	s.mu.Lock()
	s.state = domain.SessionState{Identity: identity}
	subscribers := append([]func(domain.SessionState){}, s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn(domain.SessionState{Identity: identity})
	}
}

type taskListStub []domain.Task

func (s taskListStub) List() []domain.Task {
	return s
}

type surfaceMock struct {
	mock.Mock
}

func (m *surfaceMock) Supported() bool {
	return m.Called().Bool(0)
}

func (m *surfaceMock) Permission() domain.Permission {
	return m.Called().Get(0).(domain.Permission)
}

func (m *surfaceMock) RequestPermission(ctx context.Context, grant bool) (domain.Permission, error) {
	args := m.Called(ctx, grant)
	return args.Get(0).(domain.Permission), args.Error(1)
}

func (m *surfaceMock) Show(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

// manualScheduler records scheduled jobs so tests can fire them directly.
type manualScheduler struct {
	jobs      []func()
	cancelled int
	delay     time.Duration
	interval  time.Duration
}

func (s *manualScheduler) Schedule(initialDelay, interval time.Duration, fn func()) ports.CancelFunc {
	s.delay, s.interval = initialDelay, interval
	s.jobs = append(s.jobs, fn)
	return func() { s.cancelled++ }
}

func (s *manualScheduler) fire() {
	for _, job := range s.jobs {
		job()
	}
}
