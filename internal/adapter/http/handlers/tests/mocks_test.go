package tests

import (
	"context"
	"io"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) List() []domain.Task {
	return tasksArg(m.Called(), 0)
}

func (m *taskServiceMock) View(opts domain.ViewOptions) []domain.Task {
	return tasksArg(m.Called(opts), 0)
}

func (m *taskServiceMock) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *taskServiceMock) TasksOn(day time.Time) []domain.Task {
	return tasksArg(m.Called(day), 0)
}

func (m *taskServiceMock) DeadlineDays(year int, month time.Month) []int {
	args := m.Called(year, month)

	var days []int
	if value := args.Get(0); value != nil {
		days = value.([]int)
	}
	return days
}

func (m *taskServiceMock) Stats() domain.TaskStats {
	return m.Called().Get(0).(domain.TaskStats)
}

func tasksArg(args mock.Arguments, i int) []domain.Task {
	var tasks []domain.Task
	if value := args.Get(i); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks
}

type sessionServiceMock struct {
	mock.Mock
}

func (m *sessionServiceMock) Current() domain.SessionState {
	return m.Called().Get(0).(domain.SessionState)
}

func (m *sessionServiceMock) Subscribe(fn func(domain.SessionState)) func() {
	return func() {}
}

func (m *sessionServiceMock) SignUp(ctx context.Context, email, password string) (domain.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *sessionServiceMock) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *sessionServiceMock) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type exporterMock struct {
	mock.Mock
}

func (m *exporterMock) Export(w io.Writer, format ports.ExportFormat, tasks []domain.Task, now time.Time) error {
	args := m.Called(w, format, tasks, now)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, args.String(1))
	return err
}

func (m *exporterMock) Filename(format ports.ExportFormat, now time.Time) string {
	return "task-list-test." + string(format)
}

func (m *exporterMock) ContentType(format ports.ExportFormat) string {
	return "application/" + string(format)
}

// staticIdentity is an IdentitySource fixed at construction.
type staticIdentity struct {
	identity *domain.Identity
}

func (s staticIdentity) Current() domain.SessionState {
	return domain.SessionState{Identity: s.identity}
}

func (s staticIdentity) Subscribe(func(domain.SessionState)) func() {
	return func() {}
}
