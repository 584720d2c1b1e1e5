package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/metrics"
)

const sessionRefreshTimeout = 15 * time.Second

// TaskService keeps the signed-in user's tasks in memory, newest first, and
// mirrors every successful mutation of the data service into that list.
type TaskService struct {
	taskRepository ports.TaskRepository
	identity       ports.IdentitySource
	location       *time.Location
	logger         *zap.Logger

	mu    sync.RWMutex
	tasks []domain.Task

	unsubscribe func()
}

var _ ports.TaskService = (*TaskService)(nil)

// NewTaskService follows identity: the list is refetched when a user signs in
// and emptied when they sign out.
func NewTaskService(taskRepository ports.TaskRepository, identity ports.IdentitySource, location *time.Location, logger *zap.Logger) *TaskService {
	if location == nil {
		location = time.Local
	}
	s := &TaskService{
		taskRepository: taskRepository,
		identity:       identity,
		location:       location,
		logger:         logger,
		tasks:          make([]domain.Task, 0),
	}
	s.unsubscribe = identity.Subscribe(s.onSessionChange)
	return s
}

func (s *TaskService) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *TaskService) View(opts domain.ViewOptions) []domain.Task {
	return domain.ApplyView(s.List(), opts)
}

func (s *TaskService) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	identity, err := s.currentIdentity("create task")
	if err != nil {
		return domain.Task{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, domain.DataError("create task", err)
	}

	task, err := s.taskRepository.CreateTask(ctx, identity.ID, input)
	metrics.IncrementTaskOperation("create", err)
	if err != nil {
		return domain.Task{}, domain.DataError("create task", err)
	}

	s.mu.Lock()
	s.tasks = append([]domain.Task{task}, s.tasks...)
	s.mu.Unlock()
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if _, err := s.currentIdentity("update task"); err != nil {
		return domain.Task{}, err
	}
	if err := patch.Validate(); err != nil {
		return domain.Task{}, domain.DataError("update task", err)
	}

	task, err := s.taskRepository.UpdateTask(ctx, id, patch)
	metrics.IncrementTaskOperation("update", err)
	if err != nil {
		return domain.Task{}, domain.DataError("update task", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i] = task
	}
	s.mu.Unlock()
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.currentIdentity("delete task"); err != nil {
		return err
	}

	err := s.taskRepository.DeleteTask(ctx, id)
	metrics.IncrementTaskOperation("delete", err)
	if err != nil {
		return domain.DataError("delete task", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
	s.mu.Unlock()
	return nil
}

// Refresh replaces the list with the data service's copy. Without an
// identity the list is emptied. On failure the previous list is kept.
func (s *TaskService) Refresh(ctx context.Context) error {
	identity := s.identity.Current().Identity
	if identity == nil {
		s.clear()
		return nil
	}

	tasks, err := s.taskRepository.ListTasks(ctx, identity.ID)
	metrics.IncrementTaskOperation("list", err)
	if err != nil {
		return domain.DataError("list tasks", err)
	}
	domain.SortTasks(tasks, domain.SortNewest, language.Und)

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

func (s *TaskService) TasksOn(day time.Time) []domain.Task {
	return domain.TasksOn(s.List(), day.In(s.location))
}

func (s *TaskService) DeadlineDays(year int, month time.Month) []int {
	return domain.DeadlineDays(s.List(), year, month, s.location)
}

func (s *TaskService) Stats() domain.TaskStats {
	return domain.ComputeStats(s.List())
}

// Close stops following the session.
func (s *TaskService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *TaskService) onSessionChange(state domain.SessionState) {
	if state.Identity == nil {
		s.clear()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionRefreshTimeout)
	defer cancel()
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("failed to load tasks after sign in", zap.String("user_id", state.Identity.ID), zap.Error(err))
	}
}

func (s *TaskService) currentIdentity(op string) (domain.Identity, error) {
	identity := s.identity.Current().Identity
	if identity == nil {
		return domain.Identity{}, domain.DataError(op, domain.ErrNoIdentity)
	}
	return *identity, nil
}

func (s *TaskService) clear() {
	s.mu.Lock()
	s.tasks = make([]domain.Task, 0)
	s.mu.Unlock()
}

// indexOf must be called with mu held.
func (s *TaskService) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(task domain.Task) bool { return task.ID == id })
}
