package ports

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
)

// TaskRepository is the remote data service holding the task collection.
type TaskRepository interface {
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TaskLister exposes the in-memory task list read-only.
type TaskLister interface {
	List() []domain.Task
}

type TaskService interface {
	TaskLister
	View(opts domain.ViewOptions) []domain.Task
	Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id string) error
	Refresh(ctx context.Context) error
	TasksOn(day time.Time) []domain.Task
	DeadlineDays(year int, month time.Month) []int
	Stats() domain.TaskStats
}
