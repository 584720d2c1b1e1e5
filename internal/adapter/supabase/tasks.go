package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const tasksPath = "/rest/v1/tasks"

var _ ports.TaskRepository = (*Client)(nil)

var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Column names and enum values follow the existing tasks table, which
// predates the English domain names.
type taskRow struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"judul"`
	Category    string  `json:"kategori"`
	Priority    string  `json:"prioritas"`
	Status      string  `json:"status"`
	Deadline    *string `json:"deadline"`
	Description *string `json:"deskripsi"`
	CreatedAt   string  `json:"created_at"`
}

// insertRow never carries id or created_at; the service assigns them.
type insertRow struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"judul"`
	Category    string  `json:"kategori"`
	Priority    string  `json:"prioritas"`
	Status      string  `json:"status"`
	Deadline    *string `json:"deadline"`
	Description *string `json:"deskripsi"`
}

var wireCategories = map[domain.Category]string{
	domain.CategoryAcademic:     "Kuliah",
	domain.CategoryOrganization: "Himpunan",
	domain.CategoryThesis:       "Skripsi",
	domain.CategoryWork:         "Kerja",
}

var wirePriorities = map[domain.Priority]string{
	domain.PriorityHigh:   "High",
	domain.PriorityMedium: "Medium",
	domain.PriorityLow:    "Low",
}

var wireStatuses = map[domain.TaskStatus]string{
	domain.TaskStatusNotStarted: "Belum dikerjakan",
	domain.TaskStatusInProgress: "Sedang dikerjakan",
	domain.TaskStatusDone:       "Selesai",
}

func fromWire[T comparable](values map[T]string, wire string) (T, bool) {
	for value, name := range values {
		if name == wire {
			return value, true
		}
	}
	var zero T
	return zero, false
}

func returnRepresentation() http.Header {
	return http.Header{"Prefer": {"return=representation"}}
}

func (c *Client) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var rows []taskRow
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   tasksPath,
		query: url.Values{
			"select":  {"*"},
			"user_id": {"eq." + ownerID},
			"order":   {"created_at.desc"},
		},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return mapTaskRows(rows)
}

func (c *Client) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	row := insertRow{
		UserID:      ownerID,
		Title:       input.Title,
		Category:    wireCategories[input.Category],
		Priority:    wirePriorities[input.Priority],
		Status:      wireStatuses[input.Status],
		Deadline:    formatDeadline(input.Deadline),
		Description: input.Description,
	}

	var rows []taskRow
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   tasksPath,
		query:  url.Values{"select": {"*"}},
		header: returnRepresentation(),
		body:   []insertRow{row},
	}, &rows)
	if err != nil {
		return domain.Task{}, err
	}
	return singleTask(rows)
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	var rows []taskRow
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   tasksPath,
		query:  url.Values{"id": {"eq." + id}, "select": {"*"}},
		header: returnRepresentation(),
		body:   patchBody(patch),
	}, &rows)
	if err != nil {
		return domain.Task{}, err
	}
	return singleTask(rows)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	var rows []taskRow
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   tasksPath,
		query:  url.Values{"id": {"eq." + id}, "select": {"id"}},
		header: returnRepresentation(),
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// patchBody sends only the supplied fields; cleared optional fields are sent
// as explicit nulls.
func patchBody(patch domain.TaskPatch) map[string]any {
	body := make(map[string]any)
	if patch.Title != nil {
		body["judul"] = *patch.Title
	}
	if patch.Category != nil {
		body["kategori"] = wireCategories[*patch.Category]
	}
	if patch.Priority != nil {
		body["prioritas"] = wirePriorities[*patch.Priority]
	}
	if patch.Status != nil {
		body["status"] = wireStatuses[*patch.Status]
	}
	if patch.DeadlineSet || patch.Deadline != nil {
		body["deadline"] = formatDeadline(patch.Deadline)
	}
	if patch.DescriptionSet || patch.Description != nil {
		body["deskripsi"] = patch.Description
	}
	return body
}

func singleTask(rows []taskRow) (domain.Task, error) {
	if len(rows) == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return mapTaskRow(rows[0])
}

func mapTaskRows(rows []taskRow) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func mapTaskRow(row taskRow) (domain.Task, error) {
	createdAt, err := parseTimestamp(row.CreatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: created_at: %w", row.ID, err)
	}

	category, ok := fromWire(wireCategories, row.Category)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %s: unknown kategori %q", row.ID, row.Category)
	}
	priority, ok := fromWire(wirePriorities, row.Priority)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %s: unknown prioritas %q", row.ID, row.Priority)
	}
	status, ok := fromWire(wireStatuses, row.Status)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %s: unknown status %q", row.ID, row.Status)
	}

	task := domain.Task{
		ID:        row.ID,
		OwnerID:   row.UserID,
		Title:     row.Title,
		Category:  category,
		Priority:  priority,
		Status:    status,
		CreatedAt: createdAt,
	}

	// Empty strings from older rows mean "no deadline".
	if row.Deadline != nil && *row.Deadline != "" {
		deadline, err := parseTimestamp(*row.Deadline)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %s: deadline: %w", row.ID, err)
		}
		task.Deadline = &deadline
	}

	if row.Description != nil {
		value := *row.Description
		task.Description = &value
	}

	return task, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp " + value)
}

func formatDeadline(deadline *time.Time) *string {
	if deadline == nil {
		return nil
	}
	value := deadline.Format(time.RFC3339)
	return &value
}
