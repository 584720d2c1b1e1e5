package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryAcademic     Category = "academic"
	CategoryOrganization Category = "organization"
	CategoryThesis       Category = "thesis"
	CategoryWork         Category = "work"
)

var Categories = []Category{CategoryAcademic, CategoryOrganization, CategoryThesis, CategoryWork}

func (c Category) Valid() bool {
	switch c {
	case CategoryAcademic, CategoryOrganization, CategoryThesis, CategoryWork:
		return true
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryAcademic:
		return "Academic"
	case CategoryOrganization:
		return "Organization"
	case CategoryThesis:
		return "Thesis"
	case CategoryWork:
		return "Work"
	}
	return string(c)
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities from most to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return string(p)
}

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

func (s TaskStatus) Label() string {
	switch s {
	case TaskStatusNotStarted:
		return "Not started"
	case TaskStatusInProgress:
		return "In progress"
	case TaskStatusDone:
		return "Done"
	}
	return string(s)
}

type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Category    Category
	Priority    Priority
	Status      TaskStatus
	Deadline    *time.Time
	Description *string
	CreatedAt   time.Time
}

// IsOverdue reports whether the deadline lies before the start of now's day
// and the task is not done.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.Status == TaskStatusDone {
		return false
	}
	return t.Deadline.Before(StartOfDay(now))
}

// IsDueSoon reports whether the deadline falls within the next 24 hours.
func (t Task) IsDueSoon(now time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	return t.Deadline.After(now) && t.Deadline.Before(now.Add(24*time.Hour))
}

func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// CreateTaskInput holds the client-settable fields of a new task. Identifier,
// owner and creation time are assigned by the data service.
type CreateTaskInput struct {
	Title       string
	Category    Category
	Priority    Priority
	Status      TaskStatus
	Deadline    *time.Time
	Description *string
}

// Validate normalizes the input in place and reports ErrInvalidTask when a
// field is outside its allowed set.
func (in *CreateTaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrInvalidTask
	}
	if in.Status == "" {
		in.Status = TaskStatusNotStarted
	}
	if !in.Category.Valid() || !in.Priority.Valid() || !in.Status.Valid() {
		return ErrInvalidTask
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		in.Description = nil
	}
	return nil
}

// TaskPatch is a partial update. Nil pointers leave the field untouched;
// DeadlineSet and DescriptionSet with a nil value clear the field.
type TaskPatch struct {
	Title          *string
	Category       *Category
	Priority       *Priority
	Status         *TaskStatus
	Deadline       *time.Time
	DeadlineSet    bool
	Description    *string
	DescriptionSet bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Category == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		!p.DeadlineSet && p.Deadline == nil &&
		!p.DescriptionSet && p.Description == nil
}

func (p *TaskPatch) Validate() error {
	if p.IsEmpty() {
		return ErrInvalidTask
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrInvalidTask
		}
		p.Title = &title
	}
	if p.Category != nil && !p.Category.Valid() {
		return ErrInvalidTask
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidTask
	}
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidTask
	}
	if p.Deadline != nil {
		p.DeadlineSet = true
	}
	if p.Description != nil {
		p.DescriptionSet = true
	}
	return nil
}

// Apply returns a copy of task with the patch merged in.
func (p TaskPatch) Apply(task Task) Task {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Category != nil {
		task.Category = *p.Category
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.DeadlineSet || p.Deadline != nil {
		task.Deadline = copyTime(p.Deadline)
	}
	if p.DescriptionSet || p.Description != nil {
		task.Description = copyString(p.Description)
	}
	return task
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay compares calendar days in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	value := *s
	return &value
}
