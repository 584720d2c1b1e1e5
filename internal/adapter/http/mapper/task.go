package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

// ToTaskItems maps tasks for the API; now drives the overdue and due-soon flags.
func ToTaskItems(tasks []domain.Task, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task, now))
	}
	return items
}

func ToTaskItem(task domain.Task, now time.Time) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Category:  string(task.Category),
		Priority:  string(task.Priority),
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		Overdue:   task.IsOverdue(now),
		DueSoon:   task.IsDueSoon(now),
	}

	if task.Deadline != nil {
		value := task.Deadline.Format(time.RFC3339)
		item.Deadline = &value
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	return item
}
