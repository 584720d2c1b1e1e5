package domain

import (
	"fmt"
	"time"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notification is a local desktop-style alert. Notifications sharing a Tag
// replace each other instead of stacking.
type Notification struct {
	ID        string
	Tag       string
	Title     string
	Body      string
	TaskID    string
	CreatedAt time.Time
}

func DeadlineTag(taskID string) string {
	return "task-deadline-" + taskID
}

func DailyReminderTag(hour int) string {
	return fmt.Sprintf("daily-reminder-%d", hour)
}

// DueTomorrow selects unfinished tasks whose deadline falls on the calendar
// day after now, in now's location.
func DueTomorrow(tasks []Task, now time.Time) []Task {
	tomorrow := StartOfDay(now).AddDate(0, 0, 1)

	selected := make([]Task, 0)
	for _, task := range tasks {
		if task.Deadline == nil || task.Status == TaskStatusDone {
			continue
		}
		if SameDay(*task.Deadline, tomorrow) {
			selected = append(selected, task)
		}
	}
	return selected
}

// Pending returns the tasks that are not done yet.
func Pending(tasks []Task) []Task {
	pending := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status != TaskStatusDone {
			pending = append(pending, task)
		}
	}
	return pending
}
