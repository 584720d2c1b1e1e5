package domain

import (
	"sort"
	"time"
)

type TaskStats struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
}

func ComputeStats(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case TaskStatusDone:
			stats.Completed++
		case TaskStatusInProgress:
			stats.InProgress++
		case TaskStatusNotStarted:
			stats.Pending++
		}
	}
	return stats
}

// TasksOn returns the tasks whose deadline falls on day's calendar day.
func TasksOn(tasks []Task, day time.Time) []Task {
	matched := make([]Task, 0)
	for _, task := range tasks {
		if task.Deadline != nil && SameDay(*task.Deadline, day) {
			matched = append(matched, task)
		}
	}
	return matched
}

// DeadlineDays lists the days of the given month, in loc, that carry at least
// one deadline, in ascending order.
func DeadlineDays(tasks []Task, year int, month time.Month, loc *time.Location) []int {
	seen := make(map[int]struct{})
	for _, task := range tasks {
		if task.Deadline == nil {
			continue
		}
		deadline := task.Deadline.In(loc)
		if deadline.Year() == year && deadline.Month() == month {
			seen[deadline.Day()] = struct{}{}
		}
	}

	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
