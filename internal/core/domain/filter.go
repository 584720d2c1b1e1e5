package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll disables a selector.
const FilterAll = "all"

type SortBy string

const (
	SortNewest   SortBy = "newest"
	SortDeadline SortBy = "deadline"
	SortPriority SortBy = "priority"
	SortTitle    SortBy = "title"
)

func (s SortBy) Valid() bool {
	switch s {
	case "", SortNewest, SortDeadline, SortPriority, SortTitle:
		return true
	}
	return false
}

// Filters are the selections made in the filter dialog.
type Filters struct {
	Status   string
	Priority string
	Category string
	SortBy   SortBy
}

// ViewOptions describe how the task list is narrowed and ordered. Category is
// the primary selector from the navigation; Filters.Category comes from the
// filter dialog and is honored independently.
type ViewOptions struct {
	Search   string
	Category string
	Filters  Filters
	Locale   language.Tag
}

// ApplyView derives the displayed list: search, primary category, status,
// priority, secondary category, then sort. The input slice is not modified.
// Ties under newest, deadline and priority keep their input order.
func ApplyView(tasks []Task, opts ViewOptions) []Task {
	filtered := make([]Task, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, task := range tasks {
		if search != "" && !matchesSearch(task, search) {
			continue
		}
		if !selects(opts.Category, string(task.Category)) {
			continue
		}
		if !selects(opts.Filters.Status, string(task.Status)) {
			continue
		}
		if !selects(opts.Filters.Priority, string(task.Priority)) {
			continue
		}
		if !selects(opts.Filters.Category, string(task.Category)) {
			continue
		}
		filtered = append(filtered, task)
	}

	SortTasks(filtered, opts.Filters.SortBy, opts.Locale)
	return filtered
}

// SortTasks orders tasks in place.
func SortTasks(tasks []Task, by SortBy, locale language.Tag) {
	switch by {
	case SortDeadline:
		slices.SortStableFunc(tasks, compareDeadline)
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case SortTitle:
		collator := collate.New(locale)
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return collator.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// Tasks without a deadline sort after every task that has one.
func compareDeadline(a, b Task) int {
	switch {
	case a.Deadline == nil && b.Deadline == nil:
		return 0
	case a.Deadline == nil:
		return 1
	case b.Deadline == nil:
		return -1
	}
	return a.Deadline.Compare(*b.Deadline)
}

func matchesSearch(task Task, search string) bool {
	if strings.Contains(strings.ToLower(task.Title), search) {
		return true
	}
	return task.Description != nil && strings.Contains(strings.ToLower(*task.Description), search)
}

func selects(selector, value string) bool {
	if selector == "" || strings.EqualFold(selector, FilterAll) {
		return true
	}
	return selector == value
}
