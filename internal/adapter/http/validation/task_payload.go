package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

const dateLayout = "2006-01-02"

var ErrInvalidTaskPayload = errors.New("invalid task payload")

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	status := domain.TaskStatusNotStarted
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
	}

	deadline, err := parseOptionalDeadline(req.Deadline, loc)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Category:    domain.Category(req.Category),
		Priority:    domain.Priority(req.Priority),
		Status:      status,
		Deadline:    deadline,
		Description: req.Description,
	}
	if err := input.Validate(); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	return input, nil
}

// BuildTaskPatch keeps only the fields present in the body. A null or empty
// deadline or description clears it; other fields may not be null.
func BuildTaskPatch(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.TaskPatch, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}

	for _, field := range []string{"title", "category", "priority", "status"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
	}

	var patch domain.TaskPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Title = &title
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		patch.Category = &category
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}

	if hasJSONField(raw, "deadline") {
		deadline, err := parseOptionalDeadline(req.Deadline, loc)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Deadline = deadline
		patch.DeadlineSet = true
	}

	if hasJSONField(raw, "description") {
		if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
			description := *req.Description
			patch.Description = &description
		}
		patch.DescriptionSet = true
	}

	if err := patch.Validate(); err != nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	return patch, nil
}

// ParseDeadline reads a calendar date as midnight in loc, or a full RFC 3339
// timestamp as is.
func ParseDeadline(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidTaskPayload
	}
	return parsed, nil
}

// ParseDay reads a YYYY-MM-DD calendar day in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(value), loc)
}

func parseOptionalDeadline(value *string, loc *time.Location) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	deadline, err := ParseDeadline(*value, loc)
	if err != nil {
		return nil, err
	}
	return &deadline, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "category") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "deadline") ||
		hasJSONField(raw, "description")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
