package validation

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var ErrInvalidTaskQuery = errors.New("invalid task query")

func BuildViewOptions(query dto.TaskQuery, locale language.Tag) (domain.ViewOptions, error) {
	opts := domain.ViewOptions{
		Search: strings.TrimSpace(query.Search),
		Locale: locale,
	}

	view, err := selector(query.View, func(v string) bool { return domain.Category(v).Valid() })
	if err != nil {
		return domain.ViewOptions{}, err
	}
	status, err := selector(query.Status, func(v string) bool { return domain.TaskStatus(v).Valid() })
	if err != nil {
		return domain.ViewOptions{}, err
	}
	priority, err := selector(query.Priority, func(v string) bool { return domain.Priority(v).Valid() })
	if err != nil {
		return domain.ViewOptions{}, err
	}
	category, err := selector(query.Category, func(v string) bool { return domain.Category(v).Valid() })
	if err != nil {
		return domain.ViewOptions{}, err
	}

	sortBy := domain.SortBy(strings.ToLower(strings.TrimSpace(query.Sort)))
	if !sortBy.Valid() {
		return domain.ViewOptions{}, ErrInvalidTaskQuery
	}

	opts.Category = view
	opts.Filters = domain.Filters{
		Status:   status,
		Priority: priority,
		Category: category,
		SortBy:   sortBy,
	}
	return opts, nil
}

func selector(value string, valid func(string) bool) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == domain.FilterAll {
		return domain.FilterAll, nil
	}
	if !valid(value) {
		return "", ErrInvalidTaskQuery
	}
	return value, nil
}
