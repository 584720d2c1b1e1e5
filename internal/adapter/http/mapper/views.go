package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToSessionItem(state domain.SessionState) dto.SessionItem {
	item := dto.SessionItem{Loading: state.Loading}
	if state.Identity != nil {
		identity := ToIdentityItem(*state.Identity)
		item.Identity = &identity
	}
	return item
}

func ToIdentityItem(identity domain.Identity) dto.IdentityItem {
	return dto.IdentityItem{ID: identity.ID, Email: identity.Email}
}

func ToStatsItem(stats domain.TaskStats) dto.StatsItem {
	return dto.StatsItem{
		Total:      stats.Total,
		Completed:  stats.Completed,
		InProgress: stats.InProgress,
		Pending:    stats.Pending,
	}
}

func ToNotificationItems(notifications []domain.Notification) []dto.NotificationItem {
	items := make([]dto.NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		item := dto.NotificationItem{
			ID:        n.ID,
			Tag:       n.Tag,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.TaskID != "" {
			taskID := n.TaskID
			item.TaskID = &taskID
		}
		items = append(items, item)
	}
	return items
}
