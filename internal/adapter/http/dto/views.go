package dto

type CalendarItem struct {
	Date         string     `json:"date"`
	Tasks        []TaskItem `json:"tasks"`
	DeadlineDays []int      `json:"deadline_days"`
}

type StatsItem struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
}

type ProfileItem struct {
	Identity IdentityItem `json:"identity"`
	Stats    StatsItem    `json:"stats"`
}

type NotificationItem struct {
	ID        string  `json:"id"`
	Tag       string  `json:"tag"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	TaskID    *string `json:"task_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type NotificationList struct {
	Supported     bool               `json:"supported"`
	Permission    string             `json:"permission"`
	Notifications []NotificationItem `json:"notifications"`
}

type PermissionRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}

type PermissionItem struct {
	Permission string `json:"permission"`
}
