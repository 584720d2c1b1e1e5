package dto

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Deadline    *string `json:"deadline"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	Overdue     bool    `json:"overdue"`
	DueSoon     bool    `json:"due_soon"`
}

// Deadlines accept a calendar date (2006-01-02) or an RFC 3339 timestamp.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Category    string  `json:"category" binding:"required,oneof=academic organization thesis work"`
	Priority    string  `json:"priority" binding:"required,oneof=high medium low"`
	Status      *string `json:"status" binding:"omitempty,oneof=not_started in_progress done"`
	Deadline    *string `json:"deadline"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Category    *string `json:"category" binding:"omitempty,oneof=academic organization thesis work"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=high medium low"`
	Status      *string `json:"status" binding:"omitempty,oneof=not_started in_progress done"`
	Deadline    *string `json:"deadline"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
}

// TaskQuery is the list view state: search box, navigation category and the
// filter dialog. Empty or "all" selects everything.
type TaskQuery struct {
	Search   string `form:"q"`
	View     string `form:"view"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
}
