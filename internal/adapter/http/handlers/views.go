package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

// ViewHandler serves the calendar and profile views over the task list.
type ViewHandler struct {
	taskService ports.TaskService
	location    *time.Location
	now         func() time.Time
}

func NewViewHandler(taskService ports.TaskService, location *time.Location) *ViewHandler {
	if location == nil {
		location = time.Local
	}
	return &ViewHandler{taskService: taskService, location: location, now: time.Now}
}

// Calendar lists the tasks due on ?date= (default today) and the days of
// that month carrying a deadline.
func (h *ViewHandler) Calendar(c *gin.Context) {
	now := h.now().In(h.location)
	day := now
	if value := c.Query("date"); value != "" {
		parsed, err := validation.ParseDay(value, h.location)
		if err != nil {
			badRequest(c, apierrors.MsgInvalidDate)
			return
		}
		day = parsed
	}

	c.JSON(http.StatusOK, dto.CalendarItem{
		Date:         day.Format("2006-01-02"),
		Tasks:        mapper.ToTaskItems(h.taskService.TasksOn(day), now),
		DeadlineDays: h.taskService.DeadlineDays(day.Year(), day.Month()),
	})
}

func (h *ViewHandler) Profile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, middleware.GetLang(c)),
		)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileItem{
		Identity: mapper.ToIdentityItem(identity),
		Stats:    mapper.ToStatsItem(h.taskService.Stats()),
	})
}
