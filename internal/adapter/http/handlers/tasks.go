package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	location    *time.Location
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService, location *time.Location) *TaskHandler {
	if location == nil {
		location = time.Local
	}
	return &TaskHandler{taskService: taskService, location: location, now: time.Now}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.TaskQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskQuery)
		return
	}
	opts, err := validation.BuildViewOptions(query, middleware.GetLocale(c))
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskQuery)
		return
	}

	tasks := h.taskService.View(opts)
	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks, h.now().In(h.location)))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw, h.location)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task, h.now().In(h.location)))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	patch, err := validation.BuildTaskPatch(req, raw, h.location)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, patch)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now().In(h.location)))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), taskID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.String("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) RefreshTasks(c *gin.Context) {
	if err := h.taskService.Refresh(c.Request.Context()); err != nil {
		respondError(c, err, apierrors.MsgFailRefreshTasks, "failed to refresh tasks")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(h.taskService.List(), h.now().In(h.location)))
}

func parseTaskID(c *gin.Context) (string, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return taskID.String(), true
}
