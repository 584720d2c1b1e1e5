package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

// ExportHandler downloads the currently filtered task list.
type ExportHandler struct {
	taskService ports.TaskService
	exporter    ports.TaskExporter
	now         func() time.Time
}

func NewExportHandler(taskService ports.TaskService, exporter ports.TaskExporter) *ExportHandler {
	return &ExportHandler{taskService: taskService, exporter: exporter, now: time.Now}
}

func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.export(c, ports.ExportPDF)
}

func (h *ExportHandler) ExportSpreadsheet(c *gin.Context) {
	h.export(c, ports.ExportSpreadsheet)
}

func (h *ExportHandler) export(c *gin.Context, format ports.ExportFormat) {
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

	now := h.now()
	tasks := h.taskService.View(opts)

	// Rendered into memory so a failure can still be answered with JSON.
	var buf bytes.Buffer
	if err := h.exporter.Export(&buf, format, tasks, now); err != nil {
		respondError(c, err, apierrors.MsgFailExport, "failed to export tasks", zap.String("format", string(format)))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.exporter.Filename(format, now)))
	c.Data(http.StatusOK, h.exporter.ContentType(format), buf.Bytes())
}
