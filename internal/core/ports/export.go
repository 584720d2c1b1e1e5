package ports

import (
	"io"
	"time"

	"taskboard/internal/core/domain"
)

type ExportFormat string

const (
	ExportPDF         ExportFormat = "pdf"
	ExportSpreadsheet ExportFormat = "xlsx"
)

type TaskExporter interface {
	Export(w io.Writer, format ExportFormat, tasks []domain.Task, now time.Time) error
	Filename(format ExportFormat, now time.Time) string
	ContentType(format ExportFormat) string
}
