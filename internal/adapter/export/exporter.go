package export

import (
	"fmt"
	"io"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/metrics"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
	fileDateLayout = "2006-01-02"
	documentTitle  = "Task List"
)

var contentTypes = map[ports.ExportFormat]string{
	ports.ExportPDF:         "application/pdf",
	ports.ExportSpreadsheet: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Exporter renders the task list it is given into a downloadable document.
// Dates are printed in the exporter's location.
type Exporter struct {
	location *time.Location
}

var _ ports.TaskExporter = (*Exporter)(nil)

func NewExporter(location *time.Location) *Exporter {
	if location == nil {
		location = time.Local
	}
	return &Exporter{location: location}
}

func (e *Exporter) Export(w io.Writer, format ports.ExportFormat, tasks []domain.Task, now time.Time) error {
	var err error
	switch format {
	case ports.ExportPDF:
		err = e.PDF(w, tasks, now)
	case ports.ExportSpreadsheet:
		err = e.Spreadsheet(w, tasks, now)
	default:
		return domain.ExportError("export", fmt.Errorf("unsupported format %q", format))
	}
	metrics.IncrementExport(string(format), err)
	return err
}

// Filename is task-list-YYYY-MM-DD with the format's extension.
func (e *Exporter) Filename(format ports.ExportFormat, now time.Time) string {
	return fmt.Sprintf("task-list-%s.%s", now.In(e.location).Format(fileDateLayout), format)
}

func (e *Exporter) ContentType(format ports.ExportFormat) string {
	if contentType, ok := contentTypes[format]; ok {
		return contentType
	}
	return "application/octet-stream"
}

func ParseFormat(value string) (ports.ExportFormat, bool) {
	format := ports.ExportFormat(value)
	_, ok := contentTypes[format]
	return format, ok
}

func (e *Exporter) formatDate(t time.Time) string {
	return t.In(e.location).Format(dateLayout)
}

func (e *Exporter) formatDateTime(t time.Time) string {
	return t.In(e.location).Format(dateTimeLayout)
}
