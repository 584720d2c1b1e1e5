package export

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"taskboard/internal/core/domain"
)

const sheetName = "Task List"

type column struct {
	header string
	width  float64
}

var columns = []column{
	{header: "Title", width: 30},
	{header: "Category", width: 15},
	{header: "Priority", width: 10},
	{header: "Status", width: 20},
	{header: "Deadline", width: 12},
	{header: "Description", width: 50},
	{header: "Created", width: 18},
}

// Spreadsheet writes a workbook with a header row and one row per task.
func (e *Exporter) Spreadsheet(w io.Writer, tasks []domain.Task, _ time.Time) error {
	f, err := e.buildWorkbook(tasks)
	if err != nil {
		return domain.ExportError("build spreadsheet", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return domain.ExportError("write spreadsheet", err)
	}
	return nil
}

func (e *Exporter) buildWorkbook(tasks []domain.Task) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]any, 0, len(columns))
	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			f.Close()
			return nil, err
		}
		header = append(header, col.header)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		f.Close()
		return nil, err
	}

	for i, task := range tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := e.spreadsheetRow(task)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (e *Exporter) spreadsheetRow(task domain.Task) []any {
	deadline := ""
	if task.Deadline != nil {
		deadline = e.formatDate(*task.Deadline)
	}
	return []any{
		task.Title,
		task.Category.Label(),
		task.Priority.Label(),
		task.Status.Label(),
		deadline,
		task.DescriptionText(),
		e.formatDateTime(task.CreatedAt),
	}
}
