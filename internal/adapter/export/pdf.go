package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"taskboard/internal/core/domain"
)

const (
	pdfMargin       = 20.0
	pdfDetailIndent = 25.0
	pdfLineHeight   = 8.0
)

// A block starting this close to the bottom edge moves to a new page.
const pdfBottomReserve = 40.0

const (
	pdfTitleSize  = 14.0
	pdfDetailSize = 10.0
)

// PDF writes an A4 document with one numbered block per task.
func (e *Exporter) PDF(w io.Writer, tasks []domain.Task, now time.Time) error {
	pdf := e.renderPDF(tasks, now)
	if err := pdf.Output(w); err != nil {
		return domain.ExportError("render pdf", err)
	}
	return nil
}

func (e *Exporter) renderPDF(tasks []domain.Task, now time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(documentTitle, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	// Blocks taller than a whole page still break instead of running off it.
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, documentTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Exported: "+e.formatDateTime(now), "", 1, "L", false, 0, "")
	pdf.Ln(pdfLineHeight)

	titleWidth := pageWidth - 2*pdfMargin
	detailWidth := pageWidth - pdfDetailIndent - pdfMargin

	for i, task := range tasks {
		title := tr(fmt.Sprintf("%d. %s", i+1, task.Title))
		details := e.pdfDetails(task, tr)

		height := pdfBlockHeight(pdf, title, details, titleWidth, detailWidth)
		top := pdf.GetY()
		if top > pageHeight-pdfBottomReserve || top+height > pageHeight-pdfMargin {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", pdfTitleSize)
		pdf.SetX(pdfMargin)
		pdf.MultiCell(titleWidth, pdfLineHeight, title, "", "L", false)

		pdf.SetFont("Helvetica", "", pdfDetailSize)
		for _, line := range details {
			pdf.SetX(pdfDetailIndent)
			pdf.MultiCell(detailWidth, pdfLineHeight-2, line, "", "L", false)
		}
		pdf.Ln(pdfLineHeight)
	}

	return pdf
}

func (e *Exporter) pdfDetails(task domain.Task, tr func(string) string) []string {
	details := []string{
		tr("Category: " + task.Category.Label()),
		tr("Priority: " + task.Priority.Label()),
		tr("Status: " + task.Status.Label()),
	}
	if task.Deadline != nil {
		details = append(details, tr("Deadline: "+e.formatDate(*task.Deadline)))
	}
	if description := strings.TrimSpace(task.DescriptionText()); description != "" {
		details = append(details, tr("Description: "+description))
	}
	return details
}

// pdfBlockHeight measures a task block as MultiCell will wrap it.
func pdfBlockHeight(pdf *fpdf.Fpdf, title string, details []string, titleWidth, detailWidth float64) float64 {
	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	height := float64(len(pdf.SplitText(title, titleWidth))) * pdfLineHeight

	pdf.SetFont("Helvetica", "", pdfDetailSize)
	for _, line := range details {
		height += float64(len(pdf.SplitText(line, detailWidth))) * (pdfLineHeight - 2)
	}
	return height
}
