// Package report renders task listings as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/phrazzld/task-api/internal/domain"
)

// ContentType is the MIME type of rendered reports.
const ContentType = "application/pdf"

// column widths in mm; A4 portrait leaves 190mm between the default margins.
const (
	idWidth     = 15.0
	titleWidth  = 70.0
	descWidth   = 75.0
	statusWidth = 30.0
	rowHeight   = 7.0
	cellPadding = 2.0
)

// BuildTaskReport renders a summary block followed by one table row per
// task, in the order given.
func BuildTaskReport(tasks []*domain.Task, summary domain.Summary, generatedAt time.Time) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("Task report", true)
	p.SetCreationDate(generatedAt)
	tr := p.UnicodeTranslatorFromDescriptor("")

	p.AddPage()
	p.SetFont("Arial", "B", 14)
	p.Cell(40, 10, "Task report")
	p.Ln(10)

	p.SetFont("Arial", "", 10)
	p.Cell(0, 6, "Generated "+generatedAt.UTC().Format(time.RFC3339))
	p.Ln(6)
	p.Cell(0, 6, fmt.Sprintf("Total: %d   Pending: %d   Completed: %d",
		summary.Total, summary.Pending, summary.Completed))
	p.Ln(10)

	p.SetFont("Arial", "B", 10)
	p.CellFormat(idWidth, rowHeight, "ID", "1", 0, "C", false, 0, "")
	p.CellFormat(titleWidth, rowHeight, "Title", "1", 0, "L", false, 0, "")
	p.CellFormat(descWidth, rowHeight, "Description", "1", 0, "L", false, 0, "")
	p.CellFormat(statusWidth, rowHeight, "Status", "1", 1, "L", false, 0, "")

	p.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		p.CellFormat(idWidth+titleWidth+descWidth+statusWidth, rowHeight, "No tasks", "1", 1, "C", false, 0, "")
	}
	for _, t := range tasks {
		description := ""
		if t.Description != nil {
			description = *t.Description
		}
		p.CellFormat(idWidth, rowHeight, fmt.Sprintf("%d", t.ID), "1", 0, "C", false, 0, "")
		p.CellFormat(titleWidth, rowHeight, fit(p, tr(t.Title), titleWidth), "1", 0, "L", false, 0, "")
		p.CellFormat(descWidth, rowHeight, fit(p, tr(description), descWidth), "1", 0, "L", false, 0, "")
		p.CellFormat(statusWidth, rowHeight, string(t.Status), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render task report: %w", err)
	}
	return buf.Bytes(), nil
}

// fit truncates s with an ellipsis so it fits in a cell of the given width.
// s is already cp1252-encoded, one byte per glyph.
func fit(p *gofpdf.Fpdf, s string, width float64) string {
	limit := width - cellPadding
	if p.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && p.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}
