package out

import (
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"jadwal/internal/modules/export/domain"
	exportout "jadwal/internal/modules/export/port/out"
)

const (
	pageMargin = 14.0
	rowHeight  = 6.0
)

// Fixed widths in mm for every column but the last, which takes the rest.
var columnWidths = []float64{20, 20, 40, 20, 25}

type FPDFRenderer struct{}

func NewFPDFRenderer() exportout.PDFRenderer {
	return &FPDFRenderer{}
}

func (r *FPDFRenderer) Render(_ context.Context, doc domain.Document, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	widths := make([]float64, len(doc.Header))
	used := 0.0
	for i := range widths {
		if i < len(columnWidths) {
			widths[i] = columnWidths[i]
			used += columnWidths[i]
		}
	}
	if n := len(widths); n > len(columnWidths) {
		widths[n-1] = pageWidth - 2*pageMargin - used
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(59, 130, 246)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range doc.Header {
			pdf.CellFormat(widths[i], rowHeight+1, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(pageMargin, 15, tr(doc.Title))
	pdf.SetFontSize(12)
	pdf.Text(pageMargin, 22, tr(doc.Subtitle))
	pdf.SetY(30)
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range doc.Rows {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			header()
		}
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = fitText(pdf, tr(row[i]), widths[i]-2)
			}
			pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
