package out

import (
	"context"
	"fmt"

	"rsc.io/pdf"

	exportout "jadwal/internal/modules/export/port/out"
)

type PDFPageInspector struct{}

func NewPDFPageInspector() exportout.PDFInspector {
	return &PDFPageInspector{}
}

func (i *PDFPageInspector) PageCount(_ context.Context, path string) (int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	if total == 0 {
		return 0, fmt.Errorf("pdf %s has no pages", path)
	}
	return total, nil
}
