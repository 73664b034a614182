package out

import (
	"context"

	"jadwal/internal/modules/export/domain"
)

type PDFRenderer interface {
	Render(ctx context.Context, doc domain.Document, path string) error
}

type PDFInspector interface {
	PageCount(ctx context.Context, path string) (int, error)
}

type Launcher interface {
	Open(ctx context.Context, target string) error
}
