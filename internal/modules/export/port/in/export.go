package in

import (
	"context"

	"jadwal/internal/modules/export/dto"
)

type Usecase interface {
	PDF(ctx context.Context, input dto.PDFInput) (dto.PDFOutput, error)
	Calendar(ctx context.Context, input dto.CalendarInput) (dto.CalendarOutput, error)
}
