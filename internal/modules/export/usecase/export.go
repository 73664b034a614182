package usecase

import (
	"context"

	"jadwal/internal/modules/export/dto"
	exportin "jadwal/internal/modules/export/port/in"
	"jadwal/internal/modules/export/service"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) exportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) PDF(ctx context.Context, input dto.PDFInput) (dto.PDFOutput, error) {
	return i.svc.PDF(ctx, input)
}

func (i *Interactor) Calendar(ctx context.Context, input dto.CalendarInput) (dto.CalendarOutput, error) {
	return i.svc.Calendar(ctx, input)
}
