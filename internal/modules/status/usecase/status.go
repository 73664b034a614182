package usecase

import (
	"context"
	"time"

	"jadwal/internal/modules/status/dto"
	statusin "jadwal/internal/modules/status/port/in"
	"jadwal/internal/modules/status/service"
)

type Interactor struct {
	svc *service.StatusService
}

func NewInteractor(svc *service.StatusService) statusin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Today(ctx context.Context, at time.Time) (dto.TodayOutput, error) {
	return i.svc.Today(ctx, at)
}

func (i *Interactor) Board(ctx context.Context, input dto.BoardInput) (dto.BoardOutput, error) {
	return i.svc.Board(ctx, input)
}
