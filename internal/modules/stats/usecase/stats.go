package usecase

import (
	"context"

	"jadwal/internal/modules/stats/dto"
	statsin "jadwal/internal/modules/stats/port/in"
	"jadwal/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return i.svc.Summary(ctx)
}
