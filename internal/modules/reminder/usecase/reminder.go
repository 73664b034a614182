package usecase

import (
	"context"

	"jadwal/internal/modules/reminder/dto"
	reminderin "jadwal/internal/modules/reminder/port/in"
	"jadwal/internal/modules/reminder/service"
)

type Interactor struct {
	svc *service.ReminderService
}

func NewInteractor(svc *service.ReminderService) reminderin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Plan(ctx context.Context) (dto.PlanOutput, error) {
	return i.svc.Plan(ctx)
}

func (i *Interactor) Run(ctx context.Context, input dto.RunInput) error {
	return i.svc.Run(ctx, input)
}

func (i *Interactor) Test(ctx context.Context) (dto.TestOutput, error) {
	return i.svc.Test(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) (dto.DoctorOutput, error) {
	return i.svc.Doctor(ctx)
}
