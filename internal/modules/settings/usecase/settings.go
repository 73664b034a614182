package usecase

import (
	"context"

	"jadwal/internal/modules/settings/dto"
	settingsin "jadwal/internal/modules/settings/port/in"
	"jadwal/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	return i.svc.Get(ctx)
}

func (i *Interactor) SetDarkMode(ctx context.Context, enabled bool) (dto.PreferencesOutput, error) {
	return i.svc.SetDarkMode(ctx, enabled)
}

func (i *Interactor) SetRemindersMuted(ctx context.Context, muted bool) (dto.PreferencesOutput, error) {
	return i.svc.SetRemindersMuted(ctx, muted)
}
