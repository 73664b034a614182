package in

import (
	"context"

	"jadwal/internal/modules/settings/dto"
	settingsin "jadwal/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.PreferencesOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) DarkMode(ctx context.Context, enabled bool) (dto.PreferencesOutput, error) {
	return h.usecase.SetDarkMode(ctx, enabled)
}

func (h CLIHandler) MuteReminders(ctx context.Context, muted bool) (dto.PreferencesOutput, error) {
	return h.usecase.SetRemindersMuted(ctx, muted)
}
