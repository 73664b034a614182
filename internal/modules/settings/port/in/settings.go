package in

import (
	"context"

	"jadwal/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.PreferencesOutput, error)
	SetDarkMode(ctx context.Context, enabled bool) (dto.PreferencesOutput, error)
	SetRemindersMuted(ctx context.Context, muted bool) (dto.PreferencesOutput, error)
}
