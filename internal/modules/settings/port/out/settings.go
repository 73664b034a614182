package out

import (
	"context"

	"jadwal/internal/modules/settings/domain"
)

type PreferencesStore interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
	Path() string
}
