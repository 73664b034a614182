package service

import (
	"context"
	"sync"

	"jadwal/internal/modules/settings/domain"
	"jadwal/internal/modules/settings/dto"
	settingsout "jadwal/internal/modules/settings/port/out"
)

type SettingsService struct {
	store settingsout.PreferencesStore
	mu    sync.Mutex
}

func NewSettingsService(store settingsout.PreferencesStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return s.output(prefs), nil
}

func (s *SettingsService) SetDarkMode(ctx context.Context, enabled bool) (dto.PreferencesOutput, error) {
	return s.update(ctx, func(p *domain.Preferences) { p.DarkMode = enabled })
}

func (s *SettingsService) SetRemindersMuted(ctx context.Context, muted bool) (dto.PreferencesOutput, error) {
	return s.update(ctx, func(p *domain.Preferences) { p.RemindersMuted = muted })
}

func (s *SettingsService) update(ctx context.Context, apply func(*domain.Preferences)) (dto.PreferencesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	apply(&prefs)
	if err := s.store.Save(ctx, prefs); err != nil {
		return dto.PreferencesOutput{}, err
	}
	return s.output(prefs), nil
}

func (s *SettingsService) output(prefs domain.Preferences) dto.PreferencesOutput {
	return dto.PreferencesOutput{DarkMode: prefs.DarkMode, RemindersMuted: prefs.RemindersMuted, Path: s.store.Path()}
}
