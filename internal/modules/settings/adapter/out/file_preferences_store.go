package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jadwal/internal/modules/settings/domain"
	settingsout "jadwal/internal/modules/settings/port/out"
)

type FilePreferencesStore struct {
	path string
}

func NewFilePreferencesStore(path string) settingsout.PreferencesStore {
	return &FilePreferencesStore{path: path}
}

func (s *FilePreferencesStore) Path() string { return s.path }

func (s *FilePreferencesStore) Save(_ context.Context, prefs domain.Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	payload, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

// Load returns the defaults when no preferences were saved yet.
func (s *FilePreferencesStore) Load(_ context.Context) (domain.Preferences, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Preferences{}, nil
		}
		return domain.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	prefs := domain.Preferences{}
	if err := json.Unmarshal(payload, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, nil
}
