package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
	apperrors "jadwal/internal/platform/errors"
	"jadwal/internal/platform/logging"
)

// PluginNotifier delivers through every enabled notifier plugin whose
// binary still matches its pinned checksum.
type PluginNotifier struct {
	store  reminderout.ManifestStore
	host   reminderout.PluginHost
	logger *slog.Logger
}

func NewPluginNotifier(store reminderout.ManifestStore, host reminderout.PluginHost, logger *slog.Logger) *PluginNotifier {
	if logger == nil {
		logger = logging.Discard()
	}
	return &PluginNotifier{store: store, host: host, logger: logger}
}

func (p *PluginNotifier) Name() string { return "plugin" }

func (p *PluginNotifier) Ready(ctx context.Context) error {
	runnable, err := p.runnable(ctx)
	if err != nil {
		return err
	}
	if len(runnable) == 0 {
		return fmt.Errorf("%w: no runnable notifier plugin", apperrors.ErrNotificationUnavailable)
	}
	return nil
}

func (p *PluginNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	runnable, err := p.runnable(ctx)
	if err != nil {
		return err
	}
	if len(runnable) == 0 {
		return fmt.Errorf("%w: no runnable notifier plugin", apperrors.ErrNotificationUnavailable)
	}
	var errs []error
	delivered := 0
	for _, m := range runnable {
		if err := p.host.Notify(ctx, m, notification); err != nil {
			errs = append(errs, fmt.Errorf("plugin %s: %w", m.Name, err))
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		p.logger.Warn("notifier plugin failed", "error", err)
	}
	return nil
}

func (p *PluginNotifier) runnable(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := p.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Manifest, 0, len(manifests))
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if err := m.Validate(); err != nil {
			p.logger.Warn("invalid notifier plugin manifest", "plugin", m.Name, "error", err)
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			p.logger.Warn("notifier plugin rejected", "plugin", m.Name, "error", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func checksumMatches(path, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	sum := sha256.Sum256(payload)
	if hex.EncodeToString(sum[:]) != expected {
		return domain.ErrChecksumMismatch
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
