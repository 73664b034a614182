package out

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
	"jadwal/internal/platform/clock"
	apperrors "jadwal/internal/platform/errors"
)

// MultiNotifier delivers to every sink that is ready. It is ready when at
// least one sink is.
type MultiNotifier struct {
	sinks []reminderout.Notifier
}

func NewMultiNotifier(sinks ...reminderout.Notifier) *MultiNotifier {
	return &MultiNotifier{sinks: sinks}
}

func (m *MultiNotifier) Name() string {
	names := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

func (m *MultiNotifier) Sinks() []reminderout.Notifier {
	return append([]reminderout.Notifier(nil), m.sinks...)
}

func (m *MultiNotifier) Ready(ctx context.Context) error {
	if len(m.sinks) == 0 {
		return fmt.Errorf("%w: no sinks configured", apperrors.ErrNotificationUnavailable)
	}
	var errs []error
	for _, s := range m.sinks {
		err := s.Ready(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (m *MultiNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	var errs []error
	delivered := 0
	for _, s := range m.sinks {
		if err := s.Ready(ctx); err != nil {
			continue
		}
		if err := s.Notify(ctx, notification); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		delivered++
	}
	if delivered == 0 && len(errs) == 0 {
		return fmt.Errorf("%w: no sink ready", apperrors.ErrNotificationUnavailable)
	}
	if delivered == 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DedupNotifier drops a notification whose DedupKey was already delivered
// on the same local calendar day.
type DedupNotifier struct {
	next  reminderout.Notifier
	clock clock.Clock

	mu   sync.Mutex
	day  string
	seen map[string]struct{}
}

func NewDedupNotifier(next reminderout.Notifier, clk clock.Clock) *DedupNotifier {
	return &DedupNotifier{next: next, clock: clk, seen: map[string]struct{}{}}
}

func (d *DedupNotifier) Name() string { return d.next.Name() }

func (d *DedupNotifier) Ready(ctx context.Context) error { return d.next.Ready(ctx) }

func (d *DedupNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if notification.DedupKey == "" {
		return d.next.Notify(ctx, notification)
	}
	today := d.clock.Now().Format(time.DateOnly)
	d.mu.Lock()
	if d.day != today {
		d.day = today
		d.seen = map[string]struct{}{}
	}
	if _, ok := d.seen[notification.DedupKey]; ok {
		d.mu.Unlock()
		return nil
	}
	d.seen[notification.DedupKey] = struct{}{}
	d.mu.Unlock()

	if err := d.next.Notify(ctx, notification); err != nil {
		d.mu.Lock()
		delete(d.seen, notification.DedupKey)
		d.mu.Unlock()
		return err
	}
	return nil
}
