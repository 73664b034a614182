package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jadwal/internal/modules/reminder/domain"
	"jadwal/internal/modules/reminder/dto"
	reminderout "jadwal/internal/modules/reminder/port/out"
	timetabledomain "jadwal/internal/modules/timetable/domain"
	timetabledto "jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
	"jadwal/internal/platform/clock"
	apperrors "jadwal/internal/platform/errors"
	"jadwal/internal/platform/logging"
)

type ReminderDeps struct {
	Clock     clock.Clock
	Timers    clock.Timers
	Timetable timetablein.Usecase
	// Notifier is what the scheduler delivers through; Sinks are the
	// individual sinks behind it, probed by Test and Doctor.
	Notifier    reminderout.Notifier
	Sinks       []reminderout.Notifier
	Metrics     reminderout.Metrics
	Server      reminderout.MetricsServer
	Watcher     reminderout.CatalogWatcher
	Manifests   reminderout.ManifestStore
	Plugins     reminderout.PluginHost
	Logger      *slog.Logger
	LeadMinutes int
	MetricsAddr string
}

type ReminderService struct {
	deps ReminderDeps
}

func NewReminderService(deps ReminderDeps) *ReminderService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Timers == nil {
		deps.Timers = clock.SystemTimers{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.LeadMinutes < 0 {
		deps.LeadMinutes = domain.DefaultLeadMinutes
	}
	return &ReminderService{deps: deps}
}

func (s *ReminderService) Plan(ctx context.Context) (dto.PlanOutput, error) {
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	now := s.deps.Clock.Now()
	armed, skipped := domain.Plan(sessions, now, s.deps.LeadMinutes)
	return dto.PlanOutput{
		At:          now,
		Day:         string(timetabledomain.DayOf(now.Weekday())),
		LeadMinutes: s.deps.LeadMinutes,
		Armed:       toOutputs(armed),
		Skipped:     toOutputs(skipped),
	}, nil
}

// Run arms reminders and keeps re-arming them until ctx is done. When a
// watcher is configured, catalog edits replace the running scheduler.
func (s *ReminderService) Run(ctx context.Context, input dto.RunInput) error {
	if s.deps.Notifier == nil {
		return fmt.Errorf("%w: no notification sink configured", apperrors.ErrNotificationUnavailable)
	}
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return err
	}
	scheduler, err := s.startScheduler(ctx, sessions)
	if err != nil {
		return err
	}
	defer func() {
		scheduler.Stop()
		scheduler.CancelPending()
	}()

	serverErr := make(chan error, 1)
	addr := input.MetricsAddr
	if addr == "" {
		addr = s.deps.MetricsAddr
	}
	if addr != "" && s.deps.Server != nil {
		go func() { serverErr <- s.deps.Server.Serve(ctx, addr) }()
		s.deps.Logger.Info("metrics endpoint listening", "addr", addr)
	}

	var changes <-chan struct{}
	if s.deps.Watcher != nil {
		changes, err = s.deps.Watcher.Watch(ctx)
		if err != nil {
			s.deps.Logger.Warn("catalog watcher unavailable", "error", err)
			changes = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			s.deps.Logger.Info("reminder daemon stopping")
			return nil
		case err := <-serverErr:
			if err != nil {
				return err
			}
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			next, err := s.loadSessions(ctx)
			if err != nil {
				s.deps.Logger.Warn("catalog reload failed, keeping current reminders", "error", err)
				continue
			}
			scheduler.Stop()
			scheduler.CancelPending()
			scheduler, err = s.startScheduler(ctx, next)
			if err != nil {
				return err
			}
			s.deps.Logger.Info("catalog changed, reminders re-armed", "courses", len(next))
		}
	}
}

func (s *ReminderService) startScheduler(ctx context.Context, sessions []domain.Session) (*Scheduler, error) {
	scheduler := NewScheduler(SchedulerDeps{
		Clock:    s.deps.Clock,
		Timers:   s.deps.Timers,
		Notifier: s.deps.Notifier,
		Metrics:  s.deps.Metrics,
		Logger:   s.deps.Logger,
	}, sessions, s.deps.LeadMinutes)
	if err := scheduler.Start(ctx); err != nil {
		return nil, err
	}
	return scheduler, nil
}

func (s *ReminderService) Test(ctx context.Context) (dto.TestOutput, error) {
	msg := domain.TestMessage(s.deps.LeadMinutes)
	out := dto.TestOutput{Title: msg.Title, Body: msg.Body, Delivered: []string{}}
	var errs []error
	for _, sink := range s.deps.Sinks {
		if err := sink.Ready(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		if err := sink.Notify(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		out.Delivered = append(out.Delivered, sink.Name())
	}
	if len(out.Delivered) == 0 {
		errs = append([]error{apperrors.ErrNotificationUnavailable}, errs...)
		return out, errors.Join(errs...)
	}
	return out, nil
}

func (s *ReminderService) Doctor(ctx context.Context) (dto.DoctorOutput, error) {
	out := dto.DoctorOutput{Sinks: []dto.SinkReport{}, Plugins: []dto.PluginReport{}}
	for _, sink := range s.deps.Sinks {
		report := dto.SinkReport{Name: sink.Name(), Ready: true}
		if err := sink.Ready(ctx); err != nil {
			report.Ready = false
			report.Error = err.Error()
		}
		out.Sinks = append(out.Sinks, report)
	}
	if s.deps.Manifests == nil {
		return out, nil
	}
	manifests, err := s.deps.Manifests.Load(ctx)
	if err != nil {
		return out, err
	}
	for _, m := range manifests {
		out.Plugins = append(out.Plugins, s.checkPlugin(ctx, m))
	}
	return out, nil
}

func (s *ReminderService) checkPlugin(ctx context.Context, m domain.Manifest) dto.PluginReport {
	result := dto.PluginReport{Name: m.Name, Version: m.Version, Enabled: m.Enabled}
	if err := m.Validate(); err != nil {
		result.Error = err.Error()
		return result
	}
	result.BinaryReachable = fileExists(m.Binary)
	if !result.BinaryReachable {
		result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		return result
	}
	result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
	if !result.ChecksumValid {
		result.Error = "checksum mismatch"
		return result
	}
	if !m.Enabled {
		result.Error = domain.ErrPluginDisabled.Error()
		return result
	}
	if s.deps.Plugins == nil {
		return result
	}
	meta, err := s.deps.Plugins.GetMetadata(ctx, m)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.LifecycleOK = true
	if meta.Version != "" && meta.Version != m.Version {
		result.Error = fmt.Sprintf("plugin reports version %s, manifest pins %s", meta.Version, m.Version)
	}
	return result
}

func (s *ReminderService) loadSessions(ctx context.Context) ([]domain.Session, error) {
	courses, err := s.deps.Timetable.List(ctx, timetabledto.ListInput{})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sessions := make([]domain.Session, 0, len(courses))
	for _, c := range courses {
		sessions = append(sessions, domain.Session{CourseName: c.Name, Day: c.Day, Time: c.Time, Room: c.Room})
	}
	return sessions, nil
}

func toOutputs(in []domain.Reminder) []dto.ReminderOutput {
	out := make([]dto.ReminderOutput, 0, len(in))
	for _, r := range in {
		out = append(out, dto.ReminderOutput{
			Key:        r.Key,
			CourseName: r.CourseName,
			Time:       r.Time.String(),
			Room:       r.Room,
			FireAt:     r.FireAt,
		})
	}
	return out
}
