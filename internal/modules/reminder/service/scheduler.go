package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
	timetable "jadwal/internal/modules/timetable/domain"
	"jadwal/internal/platform/clock"
	"jadwal/internal/platform/logging"
)

var ErrSchedulerStarted = errors.New("scheduler already started")

type SchedulerDeps struct {
	Clock    clock.Clock
	Timers   clock.Timers
	Notifier reminderout.Notifier
	Metrics  reminderout.Metrics
	Logger   *slog.Logger
}

// Scheduler owns the reminder timers for one snapshot of the catalog. It
// arms today's reminders on Start, again at the next local midnight and then
// every 24 hours.
type Scheduler struct {
	deps     SchedulerDeps
	sessions []domain.Session
	lead     int

	mu      sync.Mutex
	ctx     context.Context
	started bool
	stopped bool
	daily   clock.Timer
	pending map[string]pendingReminder
}

type pendingReminder struct {
	reminder domain.Reminder
	timer    clock.Timer
}

func NewScheduler(deps SchedulerDeps, sessions []domain.Session, leadMinutes int) *Scheduler {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Timers == nil {
		deps.Timers = clock.SystemTimers{}
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	snapshot := make([]domain.Session, len(sessions))
	copy(snapshot, sessions)
	return &Scheduler{
		deps:     deps,
		sessions: snapshot,
		lead:     leadMinutes,
		pending:  map[string]pendingReminder{},
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrSchedulerStarted
	}
	s.started = true
	s.ctx = ctx
	s.mu.Unlock()

	s.armToday()

	now := s.deps.Clock.Now()
	delay := domain.NextMidnight(now).Sub(now)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.daily = s.deps.Timers.AfterFunc(delay, s.onBoundary)
	s.deps.Logger.Debug("daily re-arm scheduled", "in", delay.String())
	return nil
}

// Stop clears the pending midnight or daily timer. Reminders that are
// already armed for today still fire; use CancelPending to drop them.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.daily != nil {
		s.daily.Stop()
		s.daily = nil
	}
}

func (s *Scheduler) CancelPending() int {
	s.mu.Lock()
	cancelled := 0
	for key, p := range s.pending {
		if p.timer.Stop() {
			cancelled++
		}
		delete(s.pending, key)
	}
	s.mu.Unlock()
	s.deps.Metrics.SetPending(0)
	return cancelled
}

// Pending lists armed reminders ordered by fire instant.
func (s *Scheduler) Pending() []domain.Reminder {
	s.mu.Lock()
	out := make([]domain.Reminder, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, p.reminder)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

func (s *Scheduler) onBoundary() {
	s.armToday()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.daily = s.deps.Timers.AfterFunc(domain.DailyInterval, s.onBoundary)
}

func (s *Scheduler) armToday() {
	s.deps.Metrics.CycleStarted()
	ctx := s.context()
	if err := s.deps.Notifier.Ready(ctx); err != nil {
		s.deps.Logger.Info("notification sink unavailable, skipping cycle", "sink", s.deps.Notifier.Name(), "error", err)
		return
	}

	now := s.deps.Clock.Now()
	armed, skipped := domain.Plan(s.sessions, now, s.lead)

	s.mu.Lock()
	for _, r := range armed {
		if prev, ok := s.pending[r.Key]; ok {
			prev.timer.Stop()
		}
		reminder := r
		timer := s.deps.Timers.AfterFunc(reminder.FireAt.Sub(now), func() { s.fire(reminder) })
		s.pending[reminder.Key] = pendingReminder{reminder: reminder, timer: timer}
	}
	pending := len(s.pending)
	s.mu.Unlock()

	s.deps.Metrics.Armed(len(armed))
	s.deps.Metrics.Skipped(len(skipped))
	s.deps.Metrics.SetPending(pending)
	for _, r := range skipped {
		s.deps.Logger.Debug("reminder window passed", "course", r.CourseName, "fire_at", r.FireAt)
	}
	s.deps.Logger.Info("reminders armed", "day", string(timetable.DayOf(now.Weekday())), "armed", len(armed), "skipped", len(skipped))
}

func (s *Scheduler) fire(r domain.Reminder) {
	s.mu.Lock()
	if p, ok := s.pending[r.Key]; ok && p.reminder.FireAt.Equal(r.FireAt) {
		delete(s.pending, r.Key)
	}
	pending := len(s.pending)
	s.mu.Unlock()
	s.deps.Metrics.SetPending(pending)

	sink := s.deps.Notifier.Name()
	if err := s.deps.Notifier.Notify(s.context(), domain.Message(r, s.lead)); err != nil {
		s.deps.Metrics.Failed(sink)
		s.deps.Logger.Warn("reminder delivery failed", "course", r.CourseName, "sink", sink, "error", err)
		return
	}
	s.deps.Metrics.Fired(sink)
	s.deps.Logger.Info("reminder fired", "course", r.CourseName, "time", r.Time.String(), "room", r.Room)
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

type noopMetrics struct{}

func (noopMetrics) CycleStarted()  {}
func (noopMetrics) Armed(int)      {}
func (noopMetrics) Skipped(int)    {}
func (noopMetrics) Fired(string)   {}
func (noopMetrics) Failed(string)  {}
func (noopMetrics) SetPending(int) {}
