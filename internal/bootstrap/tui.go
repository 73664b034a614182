package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	uiapp "jadwal/internal/ui/app"
)

// RunTUI starts the dashboard. The reminder daemon runs in-process for the
// lifetime of the program and follows the reminders-muted preference.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	daemon := newReminderDaemon(ctx, app.ReminderCLI, app.Logger)
	defer daemon.SetEnabled(false)

	model := uiapp.NewModel(uiapp.Ports{
		Timetable: app.TimetableCLI,
		Status:    app.StatusCLI,
		Stats:     app.StatsCLI,
		Settings:  app.SettingsCLI,
		Reminder:  app.ReminderCLI,
		Export:    app.ExportCLI,
		Daemon:    daemon,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type reminderRunner interface {
	Run(ctx context.Context, metricsAddr string) error
}

// reminderDaemon runs the reminder scheduler in a goroutine that can be
// switched on and off from the UI.
type reminderDaemon struct {
	parent context.Context
	runner reminderRunner
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newReminderDaemon(parent context.Context, runner reminderRunner, logger *slog.Logger) *reminderDaemon {
	return &reminderDaemon{parent: parent, runner: runner, logger: logger}
}

func (d *reminderDaemon) SetEnabled(enabled bool) {
	if enabled {
		d.start()
		return
	}
	d.stop()
}

func (d *reminderDaemon) start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(d.parent)
	done := make(chan struct{})
	d.cancel, d.done = cancel, done
	go func() {
		defer close(done)
		if err := d.runner.Run(ctx, ""); err != nil {
			d.logger.Warn("reminder daemon stopped", "error", err)
		}
		d.exited(done)
	}()
	d.logger.Info("reminder daemon enabled")
}

// stop waits for the run to return without holding the lock, since the run
// takes it on exit.
func (d *reminderDaemon) stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	d.logger.Info("reminder daemon disabled")
}

// exited clears the handle of a run that returned on its own, unless a newer
// run has already replaced it.
func (d *reminderDaemon) exited(done chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != done {
		return
	}
	d.cancel()
	d.cancel, d.done = nil, nil
}

func (d *reminderDaemon) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}
