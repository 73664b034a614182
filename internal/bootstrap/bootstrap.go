package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	exportinadapter "jadwal/internal/modules/export/adapter/in"
	exportoutadapter "jadwal/internal/modules/export/adapter/out"
	exportservice "jadwal/internal/modules/export/service"
	exportusecase "jadwal/internal/modules/export/usecase"
	remindinadapter "jadwal/internal/modules/reminder/adapter/in"
	remindoutadapter "jadwal/internal/modules/reminder/adapter/out"
	reminderout "jadwal/internal/modules/reminder/port/out"
	remindservice "jadwal/internal/modules/reminder/service"
	remindusecase "jadwal/internal/modules/reminder/usecase"
	settingsinadapter "jadwal/internal/modules/settings/adapter/in"
	settingsoutadapter "jadwal/internal/modules/settings/adapter/out"
	settingsservice "jadwal/internal/modules/settings/service"
	settingsusecase "jadwal/internal/modules/settings/usecase"
	statsinadapter "jadwal/internal/modules/stats/adapter/in"
	statsservice "jadwal/internal/modules/stats/service"
	statsusecase "jadwal/internal/modules/stats/usecase"
	statusinadapter "jadwal/internal/modules/status/adapter/in"
	statusservice "jadwal/internal/modules/status/service"
	statususecase "jadwal/internal/modules/status/usecase"
	timetableinadapter "jadwal/internal/modules/timetable/adapter/in"
	timetableoutadapter "jadwal/internal/modules/timetable/adapter/out"
	timetableservice "jadwal/internal/modules/timetable/service"
	timetableusecase "jadwal/internal/modules/timetable/usecase"
	"jadwal/internal/platform/clock"
	"jadwal/internal/platform/config"
	"jadwal/internal/platform/id"
	"jadwal/internal/platform/logging"
)

const watchDebounce = 500 * time.Millisecond

// Options controls process-level wiring that does not belong in config.
type Options struct {
	// Console receives log records; the TUI passes nil so only the log file
	// is written.
	Console io.Writer
	// Debug forces the debug log level.
	Debug bool
}

type App struct {
	Config       config.Config
	Logger       *slog.Logger
	TimetableCLI timetableinadapter.CLIHandler
	StatusCLI    statusinadapter.CLIHandler
	ReminderCLI  remindinadapter.CLIHandler
	StatsCLI     statsinadapter.CLIHandler
	ExportCLI    exportinadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler

	closers []func() error
}

func New(cfg config.Config, opts Options) (*App, error) {
	level := cfg.LogLevel
	if opts.Debug {
		level = "debug"
	}
	logger, closeLog, err := logging.New(logging.Options{Level: level, Console: opts.Console, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	app := &App{Config: cfg, Logger: logger, closers: []func() error{closeLog}}

	clk := clock.SystemClock{}
	ids := id.UUID{}

	courseIndex, err := timetableoutadapter.NewSQLiteCourseIndex(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new course index: %w", err)
	}
	if c, ok := courseIndex.(io.Closer); ok {
		app.closers = append(app.closers, c.Close)
	}
	timetableUC := timetableusecase.NewInteractor(timetableservice.NewCourseService(
		ids,
		timetableoutadapter.NewVaultCourseStore(cfg.CoursesDir, logger),
		courseIndex,
		timetableoutadapter.NewSampleCatalog(),
	))

	statusUC := statususecase.NewInteractor(statusservice.NewStatusService(clk, timetableUC))
	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(timetableUC))

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewFilePreferencesStore(cfg.PreferencesPath),
	))

	exportUC := exportusecase.NewInteractor(exportservice.NewExportService(exportservice.ExportDeps{
		Clock:     clk,
		Timetable: timetableUC,
		Renderer:  exportoutadapter.NewFPDFRenderer(),
		Inspector: exportoutadapter.NewPDFPageInspector(),
		Launcher:  exportoutadapter.NewOSLauncher(),
		Logger:    logger,
		DataPath:  cfg.DataPath,
		Semester:  cfg.SemesterLabel,
	}))

	manifests := remindoutadapter.NewFileManifestStore(cfg.DataPath, cfg.PluginsPath)
	pluginHost := remindoutadapter.NewGRPCHost()
	sinks := buildSinks(cfg, logger, manifests, pluginHost)
	var notifier reminderout.Notifier
	if len(sinks) > 0 {
		notifier = remindoutadapter.NewDedupNotifier(remindoutadapter.NewMultiNotifier(sinks...), clk)
	}
	metrics := remindoutadapter.NewPrometheusMetrics()
	reminderUC := remindusecase.NewInteractor(remindservice.NewReminderService(remindservice.ReminderDeps{
		Clock:       clk,
		Timers:      clock.SystemTimers{},
		Timetable:   timetableUC,
		Notifier:    notifier,
		Sinks:       sinks,
		Metrics:     metrics,
		Server:      metrics,
		Watcher:     remindoutadapter.NewFSNotifyWatcher(cfg.CoursesDir, watchDebounce, logger),
		Manifests:   manifests,
		Plugins:     pluginHost,
		Logger:      logger,
		LeadMinutes: cfg.LeadMinutes,
		MetricsAddr: cfg.MetricsAddr,
	}))

	app.TimetableCLI = timetableinadapter.NewCLIHandler(timetableUC)
	app.StatusCLI = statusinadapter.NewCLIHandler(statusUC)
	app.ReminderCLI = remindinadapter.NewCLIHandler(reminderUC)
	app.StatsCLI = statsinadapter.NewCLIHandler(statsUC)
	app.ExportCLI = exportinadapter.NewCLIHandler(exportUC)
	app.SettingsCLI = settingsinadapter.NewCLIHandler(settingsUC)
	return app, nil
}

// Close releases the course index and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildSinks(cfg config.Config, logger *slog.Logger, manifests reminderout.ManifestStore, host reminderout.PluginHost) []reminderout.Notifier {
	sinks := make([]reminderout.Notifier, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case "desktop":
			sinks = append(sinks, remindoutadapter.NewDesktopNotifier(time.Duration(cfg.DismissSeconds)*time.Second))
		case "log":
			sinks = append(sinks, remindoutadapter.NewLogNotifier(logger))
		case "slack":
			sinks = append(sinks, remindoutadapter.NewSlackNotifier(cfg.SlackWebhookURL))
		case "plugin":
			sinks = append(sinks, remindservice.NewPluginNotifier(manifests, host, logger))
		default:
			logger.Warn("ignoring unknown reminder sink", "sink", name)
		}
	}
	return sinks
}
