package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jadwal/internal/bootstrap"
	timetabledto "jadwal/internal/modules/timetable/dto"
	"jadwal/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataPath   string
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "jadwal",
		Short:         "Academic schedule dashboard with class reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataPath, "data", ".", "data directory holding courses/ and .jadwal/")
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default <data>/.jadwal/config.yaml)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTodayCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newCourseCmd(flags))
	root.AddCommand(newRemindCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	return root
}

func loadApp(flags *globalFlags, console io.Writer) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataPath, flags.configFile)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, bootstrap.Options{Console: console, Debug: flags.debug})
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the schedule dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, nil)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newTodayCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's classes with their status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StatusCLI.Today(context.Background(), time.Time{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s %s\n", out.Day, out.At.Format("15:04"))
			if len(out.Courses) == 0 {
				_, _ = fmt.Fprintln(w, "no classes today")
				return nil
			}
			for _, cs := range out.Courses {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cs.Course.Time, cs.Course.Name, cs.Course.Room, cs.Label)
			}
			if out.Ongoing != nil {
				_, _ = fmt.Fprintf(w, "ongoing: %s\n", out.Ongoing.Course.Name)
			}
			if out.Next != nil {
				_, _ = fmt.Fprintf(w, "next: %s at %s\n", out.Next.Course.Name, out.Next.Course.Time.Start)
			}
			return nil
		},
	}
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var at, day, lecturer, search string
	status := &cobra.Command{
		Use:   "status",
		Short: "Resolve the status of every course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var instant time.Time
			if strings.TrimSpace(at) != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC3339: %w", err)
				}
				instant = parsed.Local()
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StatusCLI.Board(context.Background(), instant, day, lecturer, search)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "at %s\n", out.At.Format(time.RFC3339))
			for _, cs := range out.Courses {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cs.Course.Day, cs.Course.Time, cs.Course.Name, cs.Kind, cs.Label)
			}
			return nil
		},
	}
	status.Flags().StringVar(&at, "at", "", "resolve at this RFC3339 instant instead of now")
	status.Flags().StringVar(&day, "day", "", "filter by day")
	status.Flags().StringVar(&lecturer, "lecturer", "", "filter by lecturer")
	status.Flags().StringVar(&search, "search", "", "filter by name, code or lecturer")
	return status
}

func newCourseCmd(flags *globalFlags) *cobra.Command {
	course := &cobra.Command{Use: "course", Short: "Course catalog commands"}

	var day, lecturer, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List courses in schedule order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			courses, err := app.TimetableCLI.List(context.Background(), day, lecturer, search)
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses")
				return nil
			}
			for _, c := range courses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Day, c.Time, c.Code, c.Name, c.Lecturer)
			}
			return nil
		},
	}
	list.Flags().StringVar(&day, "day", "", "filter by day")
	list.Flags().StringVar(&lecturer, "lecturer", "", "filter by lecturer")
	list.Flags().StringVar(&search, "search", "", "filter by name, code or lecturer")

	var courseID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show course details and notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(courseID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			c, err := app.TimetableCLI.Show(context.Background(), courseID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\ncode: %s\nclass: %s\nday: %s\ntime: %s\ncredits: %d\nroom: %s\nlecturer: %s\nfaculty: %s\nnote: %s\n",
				c.ID, c.Name, c.Code, c.Class, c.Day, c.Time, c.Credits, c.Room, c.Lecturer, c.Faculty, c.NotePath)
			if strings.TrimSpace(c.Notes) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\n"+strings.TrimSpace(c.Notes))
			}
			return nil
		},
	}
	show.Flags().StringVar(&courseID, "id", "", "course id")

	var input timetabledto.AddCourseInput
	add := &cobra.Command{
		Use:   "add --day <day> --time <HH:MM-HH:MM> --name <name>",
		Short: "Add a course to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for flag, value := range map[string]string{"--day": input.Day, "--time": input.Time, "--name": input.Name} {
				if strings.TrimSpace(value) == "" {
					return fmt.Errorf("%s is required", flag)
				}
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TimetableCLI.Add(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) %s %s note=%s\n", out.Name, out.ID, out.Day, out.Time, out.NotePath)
			return nil
		},
	}
	add.Flags().StringVar(&input.Day, "day", "", "day of week (Senin..Sabtu or English)")
	add.Flags().StringVar(&input.Time, "time", "", "time range, e.g. 07:00-09:30")
	add.Flags().StringVar(&input.Code, "code", "", "course code")
	add.Flags().StringVar(&input.Name, "name", "", "course name")
	add.Flags().IntVar(&input.Credits, "credits", 2, "credit units (SKS)")
	add.Flags().StringVar(&input.Class, "class", "", "class section")
	add.Flags().StringVar(&input.Lecturer, "lecturer", "", "lecturer")
	add.Flags().StringVar(&input.Room, "room", "", "room")
	add.Flags().StringVar(&input.Faculty, "faculty", "Fak. Sains & Teknologi-1", "faculty")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Write the sample schedule when the catalog is empty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TimetableCLI.Seed(context.Background())
			if err != nil {
				return err
			}
			if out.Skipped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "catalog not empty, seed skipped")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d courses\n", out.Created)
			return nil
		},
	}

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from course notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.TimetableCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}

	lecturers := &cobra.Command{
		Use:   "lecturers",
		Short: "List distinct lecturers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			names, err := app.TimetableCLI.Lecturers(context.Background())
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	course.AddCommand(list, show, add, seed, reindex, lecturers)
	return course
}

func newRemindCmd(flags *globalFlags) *cobra.Command {
	remind := &cobra.Command{Use: "remind", Short: "Class reminder commands"}

	var metricsAddr string
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the reminder daemon until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			prefs, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			if prefs.RemindersMuted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reminders are muted; enable them with: jadwal settings reminders on")
				return nil
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.ReminderCLI.Run(ctx, metricsAddr)
		},
	}
	run.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")

	plan := &cobra.Command{
		Use:   "plan",
		Short: "Show which reminders would be armed today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ReminderCLI.Plan(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s %s lead=%dmin\n", out.Day, out.At.Format("15:04"), out.LeadMinutes)
			for _, r := range out.Armed {
				_, _ = fmt.Fprintf(w, "armed\t%s\t%s\t%s\tfires=%s\n", r.Time, r.CourseName, r.Room, r.FireAt.Format("15:04"))
			}
			for _, r := range out.Skipped {
				_, _ = fmt.Fprintf(w, "skipped\t%s\t%s\t%s\n", r.Time, r.CourseName, r.Room)
			}
			if len(out.Armed)+len(out.Skipped) == 0 {
				_, _ = fmt.Fprintln(w, "no classes today")
			}
			return nil
		},
	}

	test := &cobra.Command{
		Use:   "test",
		Short: "Send a test notification through every ready sink",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ReminderCLI.Test(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered via %s\n", strings.Join(out.Delivered, ", "))
			return nil
		},
	}

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Check notification sinks and plugin checksums",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ReminderCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range out.Sinks {
				_, _ = fmt.Fprintf(w, "sink %s ready=%t", s.Name, s.Ready)
				if s.Error != "" {
					_, _ = fmt.Fprintf(w, " error=%q", s.Error)
				}
				_, _ = fmt.Fprintln(w)
			}
			if len(out.Plugins) == 0 {
				_, _ = fmt.Fprintln(w, "no plugins configured")
			}
			for _, p := range out.Plugins {
				_, _ = fmt.Fprintf(w, "plugin %s@%s enabled=%t binary=%t checksum=%t lifecycle=%t", p.Name, p.Version, p.Enabled, p.BinaryReachable, p.ChecksumValid, p.LifecycleOK)
				if p.Error != "" {
					_, _ = fmt.Fprintf(w, " error=%q", p.Error)
				}
				_, _ = fmt.Fprintln(w)
			}
			return nil
		},
	}

	remind.AddCommand(run, plan, test, doctor)
	return remind
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show schedule statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.StatsCLI.Summary(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "credits: %d\nclasses: %d\nbusiest: %s\naverage hours: %.1f\n", s.TotalCredits, s.TotalClasses, s.BusiestDay, s.AverageHours)
			for _, d := range s.PerDay {
				_, _ = fmt.Fprintf(w, "%s\t%d\n", d.Day, d.Count)
			}
			_, _ = fmt.Fprintf(w, "morning: %d\nafternoon: %d\nevening: %d\n", s.Morning, s.Afternoon, s.Evening)
			return nil
		},
	}
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export the schedule"}

	var outPath string
	pdf := &cobra.Command{
		Use:   "pdf",
		Short: "Write the schedule as a PDF table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ExportCLI.PDF(context.Background(), outPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d courses, %d pages)\n", out.Path, out.Courses, out.Pages)
			return nil
		},
	}
	pdf.Flags().StringVar(&outPath, "out", "", "output path (default <data>/jadwal-kuliah.pdf)")

	var open bool
	gcal := &cobra.Command{
		Use:   "gcal",
		Short: "Print Google Calendar event links for every course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ExportCLI.Calendar(context.Background(), open)
			if err != nil {
				return err
			}
			for _, l := range out.Links {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n", l.CourseName, l.URL)
				if l.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  open failed: %s\n", l.Error)
				}
			}
			return nil
		},
	}
	gcal.Flags().BoolVar(&open, "open", false, "open each link in the browser")

	export.AddCommand(pdf, gcal)
	return export
}

func newSettingsCmd(flags *globalFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Dashboard preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dark-mode: %s\nreminders: %s\npath: %s\n", onOff(out.DarkMode), onOff(!out.RemindersMuted), out.Path)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:       "dark-mode on|off",
		Short:     "Switch the dashboard theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.DarkMode(context.Background(), enabled)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dark-mode: %s\n", onOff(out.DarkMode))
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:       "reminders on|off",
		Short:     "Enable or mute class reminders",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.MuteReminders(context.Background(), !enabled)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminders: %s\n", onOff(!out.RemindersMuted))
			return nil
		},
	})
	return settings
}

func parseOnOff(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", raw)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
