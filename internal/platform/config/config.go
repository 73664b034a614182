package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultLeadMinutes    = 15
	DefaultDismissSeconds = 10
	DefaultSemesterLabel  = "Semester Gasal-1 2025/2026"
)

type Student struct {
	NIM          string
	Name         string
	Batch        string
	Program      string
	StudyProgram string
}

type Config struct {
	DataPath        string
	ConfigFile      string
	DBPath          string
	CoursesDir      string
	PreferencesPath string
	PluginsPath     string

	LeadMinutes     int
	Sinks           []string
	DismissSeconds  int
	SlackWebhookURL string
	MetricsAddr     string

	LogLevel string
	LogFile  string

	Student       Student
	SemesterLabel string
}

// New resolves configuration for a data directory. cfgFile overrides the
// default <data>/.jadwal/config.yaml location when non-empty.
func New(dataPath, cfgFile string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}

	// .env is optional; a missing file is not an error.
	if err := godotenv.Load(filepath.Join(dataPath, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(filepath.Join(dataPath, ".jadwal"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("JADWAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataPath:        dataPath,
		ConfigFile:      v.ConfigFileUsed(),
		DBPath:          filepath.Join(dataPath, ".jadwal", "jadwal.db"),
		CoursesDir:      filepath.Join(dataPath, "courses"),
		PreferencesPath: filepath.Join(dataPath, ".jadwal", "preferences.json"),
		PluginsPath:     filepath.Join(dataPath, "plugins", "plugins.json"),
		LeadMinutes:     v.GetInt("reminders.lead_minutes"),
		Sinks:           normalizeSinks(v.GetStringSlice("reminders.sinks")),
		DismissSeconds:  v.GetInt("reminders.dismiss_seconds"),
		SlackWebhookURL: v.GetString("notifications.slack.webhook_url"),
		MetricsAddr:     v.GetString("metrics.addr"),
		LogLevel:        v.GetString("logging.level"),
		LogFile:         v.GetString("logging.file"),
		Student: Student{
			NIM:          v.GetString("student.nim"),
			Name:         v.GetString("student.name"),
			Batch:        v.GetString("student.batch"),
			Program:      v.GetString("student.program"),
			StudyProgram: v.GetString("student.study_program"),
		},
		SemesterLabel: v.GetString("semester.label"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reminders.lead_minutes", DefaultLeadMinutes)
	v.SetDefault("reminders.sinks", []string{"desktop", "log"})
	v.SetDefault("reminders.dismiss_seconds", DefaultDismissSeconds)
	v.SetDefault("notifications.slack.webhook_url", "")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("semester.label", DefaultSemesterLabel)
}

func (c Config) Validate() error {
	if c.LeadMinutes < 0 {
		return fmt.Errorf("reminders.lead_minutes must be non-negative, got %d", c.LeadMinutes)
	}
	if c.DismissSeconds < 0 {
		return fmt.Errorf("reminders.dismiss_seconds must be non-negative, got %d", c.DismissSeconds)
	}
	for _, sink := range c.Sinks {
		switch sink {
		case "desktop", "log", "slack", "plugin":
		default:
			return fmt.Errorf("unknown reminder sink %q", sink)
		}
	}
	return nil
}

// normalizeSinks accepts both YAML lists and comma separated env values.
func normalizeSinks(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := map[string]struct{}{}
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
