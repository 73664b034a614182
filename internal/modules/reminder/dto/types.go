package dto

import "time"

type ReminderOutput struct {
	Key        string
	CourseName string
	Time       string
	Room       string
	FireAt     time.Time
}

type PlanOutput struct {
	At          time.Time
	Day         string
	LeadMinutes int
	Armed       []ReminderOutput
	Skipped     []ReminderOutput
}

type RunInput struct {
	// MetricsAddr overrides the configured metrics listener when set.
	MetricsAddr string
}

type TestOutput struct {
	Title     string
	Body      string
	Delivered []string
}

type SinkReport struct {
	Name  string
	Ready bool
	Error string
}

type PluginReport struct {
	Name            string
	Version         string
	Enabled         bool
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type DoctorOutput struct {
	Sinks   []SinkReport
	Plugins []PluginReport
}
