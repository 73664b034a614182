package dto

type PreferencesOutput struct {
	DarkMode       bool
	RemindersMuted bool
	Path           string
}
