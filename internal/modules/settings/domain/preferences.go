package domain

// Preferences are per-user display and reminder toggles. The zero value is
// the default: light theme, reminders on.
type Preferences struct {
	DarkMode       bool `json:"dark_mode"`
	RemindersMuted bool `json:"reminders_muted"`
}
