package components

import (
	"github.com/charmbracelet/lipgloss"

	"jadwal/internal/ui/theme"
)

// StatusBadge renders a course status label coloured by its kind.
func StatusBadge(kind, label string) string {
	if label == "" {
		return ""
	}
	return badgeStyle(kind).Render(label)
}

func badgeStyle(kind string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch kind {
	case "ongoing":
		return base.Foreground(theme.Base).Background(theme.Green)
	case "upcoming":
		return base.Foreground(theme.Base).Background(theme.Peach)
	case "today":
		return base.Foreground(theme.Base).Background(theme.Sapphire)
	case "finished":
		return base.Foreground(theme.Subtext0).Background(theme.Surface0)
	default:
		return base.Foreground(theme.Subtext0)
	}
}
