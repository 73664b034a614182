package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one colour scheme. Dark is Catppuccin Mocha, light is Latte.
type Palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	Yellow   lipgloss.Color
}

var (
	Mocha = Palette{
		Base:     "#1e1e2e",
		Mantle:   "#181825",
		Surface0: "#313244",
		Surface1: "#45475a",
		Text:     "#cdd6f4",
		Subtext0: "#a6adc8",
		Lavender: "#b4befe",
		Sapphire: "#74c7ec",
		Green:    "#a6e3a1",
		Peach:    "#fab387",
		Red:      "#f38ba8",
		Yellow:   "#f9e2af",
	}
	Latte = Palette{
		Base:     "#eff1f5",
		Mantle:   "#e6e9ef",
		Surface0: "#ccd0da",
		Surface1: "#bcc0cc",
		Text:     "#4c4f69",
		Subtext0: "#6c6f85",
		Lavender: "#7287fd",
		Sapphire: "#209fb5",
		Green:    "#40a02b",
		Peach:    "#fe640b",
		Red:      "#d20f39",
		Yellow:   "#df8e1d",
	}
)

var (
	dark bool

	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	Yellow   lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Ok         lipgloss.Style
	Warn       lipgloss.Style
)

func init() {
	Use(false)
}

// Use switches every exported colour and style to the dark or light
// palette. Call it before rendering, from the UI goroutine only.
func Use(darkMode bool) {
	dark = darkMode
	p := Latte
	if darkMode {
		p = Mocha
	}
	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0, Lavender, Sapphire = p.Text, p.Subtext0, p.Lavender, p.Sapphire
	Green, Peach, Red, Yellow = p.Green, p.Peach, p.Red, p.Yellow

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Ok = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Warn = lipgloss.NewStyle().Foreground(Red)
}

func Dark() bool { return dark }

// GlamourStyle names the glamour standard style matching the palette.
func GlamourStyle() string {
	if dark {
		return "dark"
	}
	return "light"
}
