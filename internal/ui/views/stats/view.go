package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "jadwal/internal/modules/stats/dto"
	"jadwal/internal/ui/theme"
)

type StatsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

type LoadedMsg struct {
	Summary statsdto.SummaryOutput
	Err     error
}

type Model struct {
	port    StatsPort
	summary statsdto.SummaryOutput
	err     error
	loaded  bool
	barW    int
	width   int
	height  int
}

func New(port StatsPort) Model {
	return Model{port: port, barW: 30}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("stats service not configured")}
		}
		summary, err := m.port.Summary(context.Background())
		return LoadedMsg{Summary: summary, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.barW = max(min(msg.Width-24, 50), 10)
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Menghitung statistik…")
	}
	if m.err != nil {
		return theme.Warn.Render("Gagal memuat statistik: " + m.err.Error())
	}
	s := m.summary

	tile := func(label, value string) string {
		return theme.Pane.Width(20).Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
	}
	busiest := s.BusiestDay
	if busiest == "" {
		busiest = "-"
	}
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Total SKS", fmt.Sprintf("%d", s.TotalCredits)),
		tile("Total kelas", fmt.Sprintf("%d", s.TotalClasses)),
		tile("Hari tersibuk", busiest),
		tile("Rata-rata jam/hari", fmt.Sprintf("%.1f", s.AverageHours)),
	)

	peak := 0
	for _, d := range s.PerDay {
		peak = max(peak, d.Count)
	}
	var sb strings.Builder
	sb.WriteString(tiles + "\n\n")
	sb.WriteString(theme.Title.Render("Kelas per hari") + "\n")
	for _, d := range s.PerDay {
		ratio := 0.0
		if peak > 0 {
			ratio = float64(d.Count) / float64(peak)
		}
		sb.WriteString(fmt.Sprintf("%-8s %s %d\n", d.Day, bar(ratio, m.barW), d.Count))
	}

	sb.WriteString("\n" + theme.Title.Render("Waktu kuliah") + "\n")
	total := s.Morning + s.Afternoon + s.Evening
	for _, slot := range []struct {
		label string
		count int
	}{
		{"Pagi", s.Morning},
		{"Siang", s.Afternoon},
		{"Malam", s.Evening},
	} {
		ratio := 0.0
		if total > 0 {
			ratio = float64(slot.count) / float64(total)
		}
		sb.WriteString(fmt.Sprintf("%-8s %s %d\n", slot.label, bar(ratio, m.barW), slot.count))
	}
	return sb.String()
}

func bar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	filled = max(min(filled, width), 0)
	return lipgloss.NewStyle().Foreground(theme.Sapphire).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Surface0).Render(strings.Repeat("░", width-filled))
}
