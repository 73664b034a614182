package today

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statusdto "jadwal/internal/modules/status/dto"
	"jadwal/internal/ui/components"
	"jadwal/internal/ui/theme"
)

type TodayPort interface {
	Today(ctx context.Context, at time.Time) (statusdto.TodayOutput, error)
}

type LoadedMsg struct {
	Out statusdto.TodayOutput
	Err error
}

type Model struct {
	port    TodayPort
	out     statusdto.TodayOutput
	err     error
	body    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port TodayPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:    port,
		body:    viewport.New(0, 0),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(time.Time{}), m.spinner.Tick)
}

// Refresh reloads today's statuses as of at; a zero at means now.
func (m Model) Refresh(at time.Time) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("status service not configured")}
		}
		out, err := m.port.Today(context.Background(), at)
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height-1, 1)
		m.body.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.out = msg.Out
		}
		m.body.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Memuat jadwal hari ini…")
	}
	return m.body.View()
}

// Ongoing returns the class running right now, if any.
func (m Model) Ongoing() (statusdto.CourseStatus, bool) {
	if m.out.Ongoing == nil {
		return statusdto.CourseStatus{}, false
	}
	return *m.out.Ongoing, true
}

// Restyle re-renders content after a theme switch.
func (m *Model) Restyle() {
	m.spinner.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	m.body.SetContent(m.render())
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Warn.Render("Gagal memuat: " + m.err.Error())
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Hari ini, "+m.out.Day) + "  ")
	sb.WriteString(theme.Muted.Render(m.out.At.Format("15:04")) + "\n\n")

	width := m.width
	if width <= 0 {
		width = 80
	}
	highlight := func(title string, cs *statusdto.CourseStatus) string {
		if cs == nil {
			return ""
		}
		text := theme.Muted.Render(title) + "\n" +
			theme.Hot.Render(cs.Course.Name) + "  " + components.StatusBadge(cs.Kind, cs.Label) + "\n" +
			cs.Course.Time.String() + "  " + cs.Course.Room + "\n" +
			theme.Muted.Render(cs.Course.Lecturer)
		return theme.Pane.Width(max(width/2-4, 20)).Render(text)
	}
	cards := []string{}
	if s := highlight("Sedang berlangsung", m.out.Ongoing); s != "" {
		cards = append(cards, s)
	}
	if s := highlight("Berikutnya", m.out.Next); s != "" {
		cards = append(cards, s)
	}
	if len(cards) > 0 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")
	}

	if len(m.out.Courses) == 0 {
		sb.WriteString(theme.Muted.Render("Tidak ada kelas hari ini."))
		return sb.String()
	}
	for _, cs := range m.out.Courses {
		line := fmt.Sprintf("%-11s  %-34s  %-12s", cs.Course.Time.String(), truncate(cs.Course.Name, 34), truncate(cs.Course.Room, 12))
		if cs.Kind == "finished" {
			line = theme.Muted.Render(line)
		}
		sb.WriteString(line + "  " + components.StatusBadge(cs.Kind, cs.Label) + "\n")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
