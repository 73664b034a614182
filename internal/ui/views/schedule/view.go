package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	statusdto "jadwal/internal/modules/status/dto"
	timetabledto "jadwal/internal/modules/timetable/dto"
	"jadwal/internal/ui/components"
	"jadwal/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SchedulePort interface {
	Board(ctx context.Context, at time.Time, day, lecturer, search string) (statusdto.BoardOutput, error)
	Show(ctx context.Context, id string) (timetabledto.CourseDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BoardLoadedMsg struct {
	Board statusdto.BoardOutput
	Err   error
}

type DetailLoadedMsg struct {
	Detail timetabledto.CourseDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	status statusdto.CourseStatus
}

func (i courseItem) Title() string {
	title := i.status.Course.Name
	if badge := components.StatusBadge(i.status.Kind, i.status.Label); badge != "" {
		title += "  " + badge
	}
	return title
}

func (i courseItem) Description() string {
	c := i.status.Course
	return fmt.Sprintf("%s %s  ·  %s  ·  %s", c.Day, c.Time, c.Room, c.Lecturer)
}

func (i courseItem) FilterValue() string {
	c := i.status.Course
	return c.Name + " " + c.Code + " " + c.Lecturer
}

// ─── model ───────────────────────────────────────────────────────────────────

type Mode int

const (
	ModeCards Mode = iota
	ModeCalendar
)

// Filters narrows the board. Empty fields match everything.
type Filters struct {
	Day      string
	Lecturer string
	Search   string
}

func (f Filters) String() string {
	var parts []string
	if f.Day != "" {
		parts = append(parts, "hari="+f.Day)
	}
	if f.Lecturer != "" {
		parts = append(parts, "dosen="+f.Lecturer)
	}
	if f.Search != "" {
		parts = append(parts, "cari="+f.Search)
	}
	return strings.Join(parts, " ")
}

var weekColumns = []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

type Model struct {
	port     SchedulePort
	list     list.Model
	courses  []statusdto.CourseStatus
	detail   timetabledto.CourseDetailOutput
	preview  viewport.Model
	calendar viewport.Model
	renderer *glamour.TermRenderer
	spinner  spinner.Model
	filters  Filters
	mode     Mode
	at       time.Time
	loading  bool
	err      error
	width    int
	height   int
}

func New(port SchedulePort) Model {
	l := list.New(nil, newDelegate(), 0, 0)
	l.Title = "Jadwal"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		port:     port,
		list:     l,
		preview:  viewport.New(0, 0),
		calendar: viewport.New(0, 0),
		spinner:  sp,
		loading:  true,
	}
	m.restylePanes()
	return m
}

func newDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	return delegate
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoardCmd(time.Time{}), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BoardLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.list.Title = "Jadwal: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Jadwal"
		if f := m.filters.String(); f != "" {
			m.list.Title += " (" + f + ")"
		}
		prevID, _ := m.SelectedCourseID()
		m.at = msg.Board.At
		m.courses = msg.Board.Courses
		items := make([]list.Item, len(msg.Board.Courses))
		selected := 0
		for i, cs := range msg.Board.Courses {
			items[i] = courseItem{status: cs}
			if cs.Course.ID == prevID {
				selected = i
			}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Select(selected)
		m.calendar.SetContent(m.renderCalendar())
		if id, ok := m.SelectedCourseID(); ok {
			cmds = append(cmds, m.loadDetailCmd(id))
		} else {
			m.detail = timetabledto.CourseDetailOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
		}
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "v" {
			m.ToggleMode()
			return m, nil
		}
	}

	if !m.loading {
		if m.mode == ModeCalendar {
			var cmd tea.Cmd
			m.calendar, cmd = m.calendar.Update(msg)
			cmds = append(cmds, cmd)
			return m, tea.Batch(cmds...)
		}
		prevIdx := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if id, ok := m.SelectedCourseID(); ok {
				cmds = append(cmds, m.loadDetailCmd(id))
			}
		}
		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Memuat jadwal…")
	}
	if m.mode == ModeCalendar {
		return m.calendar.View()
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Refresh reloads the board with the current filters as of at.
func (m Model) Refresh(at time.Time) tea.Cmd {
	return m.loadBoardCmd(at)
}

// SetFilter replaces one filter field and reloads. Field is one of day,
// lecturer or search.
func (m *Model) SetFilter(field, value string) (tea.Cmd, error) {
	value = strings.TrimSpace(value)
	switch field {
	case "day":
		m.filters.Day = value
	case "lecturer":
		m.filters.Lecturer = value
	case "search":
		m.filters.Search = value
	default:
		return nil, fmt.Errorf("unknown filter %q", field)
	}
	return m.loadBoardCmd(time.Time{}), nil
}

func (m *Model) ClearFilters() tea.Cmd {
	m.filters = Filters{}
	return m.loadBoardCmd(time.Time{})
}

func (m Model) Filters() Filters { return m.filters }

func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	m.calendar.SetContent(m.renderCalendar())
}

func (m *Model) ToggleMode() {
	if m.mode == ModeCards {
		m.SetMode(ModeCalendar)
		return
	}
	m.SetMode(ModeCards)
}

func (m Model) Mode() Mode { return m.mode }

func (m Model) Courses() []statusdto.CourseStatus { return m.courses }

// SelectedCourseID returns the highlighted course in card mode.
func (m Model) SelectedCourseID() (string, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.status.Course.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Restyle rebuilds styles and the markdown renderer after a theme switch.
func (m *Model) Restyle() {
	m.list.SetDelegate(newDelegate())
	m.list.Styles.Title = theme.Title
	m.spinner.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	m.restylePanes()
	m.preview.SetContent(m.renderDetail())
	m.calendar.SetContent(m.renderCalendar())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) restylePanes() {
	m.preview.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	m.rebuildRenderer()
}

func (m *Model) rebuildRenderer() {
	wrap := m.preview.Width - 2
	if wrap < 20 {
		wrap = 20
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(theme.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.renderer = r
	}
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = max(detailW-4, 1)
	m.preview.Height = max(m.height-4, 1)
	m.calendar.Width = m.width
	m.calendar.Height = max(m.height, 1)
	m.rebuildRenderer()
	m.preview.SetContent(m.renderDetail())
	m.calendar.SetContent(m.renderCalendar())
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Pilih mata kuliah untuk melihat detail")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Name) + "\n\n")
	row := func(label, value string) {
		if value != "" {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-9s", label)) + value + "\n")
		}
	}
	row("kode:", d.Code)
	row("kelas:", d.Class)
	row("waktu:", d.Day.String()+" "+d.Time.String())
	row("ruang:", d.Room)
	row("dosen:", d.Lecturer)
	row("sks:", fmt.Sprintf("%d", d.Credits))
	row("fakultas:", d.Faculty)
	row("catatan:", d.NotePath)

	notes := strings.TrimSpace(d.Notes)
	if notes == "" {
		sb.WriteString("\n" + theme.Muted.Render("Belum ada catatan."))
		return sb.String()
	}
	sb.WriteString("\n")
	if m.renderer != nil {
		if out, err := m.renderer.Render(notes); err == nil {
			sb.WriteString(out)
			return sb.String()
		}
	}
	sb.WriteString(notes)
	return sb.String()
}

// renderCalendar lays the week out as one column per teaching day, each
// column holding that day's classes in start order.
func (m Model) renderCalendar() string {
	if len(m.courses) == 0 {
		return theme.Muted.Render("Tidak ada kelas yang cocok dengan filter.")
	}
	byDay := map[string][]statusdto.CourseStatus{}
	for _, cs := range m.courses {
		day := cs.Course.Day.String()
		byDay[day] = append(byDay[day], cs)
	}

	width := m.width
	if width <= 0 {
		width = 120
	}
	colW := max(width/len(weekColumns)-1, 12)
	today := ""
	if !m.at.IsZero() {
		today = weekdayName(m.at.Weekday())
	}

	columns := make([]string, 0, len(weekColumns))
	for _, day := range weekColumns {
		entries := byDay[day]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Course.Time.Start.Minutes() < entries[j].Course.Time.Start.Minutes()
		})
		header := theme.Title.Render(day)
		if day == today {
			header = theme.Hot.Render(day + " •")
		}
		var cells []string
		cells = append(cells, header)
		for _, cs := range entries {
			body := cs.Course.Time.String() + "\n" + cs.Course.Name + "\n" + theme.Muted.Render(cs.Course.Room)
			if badge := components.StatusBadge(cs.Kind, cs.Label); badge != "" && cs.Kind != "not-today" {
				body += "\n" + badge
			}
			cells = append(cells, lipgloss.NewStyle().
				Width(colW-2).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(borderFor(cs.Kind)).
				Render(body))
		}
		if len(entries) == 0 {
			cells = append(cells, theme.Muted.Render("-"))
		}
		columns = append(columns, lipgloss.NewStyle().Width(colW).Render(lipgloss.JoinVertical(lipgloss.Left, cells...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func borderFor(kind string) lipgloss.Color {
	switch kind {
	case "ongoing":
		return theme.Green
	case "upcoming":
		return theme.Peach
	case "today":
		return theme.Sapphire
	default:
		return theme.Surface1
	}
}

func weekdayName(w time.Weekday) string {
	if w == time.Sunday {
		return "Minggu"
	}
	return weekColumns[int(w)-1]
}

func (m Model) loadBoardCmd(at time.Time) tea.Cmd {
	filters := m.filters
	return func() tea.Msg {
		if m.port == nil {
			return BoardLoadedMsg{Err: fmt.Errorf("schedule service not configured")}
		}
		board, err := m.port.Board(context.Background(), at, filters.Day, filters.Lecturer, filters.Search)
		return BoardLoadedMsg{Board: board, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Show(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
