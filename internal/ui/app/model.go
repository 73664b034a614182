package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	exportdto "jadwal/internal/modules/export/dto"
	reminderdto "jadwal/internal/modules/reminder/dto"
	settingsdto "jadwal/internal/modules/settings/dto"
	statsdto "jadwal/internal/modules/stats/dto"
	statusdto "jadwal/internal/modules/status/dto"
	timetabledto "jadwal/internal/modules/timetable/dto"
	"jadwal/internal/ui/components"
	"jadwal/internal/ui/theme"
	scheduleview "jadwal/internal/ui/views/schedule"
	settingsview "jadwal/internal/ui/views/settings"
	statsview "jadwal/internal/ui/views/stats"
	todayview "jadwal/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type timetablePort interface {
	Show(ctx context.Context, id string) (timetabledto.CourseDetailOutput, error)
	Reindex(ctx context.Context) error
}

type statusPort interface {
	Today(ctx context.Context, at time.Time) (statusdto.TodayOutput, error)
	Board(ctx context.Context, at time.Time, day, lecturer, search string) (statusdto.BoardOutput, error)
}

type statsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

type settingsPort interface {
	Show(ctx context.Context) (settingsdto.PreferencesOutput, error)
	DarkMode(ctx context.Context, enabled bool) (settingsdto.PreferencesOutput, error)
	MuteReminders(ctx context.Context, muted bool) (settingsdto.PreferencesOutput, error)
}

type reminderPort interface {
	Test(ctx context.Context) (reminderdto.TestOutput, error)
	Doctor(ctx context.Context) (reminderdto.DoctorOutput, error)
}

type exportPort interface {
	PDF(ctx context.Context, outPath string) (exportdto.PDFOutput, error)
	Calendar(ctx context.Context, open bool) (exportdto.CalendarOutput, error)
}

// Daemon switches the in-process reminder scheduler on and off.
type Daemon interface {
	SetEnabled(enabled bool)
}

// Ports bundles the module handlers the TUI drives. Nil ports leave the
// matching view in an error state.
type Ports struct {
	Timetable timetablePort
	Status    statusPort
	Stats     statsPort
	Settings  settingsPort
	Reminder  reminderPort
	Export    exportPort
	Daemon    Daemon
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabSchedule
	tabStats
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{
	"Hari Ini", "Jadwal", "Statistik", "Pengaturan",
}

// ─── async messages ───────────────────────────────────────────────────────────

type minuteMsg struct{ at time.Time }

type reindexedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Jump    key.Binding
	Mode    key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Setting settingsview.KeyMap
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "ganti tab")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "lompat ke tab")),
		Mode:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "kartu/kalender")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "bantuan")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palet perintah")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "keluar")),
		Setting: settingsview.DefaultKeys(),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	s := k.Setting
	return [][]key.Binding{
		{k.Tab, k.Jump, k.Mode},
		{s.Dark, s.Mute, s.Test},
		{s.PDF, s.Cal, s.Doctor},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the minute
// refresh tick, the help overlay and the command palette.
type Model struct {
	ports Ports

	todayView    todayview.Model
	scheduleView scheduleview.Model
	statsView    statsview.Model
	settingsView settingsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(ports Ports) Model {
	var today todayview.TodayPort
	var board scheduleview.SchedulePort
	if ports.Status != nil {
		today = ports.Status
		if ports.Timetable != nil {
			board = schedulePortBridge{status: ports.Status, timetable: ports.Timetable}
		}
	}
	var summary statsview.StatsPort
	if ports.Stats != nil {
		summary = ports.Stats
	}
	var prefs settingsview.PreferencesPort
	if ports.Settings != nil {
		prefs = ports.Settings
	}
	var remind settingsview.ReminderPort
	if ports.Reminder != nil {
		remind = ports.Reminder
	}
	var export settingsview.ExportPort
	if ports.Export != nil {
		export = ports.Export
	}

	return Model{
		ports:        ports,
		todayView:    todayview.New(today),
		scheduleView: scheduleview.New(board),
		statsView:    statsview.New(summary),
		settingsView: settingsview.New(prefs, remind, export),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "siap",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.scheduleView.Init(),
		m.statsView.Init(),
		m.settingsView.Init(),
		minuteTick(time.Now()),
	)
}

// minuteTick fires on the next wall-clock minute boundary so status badges
// flip exactly when a class starts or ends.
func minuteTick(now time.Time) tea.Cmd {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return minuteMsg{at: t}
	})
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case spinner.TickMsg:
		var todayCmd, scheduleCmd tea.Cmd
		m.todayView, todayCmd = m.todayView.Update(msg)
		m.scheduleView, scheduleCmd = m.scheduleView.Update(msg)
		return m, tea.Batch(append(cmds, todayCmd, scheduleCmd)...)

	case minuteMsg:
		return m, tea.Batch(
			m.todayView.Refresh(time.Time{}),
			m.scheduleView.Refresh(time.Time{}),
			minuteTick(msg.at),
		)

	// Loaded messages always reach their own view, whichever tab is active.
	case todayview.LoadedMsg:
		var cmd tea.Cmd
		m.todayView, cmd = m.todayView.Update(msg)
		return m, cmd

	case scheduleview.BoardLoadedMsg, scheduleview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.scheduleView, cmd = m.scheduleView.Update(msg)
		return m, cmd

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case settingsview.PrefsMsg:
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		if msg.Err != nil {
			m.status = "preferensi: " + msg.Err.Error()
			return m, cmd
		}
		m.applyPrefs(msg.Prefs)
		if msg.Changed {
			m.status = "preferensi disimpan"
		}
		return m, cmd

	case settingsview.TestDoneMsg, settingsview.DoctorMsg, settingsview.CalendarDoneMsg:
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		m.status = describe(msg)
		return m, cmd

	case settingsview.PDFDoneMsg:
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		m.status = describe(msg)
		return m, cmd

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex gagal: " + msg.err.Error()
			return m, nil
		}
		m.status = "indeks mata kuliah diperbarui"
		return m, tea.Batch(
			m.todayView.Refresh(time.Time{}),
			m.scheduleView.Refresh(time.Time{}),
			m.statsView.Refresh(),
		)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "siap"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "1", "2", "3", "4":
			m.activeTab = tabID(msg.String()[0] - '1')
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Everything else goes to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabSchedule:
		m.scheduleView, tabCmd = m.scheduleView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabSettings:
		m.settingsView, tabCmd = m.settingsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabSchedule:
		return m.scheduleView.View()
	case tabStats:
		return m.statsView.View()
	case tabSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d %s", i+1, tabLabels[i])
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "jadwal  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if ongoing, ok := m.todayView.Ongoing(); ok {
		left = theme.Ok.Render("● "+ongoing.Course.Name) + "  " + left
	}
	if m.settingsView.Prefs().RemindersMuted {
		left = theme.Muted.Render("[bisu]") + " " + left
	}
	right := theme.Muted.Render("?:bantuan  tab:pindah  :::palet  q:keluar")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))

	switch parts[0] {
	case "filter:day", "filter:lecturer", "filter:search":
		if rest == "" {
			m.status = "usage: " + parts[0] + " <nilai>"
			return m, nil
		}
		cmd, err := m.scheduleView.SetFilter(strings.TrimPrefix(parts[0], "filter:"), rest)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabSchedule
		m.status = "filter: " + m.scheduleView.Filters().String()
		return m, cmd

	case "filter:clear":
		m.activeTab = tabSchedule
		m.status = "filter dihapus"
		return m, m.scheduleView.ClearFilters()

	case "view:cards":
		m.scheduleView.SetMode(scheduleview.ModeCards)
		m.activeTab = tabSchedule
		return m, nil

	case "view:calendar":
		m.scheduleView.SetMode(scheduleview.ModeCalendar)
		m.activeTab = tabSchedule
		return m, nil

	case "theme:dark":
		return m, m.settingsView.SetDarkMode(true)

	case "theme:light":
		return m, m.settingsView.SetDarkMode(false)

	case "remind:test":
		m.status = "mengirim notifikasi uji…"
		return m, m.settingsView.TestNotification()

	case "remind:mute":
		return m, m.settingsView.SetMuted(true)

	case "remind:unmute":
		return m, m.settingsView.SetMuted(false)

	case "export:pdf":
		m.status = "membuat PDF…"
		return m, m.settingsView.ExportPDF(rest)

	case "export:gcal":
		m.activeTab = tabSettings
		return m, m.settingsView.ExportCalendar(true)

	case "course:reindex":
		m.status = "memindai ulang catatan…"
		return m, m.reindexCmd()

	default:
		m.status = "perintah tidak dikenal: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) applyPrefs(prefs settingsdto.PreferencesOutput) {
	if theme.Dark() != prefs.DarkMode {
		theme.Use(prefs.DarkMode)
		m.todayView.Restyle()
		m.scheduleView.Restyle()
	}
	if m.ports.Daemon != nil {
		m.ports.Daemon.SetEnabled(!prefs.RemindersMuted)
	}
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	return m.activeTab == tabSchedule && m.scheduleView.Filtering()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.scheduleView, _ = m.scheduleView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		if m.ports.Timetable == nil {
			return reindexedMsg{err: fmt.Errorf("timetable service not configured")}
		}
		return reindexedMsg{err: m.ports.Timetable.Reindex(context.Background())}
	}
}

func describe(msg tea.Msg) string {
	switch msg := msg.(type) {
	case settingsview.TestDoneMsg:
		if msg.Err != nil {
			return "notifikasi uji gagal: " + msg.Err.Error()
		}
		return "notifikasi uji terkirim via " + strings.Join(msg.Out.Delivered, ", ")
	case settingsview.DoctorMsg:
		if msg.Err != nil {
			return "cek notifikasi gagal: " + msg.Err.Error()
		}
		ready := 0
		for _, s := range msg.Out.Sinks {
			if s.Ready {
				ready++
			}
		}
		return fmt.Sprintf("%d dari %d saluran siap", ready, len(msg.Out.Sinks))
	case settingsview.PDFDoneMsg:
		if msg.Err != nil {
			return "ekspor PDF gagal: " + msg.Err.Error()
		}
		return "PDF tersimpan: " + msg.Out.Path
	case settingsview.CalendarDoneMsg:
		if msg.Err != nil {
			return "Google Calendar: " + msg.Err.Error()
		}
		return fmt.Sprintf("%d acara dibuka di Google Calendar", len(msg.Out.Links))
	}
	return ""
}

// ─── port bridges ─────────────────────────────────────────────────────────────

// schedulePortBridge joins the status board with timetable detail lookups
// for the schedule view.
type schedulePortBridge struct {
	status    statusPort
	timetable timetablePort
}

func (b schedulePortBridge) Board(ctx context.Context, at time.Time, day, lecturer, search string) (statusdto.BoardOutput, error) {
	return b.status.Board(ctx, at, day, lecturer, search)
}

func (b schedulePortBridge) Show(ctx context.Context, id string) (timetabledto.CourseDetailOutput, error) {
	return b.timetable.Show(ctx, id)
}
