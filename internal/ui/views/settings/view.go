package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	exportdto "jadwal/internal/modules/export/dto"
	reminderdto "jadwal/internal/modules/reminder/dto"
	settingsdto "jadwal/internal/modules/settings/dto"
	"jadwal/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type PreferencesPort interface {
	Show(ctx context.Context) (settingsdto.PreferencesOutput, error)
	DarkMode(ctx context.Context, enabled bool) (settingsdto.PreferencesOutput, error)
	MuteReminders(ctx context.Context, muted bool) (settingsdto.PreferencesOutput, error)
}

type ReminderPort interface {
	Test(ctx context.Context) (reminderdto.TestOutput, error)
	Doctor(ctx context.Context) (reminderdto.DoctorOutput, error)
}

type ExportPort interface {
	PDF(ctx context.Context, outPath string) (exportdto.PDFOutput, error)
	Calendar(ctx context.Context, open bool) (exportdto.CalendarOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// PrefsMsg carries preferences after a load or a change. The app model
// applies theme and reminder changes from it.
type PrefsMsg struct {
	Prefs   settingsdto.PreferencesOutput
	Changed bool
	Err     error
}

type TestDoneMsg struct {
	Out reminderdto.TestOutput
	Err error
}

type DoctorMsg struct {
	Out reminderdto.DoctorOutput
	Err error
}

type PDFDoneMsg struct {
	Out exportdto.PDFOutput
	Err error
}

type CalendarDoneMsg struct {
	Out exportdto.CalendarOutput
	Err error
}

// ─── keys ────────────────────────────────────────────────────────────────────

type KeyMap struct {
	Dark   key.Binding
	Mute   key.Binding
	Test   key.Binding
	PDF    key.Binding
	Cal    key.Binding
	Doctor key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		Dark:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "mode gelap")),
		Mute:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "bisukan pengingat")),
		Test:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tes notifikasi")),
		PDF:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "ekspor PDF")),
		Cal:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "Google Calendar")),
		Doctor: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "cek notifikasi")),
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	prefsPort  PreferencesPort
	remindPort ReminderPort
	exportPort ExportPort
	keys       KeyMap

	prefs   settingsdto.PreferencesOutput
	doctor  *reminderdto.DoctorOutput
	links   []exportdto.CalendarLink
	lastPDF string
	notice  string
	width   int
	height  int
}

func New(prefs PreferencesPort, remind ReminderPort, export ExportPort) Model {
	return Model{prefsPort: prefs, remindPort: remind, exportPort: export, keys: DefaultKeys()}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		if m.prefsPort == nil {
			return PrefsMsg{Err: errors.New("settings service not configured")}
		}
		out, err := m.prefsPort.Show(context.Background())
		return PrefsMsg{Prefs: out, Err: err}
	}
}

func (m Model) Prefs() settingsdto.PreferencesOutput { return m.prefs }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case PrefsMsg:
		if msg.Err != nil {
			m.notice = theme.Warn.Render("preferensi: " + msg.Err.Error())
			return m, nil
		}
		m.prefs = msg.Prefs

	case TestDoneMsg:
		m.notice = describeTest(msg)

	case DoctorMsg:
		if msg.Err != nil {
			m.notice = theme.Warn.Render("cek notifikasi: " + msg.Err.Error())
			return m, nil
		}
		out := msg.Out
		m.doctor = &out

	case PDFDoneMsg:
		if msg.Err != nil {
			m.notice = theme.Warn.Render("ekspor PDF gagal: " + msg.Err.Error())
			return m, nil
		}
		m.lastPDF = msg.Out.Path
		m.notice = theme.Ok.Render(fmt.Sprintf("PDF tersimpan: %s (%d kelas, %d halaman)", msg.Out.Path, msg.Out.Courses, msg.Out.Pages))

	case CalendarDoneMsg:
		if msg.Err != nil {
			m.notice = theme.Warn.Render("Google Calendar: " + msg.Err.Error())
			return m, nil
		}
		m.links = msg.Out.Links
		m.notice = theme.Ok.Render(fmt.Sprintf("%d tautan kalender dibuat", len(msg.Out.Links)))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Dark):
			return m, m.SetDarkMode(!m.prefs.DarkMode)
		case key.Matches(msg, m.keys.Mute):
			return m, m.SetMuted(!m.prefs.RemindersMuted)
		case key.Matches(msg, m.keys.Test):
			m.notice = theme.Muted.Render("mengirim notifikasi uji…")
			return m, m.TestNotification()
		case key.Matches(msg, m.keys.PDF):
			m.notice = theme.Muted.Render("membuat PDF…")
			return m, m.ExportPDF("")
		case key.Matches(msg, m.keys.Cal):
			return m, m.ExportCalendar(true)
		case key.Matches(msg, m.keys.Doctor):
			return m, m.RunDoctor()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Pengaturan") + "\n\n")
	sb.WriteString(toggle("Mode gelap", m.prefs.DarkMode, "d") + "\n")
	sb.WriteString(toggle("Bisukan pengingat", m.prefs.RemindersMuted, "m") + "\n")
	if m.prefs.Path != "" {
		sb.WriteString(theme.Muted.Render("disimpan di "+m.prefs.Path) + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Aksi") + "\n")
	for _, b := range []key.Binding{m.keys.Test, m.keys.Doctor, m.keys.PDF, m.keys.Cal} {
		sb.WriteString(theme.Hot.Render(b.Help().Key) + "  " + b.Help().Desc + "\n")
	}
	if m.notice != "" {
		sb.WriteString("\n" + m.notice + "\n")
	}

	if m.doctor != nil {
		sb.WriteString("\n" + theme.Title.Render("Saluran notifikasi") + "\n")
		for _, s := range m.doctor.Sinks {
			sb.WriteString(check(s.Ready) + " " + s.Name)
			if s.Error != "" {
				sb.WriteString("  " + theme.Muted.Render(s.Error))
			}
			sb.WriteString("\n")
		}
		for _, p := range m.doctor.Plugins {
			ok := p.Enabled && p.BinaryReachable && p.ChecksumValid && p.LifecycleOK
			sb.WriteString(check(ok) + " plugin " + p.Name)
			if p.Version != "" {
				sb.WriteString(" " + p.Version)
			}
			if p.Error != "" {
				sb.WriteString("  " + theme.Muted.Render(p.Error))
			}
			sb.WriteString("\n")
		}
	}

	if len(m.links) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Google Calendar") + "\n")
		for _, l := range m.links {
			mark := "·"
			if l.Opened {
				mark = theme.Ok.Render("✓")
			} else if l.Error != "" {
				mark = theme.Warn.Render("✗")
			}
			sb.WriteString(mark + " " + l.CourseName + "\n")
		}
	}
	return sb.String()
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) SetDarkMode(enabled bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.prefsPort.DarkMode(context.Background(), enabled)
		return PrefsMsg{Prefs: out, Changed: err == nil, Err: err}
	}
}

func (m Model) SetMuted(muted bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.prefsPort.MuteReminders(context.Background(), muted)
		return PrefsMsg{Prefs: out, Changed: err == nil, Err: err}
	}
}

func (m Model) TestNotification() tea.Cmd {
	return func() tea.Msg {
		if m.remindPort == nil {
			return TestDoneMsg{Err: errors.New("reminder service not configured")}
		}
		out, err := m.remindPort.Test(context.Background())
		return TestDoneMsg{Out: out, Err: err}
	}
}

func (m Model) RunDoctor() tea.Cmd {
	return func() tea.Msg {
		if m.remindPort == nil {
			return DoctorMsg{Err: errors.New("reminder service not configured")}
		}
		out, err := m.remindPort.Doctor(context.Background())
		return DoctorMsg{Out: out, Err: err}
	}
}

func (m Model) ExportPDF(outPath string) tea.Cmd {
	return func() tea.Msg {
		if m.exportPort == nil {
			return PDFDoneMsg{Err: errors.New("export service not configured")}
		}
		out, err := m.exportPort.PDF(context.Background(), outPath)
		return PDFDoneMsg{Out: out, Err: err}
	}
}

func (m Model) ExportCalendar(open bool) tea.Cmd {
	return func() tea.Msg {
		if m.exportPort == nil {
			return CalendarDoneMsg{Err: errors.New("export service not configured")}
		}
		out, err := m.exportPort.Calendar(context.Background(), open)
		return CalendarDoneMsg{Out: out, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func toggle(label string, on bool, k string) string {
	state := theme.Muted.Render("[ ] mati")
	if on {
		state = theme.Ok.Render("[x] aktif")
	}
	return fmt.Sprintf("%-20s %s  %s", label, state, theme.Muted.Render("("+k+")"))
}

func check(ok bool) string {
	if ok {
		return theme.Ok.Render("✓")
	}
	return theme.Warn.Render("✗")
}

func describeTest(msg TestDoneMsg) string {
	if msg.Err != nil {
		return theme.Warn.Render("notifikasi uji gagal: " + msg.Err.Error())
	}
	if len(msg.Out.Delivered) == 0 {
		return theme.Warn.Render("notifikasi uji tidak terkirim")
	}
	return theme.Ok.Render("notifikasi uji terkirim via " + strings.Join(msg.Out.Delivered, ", "))
}
