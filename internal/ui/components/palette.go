package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jadwal/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// PaletteCommand describes one entry the palette can complete.
type PaletteCommand struct {
	Name string
	Args string
	Help string
}

// Commands must stay in sync with the switch in app/model.go executePalette.
var Commands = []PaletteCommand{
	{Name: "filter:day", Args: "<hari>", Help: "tampilkan satu hari"},
	{Name: "filter:lecturer", Args: "<dosen>", Help: "saring menurut dosen"},
	{Name: "filter:search", Args: "<teks>", Help: "cari nama, kode, atau dosen"},
	{Name: "filter:clear", Help: "hapus semua filter"},
	{Name: "view:cards", Help: "tampilan kartu"},
	{Name: "view:calendar", Help: "tampilan kalender mingguan"},
	{Name: "theme:dark", Help: "mode gelap"},
	{Name: "theme:light", Help: "mode terang"},
	{Name: "remind:test", Help: "kirim notifikasi uji"},
	{Name: "remind:mute", Help: "matikan pengingat"},
	{Name: "remind:unmute", Help: "nyalakan pengingat"},
	{Name: "export:pdf", Args: "[path]", Help: "unduh jadwal PDF"},
	{Name: "export:gcal", Help: "tambahkan ke Google Calendar"},
	{Name: "course:reindex", Help: "bangun ulang indeks"},
}

const maxSuggestions = 6

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the highlighted command and up/down move the highlight.
type Palette struct {
	input    textinput.Model
	visible  bool
	width    int
	selected int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "ketik perintah…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Value is the current, untrimmed input.
func (p Palette) Value() string { return p.input.Value() }

// Suggestions returns the commands whose name contains the first word of the
// input. Prefix matches sort first.
func (p Palette) Suggestions() []PaletteCommand {
	word := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	var prefixed, contained []PaletteCommand
	for _, c := range Commands {
		switch {
		case word == "" || strings.HasPrefix(c.Name, word):
			prefixed = append(prefixed, c)
		case strings.Contains(c.Name, word):
			contained = append(contained, c)
		}
	}
	out := append(prefixed, contained...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			p.complete()
			return p, nil
		case "up":
			p.selected = max(p.selected-1, 0)
			return p, nil
		case "down":
			p.selected = min(p.selected+1, max(len(p.Suggestions())-1, 0))
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// complete replaces the command word with the highlighted suggestion, keeping
// any argument already typed.
func (p *Palette) complete() {
	suggestions := p.Suggestions()
	if len(suggestions) == 0 {
		return
	}
	chosen := suggestions[min(p.selected, len(suggestions)-1)]
	rest := ""
	if _, after, ok := strings.Cut(strings.TrimLeft(p.input.Value(), " "), " "); ok {
		rest = after
	}
	value := chosen.Name
	if chosen.Args != "" || rest != "" {
		value += " " + rest
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.selected = 0
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Perintah") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if suggestions := p.Suggestions(); len(suggestions) > 0 {
		sb.WriteString("\n")
		for i, c := range suggestions {
			line := c.Name
			if c.Args != "" {
				line += " " + c.Args
			}
			if i == p.selected {
				sb.WriteString(theme.Hot.Render("› "+line) + theme.Muted.Render("  "+c.Help) + "\n")
				continue
			}
			sb.WriteString(theme.Muted.Render("  "+line) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(sb.String())
}
