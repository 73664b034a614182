package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"jadwal/internal/ui/components"
)

func TestPaletteSubmitsTypedCommand(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	if !p.Visible() {
		t.Fatalf("expected palette to be visible after open")
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("filter:day kamis")})
	if view := p.View(); !strings.Contains(view, "Perintah") {
		t.Fatalf("expected palette title in view, got %q", view)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("expected palette to close on enter")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "filter:day kamis" {
		t.Fatalf("unexpected submit message %#v", msg)
	}
}

func TestPaletteCancel(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("expected palette to close on esc")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}

func typeInto(p components.Palette, s string) components.Palette {
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return p
}

func TestPaletteSuggestionsPreferPrefix(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "cal")
	got := p.Suggestions()
	if len(got) != 2 || got[0].Name != "view:calendar" || got[1].Name != "export:gcal" {
		t.Fatalf("unexpected suggestions %+v", got)
	}
	if len(components.NewPalette().Suggestions()) == 0 {
		t.Fatalf("empty input should list commands")
	}
}

func TestPaletteTabCompletesKeepingArgument(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "filter:l kamis")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.Value() != "filter:lecturer kamis" {
		t.Fatalf("unexpected completion %q", p.Value())
	}
}

func TestPaletteArrowSelectsSuggestion(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "theme")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.Value() != "theme:light" {
		t.Fatalf("expected second suggestion, got %q", p.Value())
	}
	if !strings.Contains(p.View(), "Perintah") {
		t.Fatalf("palette should still be open")
	}
}
