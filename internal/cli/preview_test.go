package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stepwall/pkg/core/classify"
	"github.com/matzehuels/stepwall/pkg/core/grid"
)

func press(m PreviewModel, keys ...string) PreviewModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(PreviewModel)
	}
	return m
}

func TestNewPreviewModel(t *testing.T) {
	m := NewPreviewModel(grid.DefaultConfig(), []int{12000, 3000, 10000}, 10000)

	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want today (2)", m.Cursor)
	}
	if len(m.States) != grid.DaysInYear {
		t.Errorf("states = %d, want %d", len(m.States), grid.DaysInYear)
	}
	if got := m.totalCells(); got != grid.DaysInYear {
		t.Errorf("grid cells = %d, want %d", got, grid.DaysInYear)
	}
	if m.States[2] != classify.Today {
		t.Errorf("day 3 = %v, want today", m.States[2])
	}

	empty := NewPreviewModel(grid.DefaultConfig(), nil, 10000)
	if empty.Cursor != 0 {
		t.Errorf("empty record cursor = %d, want 0", empty.Cursor)
	}
}

func TestPreviewModelHorizontalMoves(t *testing.T) {
	m := NewPreviewModel(grid.DefaultConfig(), []int{1, 2, 3}, 10)

	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"left", []string{"left"}, 1},
		{"h twice", []string{"h", "h"}, 0},
		{"clamped at day 1", []string{"left", "left", "left", "left"}, 0},
		{"right", []string{"right"}, 3},
		{"first", []string{"g"}, 0},
		{"today", []string{"g", "G"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := press(m, tt.keys...).Cursor; got != tt.want {
				t.Errorf("cursor after %v = %d, want %d", tt.keys, got, tt.want)
			}
		})
	}

	last := m
	last.Cursor = grid.DaysInYear - 1
	if got := press(last, "right").Cursor; got != grid.DaysInYear-1 {
		t.Errorf("cursor past the last day = %d", got)
	}
}

func TestPreviewModelVerticalMoves(t *testing.T) {
	m := NewPreviewModel(grid.DefaultConfig(), []int{1}, 10)

	tests := []struct {
		name   string
		cursor int
		keys   []string
		want   int
	}{
		{"down one row", 3, []string{"down"}, 18},
		{"up one row", 18, []string{"up"}, 3},
		{"up from top row", 3, []string{"k"}, 3},
		// row 21 is full (315..329), row 22 holds 13 cells indented by one
		{"down into taper", 315, []string{"j"}, 330},
		{"down into taper middle", 322, []string{"j"}, 336},
		// the last row holds two centered cells
		{"down into last row", 355, []string{"down"}, 363},
		{"down from last row", 364, []string{"down"}, 364},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := m
			m.Cursor = tt.cursor
			if got := press(m, tt.keys...).Cursor; got != tt.want {
				t.Errorf("cursor %d after %v = %d, want %d", tt.cursor, tt.keys, got, tt.want)
			}
		})
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := NewPreviewModel(grid.DefaultConfig(), []int{1}, 10)
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		if _, cmd := m.Update(msg); cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestPreviewModelView(t *testing.T) {
	m := NewPreviewModel(grid.DefaultConfig(), []int{12000, 3000, 10000}, 10000)
	view := m.View()

	for _, want := range []string{"Day 3", "10000 steps", "today", "goal 10000", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := strings.Count(view, glyphCursor); got != 1 {
		t.Errorf("view has %d cursor glyphs, want 1", got)
	}

	m = press(m, "right")
	if !strings.Contains(m.View(), "no data yet") {
		t.Error("a future day should read 'no data yet'")
	}
}

func TestPreviewStaticGrid(t *testing.T) {
	m := NewPreviewModel(grid.DefaultConfig(), []int{12000}, 10000)
	out := m.Static()

	if got := strings.Count(out, glyphDay); got != grid.DaysInYear+4 {
		t.Errorf("static output has %d day glyphs, want %d (days plus legend)", got, grid.DaysInYear+4)
	}
	if strings.Contains(out, glyphCursor) {
		t.Error("static output should not mark a cursor")
	}

	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], glyphDay) {
		t.Errorf("first row should start at the margin: %q", lines[0])
	}
	if !strings.HasPrefix(lines[22], "  "+glyphDay) {
		t.Errorf("first tapered row should be indented by one cell: %q", lines[22])
	}
}
