package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalkeys/internal/input/key"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), key.Char('d')},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), key.Char('D')},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), key.Char('3')},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.Named(key.Space)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Named(key.Escape)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Named(key.Return)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.Named(key.Tab)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.Event{Name: key.Tab, Shift: true}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Named(key.Backspace)},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.Named(key.Up)},
		{"shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), key.Event{Name: key.Up, Shift: true}},
		{"f2", tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone), key.Named(key.F2)},
		{"ctrl r", tcell.NewEventKey(tcell.KeyCtrlR, rune(tcell.KeyCtrlR), tcell.ModCtrl), key.Ctrl('r')},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModCtrl), key.Ctrl('r')},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), key.Event{Name: "x", Alt: true}},
		{"meta rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModMeta), key.Event{Name: "x", Alt: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTcell(tt.ev); got != tt.want {
				t.Errorf("FromTcell() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTcellRoundTrip(t *testing.T) {
	specs := []string{
		"a", "Z", "0", "$", "/", "<Esc>", "<CR>", "<Tab>", "<BS>", "<Del>",
		"<Home>", "<End>", "<PageUp>", "<PageDown>", "<Left>", "<Right>",
		"<F1>", "<F12>", "<C-r>", "<C-c>", "<C-q>", "<A-j>", "<Space>", "<S-Up>",
	}

	for _, spec := range specs {
		ev := key.MustParse(spec)
		tev := ToTcell(ev)
		if tev == nil {
			t.Errorf("ToTcell(%s) = nil", spec)
			continue
		}
		if got := FromTcell(tev); got != ev {
			t.Errorf("round trip %s = %#v, want %#v", spec, got, ev)
		}
	}
}

func TestToTcellZeroEvent(t *testing.T) {
	if ev := ToTcell(key.Event{}); ev != nil {
		t.Errorf("ToTcell(zero) = %v, want nil", ev)
	}
}
