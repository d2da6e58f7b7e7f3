package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalkeys/internal/input/key"
)

// namedKeys maps tcell special keys to key names. Keys that share a code
// with a control letter (Tab is Ctrl+I, Enter is Ctrl+M, Backspace is
// Ctrl+H) are listed here and win over the control-letter range.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEscape:     key.Escape,
	tcell.KeyEnter:      key.Return,
	tcell.KeyTab:        key.Tab,
	tcell.KeyBacktab:    key.Tab,
	tcell.KeyBackspace:  key.Backspace,
	tcell.KeyBackspace2: key.Backspace,
	tcell.KeyDelete:     key.Delete,
	tcell.KeyInsert:     key.Insert,
	tcell.KeyHome:       key.Home,
	tcell.KeyEnd:        key.End,
	tcell.KeyPgUp:       key.PageUp,
	tcell.KeyPgDn:       key.PageDown,
	tcell.KeyUp:         key.Up,
	tcell.KeyDown:       key.Down,
	tcell.KeyLeft:       key.Left,
	tcell.KeyRight:      key.Right,
	tcell.KeyF1:         key.F1,
	tcell.KeyF2:         key.F2,
	tcell.KeyF3:         key.F3,
	tcell.KeyF4:         key.F4,
	tcell.KeyF5:         key.F5,
	tcell.KeyF6:         key.F6,
	tcell.KeyF7:         key.F7,
	tcell.KeyF8:         key.F8,
	tcell.KeyF9:         key.F9,
	tcell.KeyF10:        key.F10,
	tcell.KeyF11:        key.F11,
	tcell.KeyF12:        key.F12,
}

// tcellKeys is the reverse of namedKeys, used when posting synthetic events.
var tcellKeys = map[string]tcell.Key{
	key.Escape:    tcell.KeyEscape,
	key.Return:    tcell.KeyEnter,
	key.Tab:       tcell.KeyTab,
	key.Backspace: tcell.KeyBackspace2,
	key.Delete:    tcell.KeyDelete,
	key.Insert:    tcell.KeyInsert,
	key.Home:      tcell.KeyHome,
	key.End:       tcell.KeyEnd,
	key.PageUp:    tcell.KeyPgUp,
	key.PageDown:  tcell.KeyPgDn,
	key.Up:        tcell.KeyUp,
	key.Down:      tcell.KeyDown,
	key.Left:      tcell.KeyLeft,
	key.Right:     tcell.KeyRight,
	key.F1:        tcell.KeyF1,
	key.F2:        tcell.KeyF2,
	key.F3:        tcell.KeyF3,
	key.F4:        tcell.KeyF4,
	key.F5:        tcell.KeyF5,
	key.F6:        tcell.KeyF6,
	key.F7:        tcell.KeyF7,
	key.F8:        tcell.KeyF8,
	key.F9:        tcell.KeyF9,
	key.F10:       tcell.KeyF10,
	key.F11:       tcell.KeyF11,
	key.F12:       tcell.KeyF12,
}

// FromTcell converts a tcell key event into a key.Event.
// Keys with no name in the vocabulary yield the zero Event.
func FromTcell(ev *tcell.EventKey) key.Event {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return key.NewEvent(key.Space, mods.Without(key.ModShift))
		}
		out := key.Char(r)
		if mods.Has(key.ModCtrl) {
			out = key.Ctrl(r)
		}
		out.Alt = mods.Has(key.ModAlt)
		return out
	}

	if name, ok := namedKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods = mods.With(key.ModShift)
		}
		// tcell reports ModCtrl on the control-code aliases, drop it
		if k == tcell.KeyEnter || k == tcell.KeyTab || k == tcell.KeyBackspace || k == tcell.KeyEscape {
			mods = mods.Without(key.ModCtrl)
		}
		return key.NewEvent(name, mods)
	}

	switch {
	case k == tcell.KeyCtrlSpace:
		return key.NewEvent(key.Space, mods.With(key.ModCtrl))
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		out := key.Ctrl(r)
		out.Alt = mods.Has(key.ModAlt)
		return out
	}

	return key.Event{}
}

// ToTcell converts a key.Event into a tcell key event. It returns nil for
// the zero Event.
func ToTcell(ev key.Event) *tcell.EventKey {
	if ev.Name == "" {
		return nil
	}

	var mod tcell.ModMask
	if ev.Alt {
		mod |= tcell.ModAlt
	}

	if k, ok := tcellKeys[ev.Name]; ok {
		if ev.Ctrl {
			mod |= tcell.ModCtrl
		}
		if ev.Shift {
			mod |= tcell.ModShift
		}
		return tcell.NewEventKey(k, 0, mod)
	}

	if ev.Name == key.Space {
		if ev.Ctrl {
			return tcell.NewEventKey(tcell.KeyCtrlSpace, 0, mod|tcell.ModCtrl)
		}
		return tcell.NewEventKey(tcell.KeyRune, ' ', mod)
	}

	r := ev.Rune()
	if r == 0 {
		return nil
	}
	if ev.Ctrl {
		lower := unicode.ToLower(r)
		if lower >= 'a' && lower <= 'z' {
			k := tcell.KeyCtrlA + tcell.Key(lower-'a')
			return tcell.NewEventKey(k, rune(k), mod|tcell.ModCtrl)
		}
		mod |= tcell.ModCtrl
	}
	return tcell.NewEventKey(tcell.KeyRune, r, mod)
}

func convertMod(m tcell.ModMask) key.Modifier {
	mods := key.ModNone
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 || m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	return mods
}
