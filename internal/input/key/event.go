package key

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Event is a single decoded key press.
type Event struct {
	// Name identifies the logical key: a canonical named key or a literal character.
	Name string

	// Ctrl, Alt and Shift report the modifier state.
	Ctrl  bool
	Alt   bool
	Shift bool
}

// NewEvent creates an event from a key name and a modifier set.
func NewEvent(name string, mods Modifier) Event {
	return Event{
		Name:  Normalize(name),
		Ctrl:  mods.Has(ModCtrl),
		Alt:   mods.Has(ModAlt),
		Shift: mods.Has(ModShift),
	}
}

// Char creates an unmodified event for a character. Uppercase letters get
// Shift set, matching what a key source reports.
func Char(r rune) Event {
	if r == ' ' {
		return Event{Name: Space}
	}
	return Event{Name: string(r), Shift: unicode.IsUpper(r)}
}

// Ctrl creates a Ctrl+<r> event. Letters are lowercased.
func Ctrl(r rune) Event {
	return Event{Name: string(unicode.ToLower(r)), Ctrl: true}
}

// Named creates an unmodified event for a named key.
func Named(name string) Event {
	return Event{Name: Normalize(name)}
}

// Modifiers returns the modifier flags as a bit set.
func (e Event) Modifiers() Modifier {
	var m Modifier
	if e.Ctrl {
		m = m.With(ModCtrl)
	}
	if e.Alt {
		m = m.With(ModAlt)
	}
	if e.Shift {
		m = m.With(ModShift)
	}
	return m
}

// Rune returns the character of a literal-character event, or 0.
func (e Event) Rune() rune {
	r, size := utf8.DecodeRuneInString(e.Name)
	if size == 0 || size != len(e.Name) || r == utf8.RuneError {
		return 0
	}
	return r
}

// IsChar returns true if the event names a single literal character.
func (e Event) IsChar() bool {
	return e.Rune() != 0
}

// IsModified returns true if Ctrl or Alt is held. Shift alone does not
// count for characters since it is already reflected in the character.
func (e Event) IsModified() bool {
	if e.IsChar() {
		return e.Ctrl || e.Alt
	}
	return e.Ctrl || e.Alt || e.Shift
}

// IsEscape returns true for the Escape key regardless of modifiers.
func (e Event) IsEscape() bool {
	return e.Name == Escape
}

// Is reports whether the event is the unmodified literal character r.
func (e Event) Is(r rune) bool {
	return !e.Ctrl && !e.Alt && e.Rune() == r
}

// IsCtrl reports whether the event is Ctrl+r (no Alt).
func (e Event) IsCtrl(r rune) bool {
	return e.Ctrl && !e.Alt && unicode.ToLower(e.Rune()) == unicode.ToLower(r)
}

// String returns a Vim-style representation: "d", "D", "<C-r>", "<Esc>".
func (e Event) String() string {
	if e.IsChar() && !e.IsModified() {
		return e.Name
	}

	var parts []string
	if e.Ctrl {
		parts = append(parts, "C")
	}
	if e.Alt {
		parts = append(parts, "A")
	}
	if e.Shift && !e.IsChar() {
		parts = append(parts, "S")
	}

	var name string
	switch e.Name {
	case Escape:
		name = "Esc"
	case Return:
		name = "CR"
	case Backspace:
		name = "BS"
	case Delete:
		name = "Del"
	case "":
		name = "Nop"
	default:
		if e.IsChar() {
			name = e.Name
		} else {
			name = strings.ToUpper(e.Name[:1]) + e.Name[1:]
		}
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Name: %q, Ctrl: %t, Alt: %t, Shift: %t}", e.Name, e.Ctrl, e.Alt, e.Shift)
}
