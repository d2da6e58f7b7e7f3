package key

import "strings"

// Named keys. Literal characters use the character itself as the name.
const (
	Escape    = "escape"
	Return    = "return"
	Tab       = "tab"
	Backspace = "backspace"
	Delete    = "delete"
	Insert    = "insert"
	Home      = "home"
	End       = "end"
	PageUp    = "pageup"
	PageDown  = "pagedown"
	Up        = "up"
	Down      = "down"
	Left      = "left"
	Right     = "right"
	Space     = "space"
	F1        = "f1"
	F2        = "f2"
	F3        = "f3"
	F4        = "f4"
	F5        = "f5"
	F6        = "f6"
	F7        = "f7"
	F8        = "f8"
	F9        = "f9"
	F10       = "f10"
	F11       = "f11"
	F12       = "f12"
)

// nameAliases maps accepted spellings (lowercase) to canonical key names.
var nameAliases = map[string]string{
	"escape":    Escape,
	"esc":       Escape,
	"return":    Return,
	"enter":     Return,
	"cr":        Return,
	"tab":       Tab,
	"backspace": Backspace,
	"bs":        Backspace,
	"delete":    Delete,
	"del":       Delete,
	"insert":    Insert,
	"ins":       Insert,
	"home":      Home,
	"end":       End,
	"pageup":    PageUp,
	"pgup":      PageUp,
	"pagedown":  PageDown,
	"pgdn":      PageDown,
	"up":        Up,
	"down":      Down,
	"left":      Left,
	"right":     Right,
	"space":     Space,
	"f1":        F1,
	"f2":        F2,
	"f3":        F3,
	"f4":        F4,
	"f5":        F5,
	"f6":        F6,
	"f7":        F7,
	"f8":        F8,
	"f9":        F9,
	"f10":       F10,
	"f11":       F11,
	"f12":       F12,
}

// Vim aliases for characters that cannot appear bare inside <...>.
var charAliases = map[string]string{
	"lt":     "<",
	"gt":     ">",
	"bar":    "|",
	"bslash": "\\",
}

// Canonical returns the canonical name for a named key (case-insensitive),
// or "" if name is not a named key.
func Canonical(name string) string {
	return nameAliases[strings.ToLower(strings.TrimSpace(name))]
}

// IsNamed returns true if name is a canonical named key.
func IsNamed(name string) bool {
	if name == "" {
		return false
	}
	return nameAliases[name] == name
}

// Normalize maps a key name reported by a key source onto the canonical
// vocabulary. Multi-character names are resolved through the alias table;
// single characters are returned unchanged (case preserved). A bare " " is
// reported as Space.
func Normalize(name string) string {
	if name == " " {
		return Space
	}
	if len([]rune(name)) == 1 {
		return name
	}
	if c := Canonical(name); c != "" {
		return c
	}
	return name
}
