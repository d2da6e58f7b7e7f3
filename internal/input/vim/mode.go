package vim

// Mode is the interpreter's editing mode.
type Mode uint8

const (
	// ModeNormal is navigation and commands.
	ModeNormal Mode = iota

	// ModeInsert defers all keys except Escape to the editing surface.
	ModeInsert

	// ModeVisual is character-wise selection.
	ModeVisual

	// ModeVisualLine is line-wise selection.
	ModeVisualLine
)

// String returns the mode name used in mode-change actions and indicators.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeVisual:
		return "visual"
	case ModeVisualLine:
		return "visual-line"
	default:
		return "unknown"
	}
}

// DisplayName returns the status-line label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "V-LINE"
	default:
		return ""
	}
}

// IsVisual returns true for both visual modes.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine
}

// ParseMode returns the mode for a name produced by Mode.String.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "normal":
		return ModeNormal, true
	case "insert":
		return ModeInsert, true
	case "visual":
		return ModeVisual, true
	case "visual-line":
		return ModeVisualLine, true
	default:
		return ModeNormal, false
	}
}
