package vim

import (
	"fmt"
	"strings"
)

// ActionKind tags the variant carried by an Action.
type ActionKind uint8

const (
	// ActionNone means the key was absorbed (pending, ignored, or disabled).
	ActionNone ActionKind = iota

	// ActionMotion is a cursor movement or selection extension.
	ActionMotion

	// ActionEdit mutates text.
	ActionEdit

	// ActionModeChange announces a mode transition.
	ActionModeChange

	// ActionSearch is a search intent.
	ActionSearch

	// ActionRegister selects a register. Reserved; no transition emits it.
	ActionRegister
)

// String returns a string representation of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionMotion:
		return "motion"
	case ActionEdit:
		return "edit"
	case ActionModeChange:
		return "mode-change"
	case ActionSearch:
		return "search"
	case ActionRegister:
		return "register"
	default:
		return "unknown"
	}
}

// Action is the single intent emitted for every handled key.
type Action struct {
	// Kind is the variant tag.
	Kind ActionKind

	// Name identifies the motion, edit, mode-change sub-action or search action.
	Name string

	// Count is the repeat count; 1 when none was typed, 0 for ActionNone.
	// Repetition is the editing surface's job.
	Count int

	// Pattern is the last search pattern carried by search-next/search-prev.
	Pattern string

	// Register is the selected register for ActionRegister.
	Register rune

	// Mode is the interpreter mode after the action was handled.
	Mode Mode
}

// IsNone returns true for ActionNone.
func (a Action) IsNone() bool {
	return a.Kind == ActionNone
}

// String returns a compact description like "motion move-right x10".
func (a Action) String() string {
	if a.Kind == ActionNone {
		return "none"
	}

	var sb strings.Builder
	sb.WriteString(a.Kind.String())
	if a.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
	}
	if a.Count > 1 {
		fmt.Fprintf(&sb, " x%d", a.Count)
	}
	if a.Pattern != "" {
		fmt.Fprintf(&sb, " %q", a.Pattern)
	}
	if a.Register != 0 {
		fmt.Fprintf(&sb, " register %q", a.Register)
	}
	return sb.String()
}
