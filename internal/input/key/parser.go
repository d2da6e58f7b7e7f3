package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "$"
//   - Named keys: "Return", "Escape", "Tab", "Space", "F2"
//   - With modifiers: "Ctrl+R", "Alt+x", "Ctrl+Shift+P"
//   - Vim-style: "<C-r>", "<A-x>", "<CR>", "<Esc>", "<lt>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// "+" alone is a character; "Ctrl++" is Ctrl and "+"
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, ModNone)
}

// parseVimStyle parses the inside of <...>, e.g. "C-r", "A-S-Up", "Esc".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	// "<C-->" names the "-" key
	if strings.HasSuffix(inner, "--") {
		parts = append(strings.Split(strings.TrimSuffix(inner, "--"), "-"), "-")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone || len(strings.TrimSpace(p)) != 1 {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := parts[len(parts)-1]
	if alias, ok := charAliases[strings.ToLower(keyPart)]; ok {
		keyPart = alias
	}
	return parseKey(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+R" style notation.
func parseModifierStyle(spec string) (Event, error) {
	keyPart := spec[strings.LastIndex(spec, "+")+1:]
	modPart := spec[:strings.LastIndex(spec, "+")]
	if keyPart == "" {
		// trailing "+" is the key itself
		keyPart = "+"
		modPart = strings.TrimSuffix(modPart, "+")
	}

	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKey(strings.TrimSpace(keyPart), mods)
}

// parseKey resolves a key name or single character with known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if name := Canonical(keyPart); name != "" {
		return NewEvent(name, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	r := runes[0]
	switch {
	case mods.Has(ModCtrl):
		// Ctrl combinations are reported on the lowercase letter
		r = unicode.ToLower(r)
	case unicode.IsUpper(r):
		mods = mods.With(ModShift)
	case mods.Has(ModShift) && unicode.IsLetter(r):
		r = unicode.ToUpper(r)
	}
	return NewEvent(string(r), mods), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
