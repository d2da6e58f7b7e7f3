package vim

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// UnnamedRegister is the register written by every yank and delete.
const UnnamedRegister = '"'

// Register errors.
var (
	// ErrUnknownRegister is returned when addressing a register name that does not exist.
	ErrUnknownRegister = errors.New("unknown register")

	// ErrNoClipboard is returned when a clipboard register is written without a provider.
	ErrNoClipboard = errors.New("no clipboard provider")
)

// ClipboardProvider abstracts system clipboard access.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// RegisterStore holds register contents addressed by name.
//
// Only the unnamed register is written by the interpreter; the rest of the
// name space (a-z, 0-9, the black hole "_" and the clipboard registers "+"
// and "*") is available to hosts that select registers themselves.
type RegisterStore struct {
	mu        sync.RWMutex
	registers map[rune]string

	// clipboard backs "+" and "*" when set.
	clipboard ClipboardProvider
}

// NewRegisterStore creates an empty register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{
		registers: make(map[rune]string),
	}
}

// SetClipboard sets the provider behind the "+" and "*" registers.
func (rs *RegisterStore) SetClipboard(clipboard ClipboardProvider) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.clipboard = clipboard
}

// Get returns the content of a register, "" when empty or unknown.
// Clipboard read failures also yield "".
func (rs *RegisterStore) Get(name rune) string {
	if isClipboardRegister(name) {
		rs.mu.RLock()
		clipboard := rs.clipboard
		rs.mu.RUnlock()

		if clipboard != nil {
			content, err := clipboard.Get()
			if err != nil {
				return ""
			}
			return content
		}
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.registers[name]
}

// Set stores content in a register. Writes to "_" are discarded.
func (rs *RegisterStore) Set(name rune, content string) error {
	if !IsValidRegister(name) {
		return fmt.Errorf("%w: %q", ErrUnknownRegister, name)
	}
	if name == '_' {
		return nil
	}

	if isClipboardRegister(name) {
		rs.mu.RLock()
		clipboard := rs.clipboard
		rs.mu.RUnlock()

		if clipboard == nil {
			return fmt.Errorf("register %q: %w", name, ErrNoClipboard)
		}
		if err := clipboard.Set(content); err != nil {
			return fmt.Errorf("register %q: %w", name, err)
		}
		return nil
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.registers[name] = content
	return nil
}

// Names returns the names of all registers holding content, sorted.
// Clipboard registers are not included.
func (rs *RegisterStore) Names() []rune {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	names := make([]rune, 0, len(rs.registers))
	for name := range rs.registers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Snapshot returns a copy of the stored (non-clipboard) registers.
func (rs *RegisterStore) Snapshot() map[rune]string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make(map[rune]string, len(rs.registers))
	for name, content := range rs.registers {
		out[name] = content
	}
	return out
}

func isClipboardRegister(name rune) bool {
	return name == '+' || name == '*'
}

// IsValidRegister returns true if the register name is valid.
func IsValidRegister(name rune) bool {
	switch {
	case name == UnnamedRegister:
		return true
	case name >= 'a' && name <= 'z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '_', name == '+', name == '*':
		return true
	default:
		return false
	}
}
