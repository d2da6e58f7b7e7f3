// Package clipboard provides the system clipboard behind the "+" and "*"
// registers.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unavailable")

// System reads and writes the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard, or ErrUnsupported when the platform
// has no clipboard tool (e.g. no xclip on a headless box).
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnsupported
	}
	return &System{}, nil
}

// Get returns the clipboard content.
func (System) Get() (string, error) {
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return s, nil
}

// Set replaces the clipboard content.
func (System) Set(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory is a process-local clipboard, used when the system one is
// unavailable and in tests.
type Memory struct {
	mu      sync.Mutex
	content string
}

// Get returns the stored content.
func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content, nil
}

// Set stores content.
func (m *Memory) Set(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
	return nil
}

// Provider is the interface both clipboards satisfy.
type Provider interface {
	Get() (string, error)
	Set(content string) error
}

// Open returns the system clipboard, falling back to a Memory clipboard.
// fellBack reports whether the fallback was used.
func Open() (p Provider, fellBack bool) {
	sys, err := NewSystem()
	if err != nil {
		return &Memory{}, true
	}
	return sys, false
}
