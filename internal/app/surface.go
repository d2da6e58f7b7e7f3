package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/dshills/modalkeys/internal/input/key"
	"github.com/dshills/modalkeys/internal/input/vim"
	"github.com/dshills/modalkeys/internal/terminal"
)

// KeySource delivers decoded key presses. NextKey blocks; any error ends
// the event loop.
type KeySource interface {
	NextKey() (key.Event, error)
}

// Surface is the editing surface driven by the interpreter.
type Surface interface {
	// Apply performs an action. For edits that yank or delete text it
	// returns that text and ok=true; the app stores it in the unnamed
	// register.
	Apply(a vim.Action) (text string, ok bool, err error)

	// Render shows the interpreter state after each event.
	Render(state vim.State, message string)
}

// historySize is the number of action lines a ScreenSurface keeps.
const historySize = 64

// ScreenSurface shows actions and state on a terminal screen. It has no
// buffer, so it never returns register text.
type ScreenSurface struct {
	screen *terminal.Screen

	mu    sync.Mutex
	lines []string
}

// NewScreenSurface creates a surface drawing on screen.
func NewScreenSurface(screen *terminal.Screen) *ScreenSurface {
	return &ScreenSurface{screen: screen}
}

// Apply records the action in the on-screen history.
func (s *ScreenSurface) Apply(a vim.Action) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, a.String())
	if len(s.lines) > historySize {
		s.lines = s.lines[len(s.lines)-historySize:]
	}
	return "", false, nil
}

// Render draws the history and the status line.
func (s *ScreenSurface) Render(state vim.State, message string) {
	s.mu.Lock()
	lines := append([]string(nil), s.lines...)
	s.mu.Unlock()

	s.screen.Draw(terminal.View{
		Mode:    state.Mode.DisplayName(),
		Enabled: state.Enabled,
		Pending: state.Pending(),
		Lines:   lines,
		Message: message,
	})
}

// WriterSurface prints every action as a line, for scripted runs.
type WriterSurface struct {
	w io.Writer
}

// NewWriterSurface creates a surface printing to w.
func NewWriterSurface(w io.Writer) *WriterSurface {
	return &WriterSurface{w: w}
}

// Apply prints the action.
func (s *WriterSurface) Apply(a vim.Action) (string, bool, error) {
	if _, err := fmt.Fprintln(s.w, a.String()); err != nil {
		return "", false, err
	}
	return "", false, nil
}

// Render does nothing; the printed actions are the output.
func (s *WriterSurface) Render(vim.State, string) {}
