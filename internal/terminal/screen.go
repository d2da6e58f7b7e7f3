package terminal

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/modalkeys/internal/input/key"
)

var (
	// ErrClosed is returned by NextKey after the screen was finalized.
	ErrClosed = errors.New("terminal closed")

	// ErrUnmappedKey is returned when posting an event tcell cannot represent.
	ErrUnmappedKey = errors.New("key has no terminal equivalent")
)

// View is the state drawn on screen.
type View struct {
	// Mode is the status-line label, e.g. "NORMAL".
	Mode string

	// Enabled is false when modal editing is switched off.
	Enabled bool

	// Pending holds the keys typed toward an unfinished command.
	Pending string

	// Lines are the most recent action descriptions, oldest first.
	Lines []string

	// Message is shown right-aligned on the status line.
	Message string
}

// Screen wraps a tcell screen as a key source and status display.
type Screen struct {
	mu       sync.Mutex
	screen   tcell.Screen
	onResize func(width, height int)
	closed   bool
}

// New creates a screen on the controlling terminal.
func New() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: s}, nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen.
func NewWithScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Init initializes the terminal.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.SetStyle(tcell.StyleDefault)
	s.screen.HideCursor()
	return nil
}

// Close restores the terminal. NextKey returns ErrClosed afterwards.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.screen.Fini()
}

// OnResize sets a callback invoked when the terminal is resized.
func (s *Screen) OnResize(callback func(width, height int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResize = callback
}

// NextKey blocks until the next key press. Non-key events are consumed.
func (s *Screen) NextKey() (key.Event, error) {
	for {
		ev := s.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			return key.Event{}, ErrClosed
		case *tcell.EventKey:
			out := FromTcell(e)
			if out.Name == "" {
				continue
			}
			return out, nil
		case *tcell.EventResize:
			w, h := e.Size()
			s.mu.Lock()
			cb := s.onResize
			s.mu.Unlock()
			if cb != nil {
				cb(w, h)
			}
		}
	}
}

// PostKey queues a synthetic key press.
func (s *Screen) PostKey(ev key.Event) error {
	tev := ToTcell(ev)
	if tev == nil {
		return ErrUnmappedKey
	}
	return s.screen.PostEvent(tev)
}

// Draw renders the view: action lines from the top, the status line at the
// bottom row.
func (s *Screen) Draw(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.screen.Clear()
	width, height := s.screen.Size()
	if height == 0 {
		return
	}

	body := tcell.StyleDefault
	lines := v.Lines
	if rows := height - 1; len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for y, line := range lines {
		drawText(s.screen, 0, y, width, line, body)
	}

	status := StatusText(v)
	statusStyle := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, height-1, ' ', nil, statusStyle)
	}
	drawText(s.screen, 0, height-1, width, status, statusStyle)

	if v.Message != "" {
		msgWidth := uniseg.StringWidth(v.Message)
		if x := width - msgWidth; x > uniseg.StringWidth(status) {
			drawText(s.screen, x, height-1, width, v.Message, statusStyle)
		}
	}

	s.screen.Show()
}

// StatusText formats the left side of the status line.
func StatusText(v View) string {
	if !v.Enabled {
		return " MODAL OFF"
	}
	text := " -- " + v.Mode + " --"
	if v.Pending != "" {
		text += "  " + v.Pending
	}
	return text
}

func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	for _, r := range text {
		w := uniseg.StringWidth(string(r))
		if w == 0 {
			w = 1
		}
		if x+w > maxX {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
}
