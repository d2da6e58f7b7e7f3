package vim

import (
	"github.com/dshills/modalkeys/internal/input/key"
)

// ModeChangeCallback is called after the mode changed.
type ModeChangeCallback func(from, to Mode)

// EnabledChangeCallback is called after modal editing was enabled or disabled.
type EnabledChangeCallback func(enabled bool)

// State is a read-only snapshot of the interpreter state.
type State struct {
	// Mode is the current editing mode.
	Mode Mode

	// Enabled reports whether modal editing is active.
	Enabled bool

	// PendingCount holds the typed count digits, "" when none.
	PendingCount string

	// PendingPrefix is the pending leader (g, d, c, y), 0 when none.
	PendingPrefix rune

	// LastMotion is the name of the last motion emitted.
	LastMotion string

	// Registers is a copy of the stored registers.
	Registers map[rune]string

	// Search is the captured search state.
	Search SearchState
}

// Pending returns the keys typed toward an unfinished command, e.g. "3d".
func (s State) Pending() string {
	if s.PendingPrefix == 0 {
		return s.PendingCount
	}
	return s.PendingCount + string(s.PendingPrefix)
}

// Interpreter is the modal key state machine.
type Interpreter struct {
	mode       Mode
	enabled    bool
	count      CountState
	prefix     rune
	lastMotion string
	registers  *RegisterStore
	search     SearchState

	modeCallbacks    []ModeChangeCallback
	enabledCallbacks []EnabledChangeCallback
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRegisterStore shares an existing register store.
func WithRegisterStore(rs *RegisterStore) Option {
	return func(in *Interpreter) {
		if rs != nil {
			in.registers = rs
		}
	}
}

// New creates an interpreter in Normal mode. initialEnabled comes from the
// host's persisted settings.
func New(initialEnabled bool, opts ...Option) *Interpreter {
	in := &Interpreter{
		mode:      ModeNormal,
		enabled:   initialEnabled,
		registers: NewRegisterStore(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Handle processes one key event and returns exactly one action.
func (in *Interpreter) Handle(ev key.Event) Action {
	if !in.enabled {
		return in.none()
	}

	if ev.IsEscape() {
		if in.mode != ModeNormal {
			in.switchMode(ModeNormal)
			return Action{Kind: ActionModeChange, Name: ChangeNormal, Count: 1, Mode: in.mode}
		}
		in.resetPending()
		return in.none()
	}

	switch in.mode {
	case ModeInsert:
		return in.none()
	case ModeVisual, ModeVisualLine:
		return in.handleVisual(ev)
	default:
		return in.handleNormal(ev)
	}
}

// handleNormal dispatches a key through the Normal-mode tables.
func (in *Interpreter) handleNormal(ev key.Event) Action {
	if in.accumulate(ev) {
		return in.none()
	}

	if in.prefix != 0 {
		return in.resolvePrefix(ev, normalPrefixes)
	}

	if ev.IsModified() {
		if b, ok := ctrlKeys[ev.Rune()]; ok && ev.IsCtrl(ev.Rune()) {
			return in.fire(b)
		}
		in.resetPending()
		return in.none()
	}

	r := ev.Rune()
	if _, ok := normalPrefixes[r]; ok {
		in.prefix = r
		return in.none()
	}
	if b, ok := normalKeys[r]; ok {
		return in.fire(b)
	}
	if b, ok := normalMotions[r]; ok {
		return in.fire(b)
	}

	in.resetPending()
	return in.none()
}

// handleVisual dispatches a key through the selection tables.
func (in *Interpreter) handleVisual(ev key.Event) Action {
	if in.accumulate(ev) {
		return in.none()
	}

	if in.prefix != 0 {
		return in.resolvePrefix(ev, visualPrefixes)
	}

	if ev.IsModified() {
		in.resetPending()
		return in.none()
	}

	r := ev.Rune()
	if _, ok := visualPrefixes[r]; ok {
		in.prefix = r
		return in.none()
	}
	if b, ok := visualKeys[r]; ok {
		return in.fire(b)
	}
	if b, ok := visualMotions[r]; ok {
		return in.fire(b)
	}

	in.resetPending()
	return in.none()
}

// accumulate appends a count digit. The pending prefix is left alone.
func (in *Interpreter) accumulate(ev key.Event) bool {
	if ev.IsModified() {
		return false
	}
	return in.count.AccumulateDigit(ev.Rune())
}

// resolvePrefix completes a two-key command when ev repeats the pending
// leader. Any other key clears pending state and is dropped.
//
// TODO(modal): "g" followed by a key with its own meaning (gl) drops the
// second key; decide whether it should run after the prefix clears.
func (in *Interpreter) resolvePrefix(ev key.Event, table map[rune]binding) Action {
	if b, ok := table[in.prefix]; ok && ev.Is(in.prefix) {
		return in.fire(b)
	}
	in.resetPending()
	return in.none()
}

// fire emits a binding, applies its side effects and resets pending state.
func (in *Interpreter) fire(b binding) Action {
	count := 1
	if b.counted {
		count = in.count.Get()
	}

	a := Action{Kind: b.kind, Name: b.name, Count: count}

	switch b.kind {
	case ActionMotion:
		in.lastMotion = b.name
	case ActionSearch:
		switch b.name {
		case SearchForward:
			in.search.Direction = Forward
		case SearchBackward:
			in.search.Direction = Backward
		case SearchNext, SearchPrev:
			a.Pattern = in.search.LastPattern
		}
	}

	if b.switches {
		in.switchMode(b.next)
	} else {
		in.resetPending()
	}

	a.Mode = in.mode
	return a
}

func (in *Interpreter) none() Action {
	return Action{Kind: ActionNone, Mode: in.mode}
}

func (in *Interpreter) resetPending() {
	in.count.Reset()
	in.prefix = 0
}

// switchMode assigns the mode, clears pending state and notifies observers
// when the mode actually changed.
func (in *Interpreter) switchMode(m Mode) {
	from := in.mode
	in.mode = m
	in.resetPending()
	if from == m {
		return
	}
	for _, cb := range in.modeCallbacks {
		if cb != nil {
			cb(from, m)
		}
	}
}

func (in *Interpreter) setEnabled(enabled bool) {
	if in.enabled == enabled {
		return
	}
	in.enabled = enabled
	for _, cb := range in.enabledCallbacks {
		if cb != nil {
			cb(enabled)
		}
	}
}

// State returns a snapshot of the interpreter state.
func (in *Interpreter) State() State {
	return State{
		Mode:          in.mode,
		Enabled:       in.enabled,
		PendingCount:  in.count.Digits(),
		PendingPrefix: in.prefix,
		LastMotion:    in.lastMotion,
		Registers:     in.registers.Snapshot(),
		Search:        in.search,
	}
}

// Mode returns the current mode.
func (in *Interpreter) Mode() Mode {
	return in.mode
}

// Enabled reports whether modal editing is active.
func (in *Interpreter) Enabled() bool {
	return in.enabled
}

// SetMode forces a mode and clears pending state, e.g. when the host
// cancels an insert on its own.
func (in *Interpreter) SetMode(m Mode) {
	in.switchMode(m)
}

// Enable turns modal editing on in Normal mode.
func (in *Interpreter) Enable() {
	in.switchMode(ModeNormal)
	in.setEnabled(true)
}

// Disable turns modal editing off. The mode is kept so re-enabling resumes
// predictably.
func (in *Interpreter) Disable() {
	in.resetPending()
	in.setEnabled(false)
}

// Toggle flips modal editing; turning it on forces Normal mode.
func (in *Interpreter) Toggle() {
	if in.enabled {
		in.Disable()
		return
	}
	in.Enable()
}

// SetYankRegister overwrites the unnamed register. The host calls it after
// it performed a yank or delete.
func (in *Interpreter) SetYankRegister(text string) {
	_ = in.registers.Set(UnnamedRegister, text) // unnamed is always valid
}

// YankRegister returns the unnamed register.
func (in *Interpreter) YankRegister() string {
	return in.registers.Get(UnnamedRegister)
}

// Registers returns the register store for name-addressed access.
func (in *Interpreter) Registers() *RegisterStore {
	return in.registers
}

// SetSearchPattern records the pattern the host collected after / or ?.
func (in *Interpreter) SetSearchPattern(pattern string) {
	in.search.setPattern(pattern)
}

// OnModeChange registers a mode change observer.
// Returns a function to unregister it.
func (in *Interpreter) OnModeChange(callback ModeChangeCallback) func() {
	in.modeCallbacks = append(in.modeCallbacks, callback)
	index := len(in.modeCallbacks) - 1
	return func() {
		// nil out to keep indices of later registrations stable
		if index < len(in.modeCallbacks) {
			in.modeCallbacks[index] = nil
		}
	}
}

// OnEnabledChange registers an observer for enable/disable. Hosts persist
// the setting from here.
func (in *Interpreter) OnEnabledChange(callback EnabledChangeCallback) func() {
	in.enabledCallbacks = append(in.enabledCallbacks, callback)
	index := len(in.enabledCallbacks) - 1
	return func() {
		if index < len(in.enabledCallbacks) {
			in.enabledCallbacks[index] = nil
		}
	}
}
