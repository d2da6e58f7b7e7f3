// Package hook runs user Lua scripts on interpreter events.
//
// A script may define any of these globals:
//
//	function on_mode_change(from, to) end
//	function on_action(action) end   -- action.kind, .name, .count, .pattern, .mode
//	function on_enabled_change(enabled) end
//
// and may call modal.log(msg) and modal.notify(msg).
package hook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modalkeys/internal/input/vim"
)

// Hook function names.
const (
	FuncModeChange    = "on_mode_change"
	FuncAction        = "on_action"
	FuncEnabledChange = "on_enabled_change"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 200 * time.Millisecond

// ErrClosed is returned after Close.
var ErrClosed = errors.New("hook runner closed")

// Runner owns a Lua state with the hook script loaded.
//
// gopher-lua states are not goroutine-safe; the mutex serializes calls.
type Runner struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool

	logFn    func(msg string)
	notifyFn func(msg string)
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLog routes modal.log to fn.
func WithLog(fn func(msg string)) Option {
	return func(r *Runner) { r.logFn = fn }
}

// WithNotify routes modal.notify to fn.
func WithNotify(fn func(msg string)) Option {
	return func(r *Runner) { r.notifyFn = fn }
}

// New creates a runner with a restricted Lua state: only the base, table,
// string and math libraries are opened.
func New(opts ...Option) *Runner {
	r := &Runner{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// no file access from hooks
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)

	r.L = L
	r.installModule()
	return r
}

func (r *Runner) installModule() {
	mod := r.L.NewTable()
	r.L.SetField(mod, "log", r.L.NewFunction(func(L *lua.LState) int {
		if r.logFn != nil {
			r.logFn(L.CheckString(1))
		}
		return 0
	}))
	r.L.SetField(mod, "notify", r.L.NewFunction(func(L *lua.LState) int {
		if r.notifyFn != nil {
			r.notifyFn(L.CheckString(1))
		}
		return 0
	}))
	r.L.SetGlobal("modal", mod)
}

// LoadFile runs the script at path, which defines the hooks.
func (r *Runner) LoadFile(path string) error {
	return r.do(func() error {
		if err := r.L.DoFile(path); err != nil {
			return fmt.Errorf("loading hooks %s: %w", path, err)
		}
		return nil
	})
}

// LoadString runs a script from a string.
func (r *Runner) LoadString(code string) error {
	return r.do(func() error {
		if err := r.L.DoString(code); err != nil {
			return fmt.Errorf("loading hooks: %w", err)
		}
		return nil
	})
}

// Has reports whether the script defines the named hook.
func (r *Runner) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	return r.L.GetGlobal(name).Type() == lua.LTFunction
}

// ModeChange calls on_mode_change(from, to).
func (r *Runner) ModeChange(from, to vim.Mode) error {
	return r.call(FuncModeChange, lua.LString(from.String()), lua.LString(to.String()))
}

// Action calls on_action(action) for a non-None action.
func (r *Runner) Action(a vim.Action) error {
	if a.IsNone() {
		return nil
	}
	return r.call(FuncAction, r.actionTable(a))
}

// EnabledChange calls on_enabled_change(enabled).
func (r *Runner) EnabledChange(enabled bool) error {
	return r.call(FuncEnabledChange, lua.LBool(enabled))
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

func (r *Runner) actionTable(a vim.Action) *lua.LTable {
	t := r.L.NewTable()
	t.RawSetString("kind", lua.LString(a.Kind.String()))
	t.RawSetString("name", lua.LString(a.Name))
	t.RawSetString("count", lua.LNumber(a.Count))
	t.RawSetString("mode", lua.LString(a.Mode.String()))
	if a.Pattern != "" {
		t.RawSetString("pattern", lua.LString(a.Pattern))
	}
	return t
}

// call invokes a global hook; an undefined hook is a no-op.
func (r *Runner) call(name string, args ...lua.LValue) error {
	return r.do(func() error {
		fn := r.L.GetGlobal(name)
		if fn.Type() != lua.LTFunction {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.L.SetContext(ctx)
		defer r.L.RemoveContext()

		if err := r.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
			return fmt.Errorf("hook %s: %w", name, err)
		}
		return nil
	})
}

func (r *Runner) do(fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}
