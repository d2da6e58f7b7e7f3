package app

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/modalkeys/internal/clipboard"
	"github.com/dshills/modalkeys/internal/config"
	"github.com/dshills/modalkeys/internal/hook"
	"github.com/dshills/modalkeys/internal/input/vim"
	"github.com/dshills/modalkeys/internal/settings"
)

// App is the central coordinator. Interpreter calls happen only on the
// goroutine running Run or Replay.
type App struct {
	cfg       *config.Config
	log       *Logger
	sessionID string

	interp    *vim.Interpreter
	registers *vim.RegisterStore
	store     *settings.Store
	watcher   *settings.Watcher
	hooks     *hook.Runner
	metrics   *Metrics

	// posted carries work from other goroutines onto the loop.
	posted chan func()

	// external is set while applying a settings change made elsewhere so
	// it is not written back.
	external bool
	message  string
	running  atomic.Bool
}

// Options configures the application.
type Options struct {
	// Config is the loaded configuration; nil means config.Default().
	Config *Config

	// Logger receives application logs; nil discards them.
	Logger *Logger

	// Store overrides the settings store built from the config.
	Store *settings.Store

	// Clipboard overrides the system clipboard.
	Clipboard vim.ClipboardProvider

	// Hooks overrides the runner loaded from Config.Hooks.Script.
	Hooks *hook.Runner
}

// Config aliases the configuration type for callers of this package.
type Config = config.Config

// New creates the application and the interpreter, restoring the enabled
// flag from the settings store.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	sessionID := uuid.NewString()
	log := opts.Logger
	if log == nil {
		log = NullLogger()
	}
	log = log.WithField("session", sessionID)

	a := &App{
		cfg:       cfg,
		log:       log,
		sessionID: sessionID,
		metrics:   NewMetrics(),
		posted:    make(chan func(), 16),
	}

	a.store = opts.Store
	if a.store == nil {
		path := cfg.Settings.Path
		if path == "" {
			p, err := settings.DefaultPath()
			if err != nil {
				return nil, NewOperationError("locate settings", "", err)
			}
			path = p
		}
		a.store = settings.NewStore(path)
	}

	enabled, err := a.store.VimModeEnabled()
	if err != nil {
		log.WithComponent("settings").Warn("reading %s: %v; starting disabled", a.store.Path(), err)
		enabled = false
	}

	clip := opts.Clipboard
	if clip == nil {
		p, fellBack := clipboard.Open()
		if fellBack {
			log.WithComponent("clipboard").Info("system clipboard unavailable, using an in-process one")
		}
		clip = p
	}
	a.registers = vim.NewRegisterStore()
	a.registers.SetClipboard(clip)

	a.hooks = opts.Hooks
	if a.hooks == nil && cfg.Hooks.Script != "" {
		hookLog := log.WithComponent("hook")
		runner := hook.New(
			hook.WithLog(func(msg string) { hookLog.Info("%s", msg) }),
			hook.WithNotify(func(msg string) { a.message = msg }),
		)
		if err := runner.LoadFile(cfg.Hooks.Script); err != nil {
			runner.Close()
			return nil, NewOperationError("load hooks", cfg.Hooks.Script, err)
		}
		a.hooks = runner
	}

	a.interp = vim.New(enabled, vim.WithRegisterStore(a.registers))
	a.interp.OnModeChange(a.modeChanged)
	a.interp.OnEnabledChange(a.enabledChanged)

	log.Info("started, modal editing %s", onOff(enabled))
	return a, nil
}

// Interpreter returns the interpreter.
func (a *App) Interpreter() *vim.Interpreter {
	return a.interp
}

// SessionID returns the id attached to every log line of this run.
func (a *App) SessionID() string {
	return a.sessionID
}

// Metrics returns the application's metrics.
func (a *App) Metrics() *Metrics {
	return a.metrics
}

// Message returns the current status message.
func (a *App) Message() string {
	return a.message
}

// Close releases the watcher and the hook runner.
func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			return NewOperationError("close watcher", a.store.Path(), err)
		}
		a.watcher = nil
	}
	if a.hooks != nil {
		a.hooks.Close()
	}

	s := a.metrics.Snapshot()
	a.log.Info("session summary: %d keys, %d absorbed, avg %v, %d settings writes (%d failed)",
		s.Keys, s.Absorbed(), s.AvgHandle, s.Persisted, s.PersistErrors)
	return nil
}

func (a *App) modeChanged(from, to vim.Mode) {
	a.log.Info("mode %s -> %s", from, to)
	if a.hooks != nil {
		if err := a.hooks.ModeChange(from, to); err != nil {
			a.metrics.RecordHookError()
			a.log.WithComponent("hook").Warn("%v", err)
		}
	}
}

// enabledChanged persists the flag unless the change came from the file.
func (a *App) enabledChanged(enabled bool) {
	a.log.Info("modal editing %s", onOff(enabled))
	a.message = "modal editing " + onOff(enabled)

	if !a.external {
		err := a.store.SetVimModeEnabled(enabled)
		a.metrics.RecordPersist(err)
		if err != nil {
			a.log.WithComponent("settings").Error("%v", NewOperationError("persist", a.store.Path(), err))
		} else if a.watcher != nil {
			a.watcher.Observe(enabled)
		}
	}

	if a.hooks != nil {
		if err := a.hooks.EnabledChange(enabled); err != nil {
			a.metrics.RecordHookError()
			a.log.WithComponent("hook").Warn("%v", err)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
