package app

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/modalkeys/internal/input/key"
	"github.com/dshills/modalkeys/internal/input/vim"
	"github.com/dshills/modalkeys/internal/settings"
)

type keyResult struct {
	ev  key.Event
	err error
}

// Run drives the interpreter from src until ctx is cancelled, the user
// quits or src fails. A quit returns nil.
func (a *App) Run(ctx context.Context, src KeySource, surface Surface) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	// stops the key reader and the watcher forwarder on return
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Settings.Watch {
		if err := a.startWatcher(ctx); err != nil {
			a.log.WithComponent("settings").Warn("not watching %s: %v", a.store.Path(), err)
		}
	}

	keys := make(chan keyResult)
	go func() {
		for {
			ev, err := src.NextKey()
			select {
			case keys <- keyResult{ev: ev, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	surface.Render(a.interp.State(), a.message)

	for {
		select {
		case <-ctx.Done():
			return nil

		case fn := <-a.posted:
			fn()

		case res := <-keys:
			if res.err != nil {
				return NewOperationError("read key", "", res.err)
			}
			if _, err := a.dispatch(res.ev, surface); err != nil {
				if errors.Is(err, ErrQuit) {
					a.log.Info("quit")
					return nil
				}
				return err
			}
		}

		surface.Render(a.interp.State(), a.message)
	}
}

// Post schedules fn on the event loop.
func (a *App) Post(fn func()) {
	a.posted <- fn
}

// startWatcher forwards external settings changes onto the loop.
func (a *App) startWatcher(ctx context.Context) error {
	w, err := settings.NewWatcher(a.store)
	if err != nil {
		return err
	}
	a.watcher = w
	w.Observe(a.interp.Enabled())

	log := a.log.WithComponent("settings")
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case enabled, ok := <-w.Changes():
				if !ok {
					return
				}
				select {
				case a.posted <- func() { a.ApplyExternal(enabled) }:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				log.Warn("watch: %v", err)
			}
		}
	}()
	return nil
}

// ApplyExternal applies an enabled flag written by another process without
// writing it back.
func (a *App) ApplyExternal(enabled bool) {
	if enabled == a.interp.Enabled() {
		return
	}
	a.metrics.RecordExternalChange()
	a.log.WithComponent("settings").Info("settings file changed externally")

	a.external = true
	defer func() { a.external = false }()
	if enabled {
		a.interp.Enable()
	} else {
		a.interp.Disable()
	}
}

// dispatch handles one key: app keys first, then the interpreter.
func (a *App) dispatch(ev key.Event, surface Surface) (vim.Action, error) {
	switch {
	case ev.IsCtrl('c'), ev.IsCtrl('q'):
		return vim.Action{Mode: a.interp.Mode()}, ErrQuit
	case ev.Name == key.F2 && !ev.IsModified():
		a.interp.Toggle()
		return vim.Action{Mode: a.interp.Mode()}, nil
	}

	start := time.Now()
	action := a.interp.Handle(ev)
	a.metrics.RecordKey(action.Kind, time.Since(start))

	if action.IsNone() {
		return action, nil
	}
	a.log.Debug("%s -> %s", ev, action)

	if a.hooks != nil {
		if err := a.hooks.Action(action); err != nil {
			a.metrics.RecordHookError()
			a.log.WithComponent("hook").Warn("%v", err)
		}
	}

	text, ok, err := surface.Apply(action)
	if err != nil {
		a.metrics.RecordApplyError()
		a.log.Warn("%v", NewOperationError("apply", action.Name, err))
		return action, nil
	}
	if ok {
		a.storeRegister(text)
	}
	return action, nil
}

// storeRegister writes yanked or deleted text to the unnamed register and,
// with unnamedplus, to the clipboard.
func (a *App) storeRegister(text string) {
	a.interp.SetYankRegister(text)
	if !a.cfg.Clipboard.Unnamedplus {
		return
	}
	if err := a.registers.Set('+', text); err != nil {
		a.log.WithComponent("clipboard").Warn("%v", err)
	}
}

// Replay feeds a key sequence through the same path as Run and returns the
// action for each key. It stops at a quit key.
func (a *App) Replay(keys string, surface Surface) ([]vim.Action, error) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return nil, NewOperationError("parse keys", keys, err)
	}

	actions := make([]vim.Action, 0, len(seq))
	for _, ev := range seq {
		action, err := a.dispatch(ev, surface)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			return actions, err
		}
		actions = append(actions, action)
		surface.Render(a.interp.State(), a.message)
	}
	return actions, nil
}
