package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/modalkeys/internal/input/vim"
)

// actionKinds is the number of vim.ActionKind values tracked.
const actionKinds = int(vim.ActionRegister) + 1

// Metrics counts handled keys and the work they caused.
type Metrics struct {
	keys      atomic.Uint64
	handleNs  atomic.Int64
	handleMax atomic.Int64
	actions   [actionKinds]atomic.Uint64

	persisted     atomic.Uint64
	persistErrors atomic.Uint64
	hookErrors    atomic.Uint64
	applyErrors   atomic.Uint64
	external      atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records one Handle call and the action it produced.
func (m *Metrics) RecordKey(kind vim.ActionKind, duration time.Duration) {
	ns := duration.Nanoseconds()
	m.keys.Add(1)
	m.handleNs.Add(ns)
	if int(kind) < actionKinds {
		m.actions[kind].Add(1)
	}

	for {
		old := m.handleMax.Load()
		if ns <= old || m.handleMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordPersist records a settings write.
func (m *Metrics) RecordPersist(err error) {
	if err != nil {
		m.persistErrors.Add(1)
		return
	}
	m.persisted.Add(1)
}

// RecordHookError records a failed Lua hook call.
func (m *Metrics) RecordHookError() {
	m.hookErrors.Add(1)
}

// RecordApplyError records a surface failure.
func (m *Metrics) RecordApplyError() {
	m.applyErrors.Add(1)
}

// RecordExternalChange records a settings change made by another process.
func (m *Metrics) RecordExternalChange() {
	m.external.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	keys := m.keys.Load()
	var avg time.Duration
	if keys > 0 {
		avg = time.Duration(m.handleNs.Load() / int64(keys))
	}

	s := MetricsSnapshot{
		Uptime:          time.Since(m.startTime),
		Keys:            keys,
		AvgHandle:       avg,
		MaxHandle:       time.Duration(m.handleMax.Load()),
		Actions:         make(map[vim.ActionKind]uint64, actionKinds),
		Persisted:       m.persisted.Load(),
		PersistErrors:   m.persistErrors.Load(),
		HookErrors:      m.hookErrors.Load(),
		ApplyErrors:     m.applyErrors.Load(),
		ExternalChanges: m.external.Load(),
	}
	for i := range m.actions {
		if n := m.actions[i].Load(); n > 0 {
			s.Actions[vim.ActionKind(i)] = n
		}
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime          time.Duration
	Keys            uint64
	AvgHandle       time.Duration
	MaxHandle       time.Duration
	Actions         map[vim.ActionKind]uint64
	Persisted       uint64
	PersistErrors   uint64
	HookErrors      uint64
	ApplyErrors     uint64
	ExternalChanges uint64
}

// Absorbed returns how many keys produced no action.
func (s MetricsSnapshot) Absorbed() uint64 {
	return s.Actions[vim.ActionNone]
}
