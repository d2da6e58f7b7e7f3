package vim

import (
	"testing"

	"github.com/dshills/modalkeys/internal/input/key"
)

// feed sends a key sequence and returns every emitted action.
func feed(t *testing.T, in *Interpreter, keys string) []Action {
	t.Helper()
	seq, err := key.ParseSequence(keys)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", keys, err)
	}
	actions := make([]Action, 0, len(seq))
	for _, ev := range seq {
		actions = append(actions, in.Handle(ev))
	}
	return actions
}

// last sends a key sequence and returns the final action.
func last(t *testing.T, in *Interpreter, keys string) Action {
	t.Helper()
	actions := feed(t, in, keys)
	if len(actions) == 0 {
		t.Fatalf("no actions for %q", keys)
	}
	return actions[len(actions)-1]
}

func assertPendingCleared(t *testing.T, in *Interpreter) {
	t.Helper()
	s := in.State()
	if s.PendingCount != "" {
		t.Errorf("PendingCount = %q, want empty", s.PendingCount)
	}
	if s.PendingPrefix != 0 {
		t.Errorf("PendingPrefix = %q, want none", s.PendingPrefix)
	}
}

func assertAction(t *testing.T, got Action, kind ActionKind, name string, count int) {
	t.Helper()
	if got.Kind != kind || got.Name != name || got.Count != count {
		t.Errorf("action = %s (%v %q x%d), want %v %q x%d",
			got, got.Kind, got.Name, got.Count, kind, name, count)
	}
}
