package vim

import (
	"fmt"
	"testing"

	"github.com/dshills/modalkeys/internal/input/key"
)

func TestNewInitialState(t *testing.T) {
	in := New(true)
	s := in.State()
	if s.Mode != ModeNormal {
		t.Errorf("initial mode = %v, want normal", s.Mode)
	}
	if !s.Enabled {
		t.Error("expected enabled from initialEnabled=true")
	}
	assertPendingCleared(t, in)

	if New(false).Enabled() {
		t.Error("expected disabled from initialEnabled=false")
	}
}

func TestScenarioCountDeleteLine(t *testing.T) {
	in := New(true)
	actions := feed(t, in, "3dd")

	if !actions[0].IsNone() || !actions[1].IsNone() {
		t.Fatalf("first two actions = %v, %v; want none, none", actions[0], actions[1])
	}
	assertAction(t, actions[2], ActionEdit, EditDeleteLine, 3)
	assertPendingCleared(t, in)
}

func TestScenarioVisualBufferHome(t *testing.T) {
	in := New(true)
	in.SetMode(ModeVisual)

	actions := feed(t, in, "gg")
	if !actions[0].IsNone() {
		t.Fatalf("first action = %v, want none", actions[0])
	}
	assertAction(t, actions[1], ActionMotion, SelectBufferHome, 1)
	if in.Mode() != ModeVisual {
		t.Errorf("mode = %v, want visual", in.Mode())
	}
}

func TestScenarioCountMoveRight(t *testing.T) {
	in := New(true)
	actions := feed(t, in, "10l")

	if !actions[0].IsNone() || !actions[1].IsNone() {
		t.Fatalf("first two actions = %v, %v; want none, none", actions[0], actions[1])
	}
	assertAction(t, actions[2], ActionMotion, MotionMoveRight, 10)
}

func TestCountEqualsDigitValue(t *testing.T) {
	counts := []int{1, 2, 9, 10, 19, 100, 305, 1000, 65536}
	for _, motionKey := range []rune{'h', 'j', 'w', '$', 'G'} {
		for _, n := range counts {
			in := New(true)
			got := last(t, in, fmt.Sprintf("%d%c", n, motionKey))
			if got.Kind != ActionMotion || got.Count != n {
				t.Errorf("%d%c = %v, want motion with count %d", n, motionKey, got, n)
			}
		}

		in := New(true)
		if got := in.Handle(key.Char(motionKey)); got.Count != 1 {
			t.Errorf("%c without count = %d, want 1", motionKey, got.Count)
		}
	}
}

func TestCountSaturates(t *testing.T) {
	in := New(true)
	got := last(t, in, "99999999999999999999j")
	assertAction(t, got, ActionMotion, MotionMoveDown, MaxCount)
}

func TestZeroIsLineHome(t *testing.T) {
	in := New(true)
	assertAction(t, in.Handle(key.Char('0')), ActionMotion, MotionLineHome, 1)

	// After a leading digit, 0 is part of the count
	in = New(true)
	feed(t, in, "20")
	if got := in.State().PendingCount; got != "20" {
		t.Errorf("PendingCount = %q, want %q", got, "20")
	}
}

func TestEscapeFromEveryMode(t *testing.T) {
	for _, m := range []Mode{ModeInsert, ModeVisual, ModeVisualLine} {
		for _, pending := range []string{"", "3", "g", "12g"} {
			t.Run(m.String()+"/"+pending, func(t *testing.T) {
				in := New(true)
				in.SetMode(m)
				if m != ModeInsert {
					feed(t, in, pending)
				}

				got := in.Handle(key.Named(key.Escape))
				assertAction(t, got, ActionModeChange, ChangeNormal, 1)
				if in.Mode() != ModeNormal {
					t.Errorf("mode = %v, want normal", in.Mode())
				}
				assertPendingCleared(t, in)
			})
		}
	}
}

func TestEscapeInNormalClearsPending(t *testing.T) {
	for _, pending := range []string{"", "5", "d", "4y", "g"} {
		in := New(true)
		feed(t, in, pending)

		if got := in.Handle(key.Named(key.Escape)); !got.IsNone() {
			t.Errorf("escape after %q = %v, want none", pending, got)
		}
		assertPendingCleared(t, in)
	}
}

func TestGPrefix(t *testing.T) {
	in := New(true)
	actions := feed(t, in, "gg")
	if !actions[0].IsNone() {
		t.Errorf("g = %v, want none", actions[0])
	}
	assertAction(t, actions[1], ActionMotion, MotionBufferHome, 1)

	in = New(true)
	assertAction(t, last(t, in, "5gg"), ActionMotion, MotionBufferHome, 5)

	// a count typed between the two g presses is kept
	in = New(true)
	assertAction(t, last(t, in, "g7g"), ActionMotion, MotionBufferHome, 7)
}

func TestGPrefixDropsOtherKeys(t *testing.T) {
	// keys with their own meaning must not fire after a lone g
	for _, k := range []string{"l", "j", "x", "d", "i", "v", "/", "G", "q", "<C-r>", "<Space>"} {
		t.Run(k, func(t *testing.T) {
			in := New(true)
			feed(t, in, "g")

			ev := key.MustParse(k)
			if got := in.Handle(ev); !got.IsNone() {
				t.Errorf("g %s = %v, want none", k, got)
			}
			assertPendingCleared(t, in)
			if in.Mode() != ModeNormal {
				t.Errorf("mode = %v, want normal", in.Mode())
			}
			if in.State().LastMotion != "" {
				t.Errorf("LastMotion = %q, want empty", in.State().LastMotion)
			}
		})
	}
}

func TestLineEditsRequireSameKeyTwice(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"dd", EditDeleteLine},
		{"cc", EditChangeLine},
		{"yy", EditYankLine},
	}
	for _, tt := range tests {
		in := New(true)
		actions := feed(t, in, tt.keys)
		if !actions[0].IsNone() {
			t.Errorf("%s first key = %v, want none", tt.keys, actions[0])
		}
		assertAction(t, actions[1], ActionEdit, tt.want, 1)
	}

	for _, keys := range []string{"dy", "dc", "yd", "cy", "dg", "gd", "yc"} {
		in := New(true)
		actions := feed(t, in, keys)
		for i, a := range actions {
			if !a.IsNone() {
				t.Errorf("%s action %d = %v, want none", keys, i, a)
			}
		}
		assertPendingCleared(t, in)
	}
}

func TestChangeLineEntersInsert(t *testing.T) {
	in := New(true)
	got := last(t, in, "2cc")
	assertAction(t, got, ActionEdit, EditChangeLine, 2)
	if got.Mode != ModeInsert || in.Mode() != ModeInsert {
		t.Errorf("mode after cc = %v (action %v), want insert", in.Mode(), got.Mode)
	}
	assertPendingCleared(t, in)
}

func TestInsertModeAbsorbsKeys(t *testing.T) {
	in := New(true)
	in.Handle(key.Char('i'))

	for _, k := range []string{"d", "d", "g", "g", "3", "x", "<C-r>", "<CR>", "<Up>", "v", ":"} {
		if got := in.Handle(key.MustParse(k)); !got.IsNone() {
			t.Errorf("insert %s = %v, want none", k, got)
		}
		if in.Mode() != ModeInsert {
			t.Fatalf("mode = %v, want insert", in.Mode())
		}
	}
	assertPendingCleared(t, in)

	got := in.Handle(key.Named(key.Escape))
	assertAction(t, got, ActionModeChange, ChangeNormal, 1)
}

func TestModeEntry(t *testing.T) {
	tests := []struct {
		r        rune
		wantName string
		wantMode Mode
	}{
		{'i', ChangeInsert, ModeInsert},
		{'I', ChangeInsertLineStart, ModeInsert},
		{'a', ChangeAppend, ModeInsert},
		{'A', ChangeAppendLineEnd, ModeInsert},
		{'o', ChangeOpenBelow, ModeInsert},
		{'O', ChangeOpenAbove, ModeInsert},
		{'v', ChangeVisual, ModeVisual},
		{'V', ChangeVisualLine, ModeVisualLine},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			in := New(true)
			feed(t, in, "4")
			got := in.Handle(key.Char(tt.r))
			if got.Kind != ActionModeChange || got.Name != tt.wantName {
				t.Errorf("%c = %v, want mode-change %s", tt.r, got, tt.wantName)
			}
			if got.Mode != tt.wantMode || in.Mode() != tt.wantMode {
				t.Errorf("mode = %v, want %v", in.Mode(), tt.wantMode)
			}
			assertPendingCleared(t, in)
		})
	}
}

func TestSingleKeyEdits(t *testing.T) {
	tests := []struct {
		keys      string
		wantName  string
		wantCount int
		wantMode  Mode
	}{
		{"x", EditDeleteChar, 1, ModeNormal},
		{"3x", EditDeleteChar, 3, ModeNormal},
		{"p", EditPasteAfter, 1, ModeNormal},
		{"2P", EditPasteBefore, 2, ModeNormal},
		{"u", EditUndo, 1, ModeNormal},
		{"4u", EditUndo, 4, ModeNormal},
		{"<C-r>", EditRedo, 1, ModeNormal},
		{"5<C-r>", EditRedo, 1, ModeNormal},
		{"D", EditDeleteToLineEnd, 1, ModeNormal},
		{"C", EditChangeToLineEnd, 1, ModeInsert},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			in := New(true)
			got := last(t, in, tt.keys)
			assertAction(t, got, ActionEdit, tt.wantName, tt.wantCount)
			if in.Mode() != tt.wantMode {
				t.Errorf("mode = %v, want %v", in.Mode(), tt.wantMode)
			}
			assertPendingCleared(t, in)
		})
	}
}

func TestModifiedKeysAreAbsorbed(t *testing.T) {
	for _, k := range []string{"<C-x>", "<A-j>", "<C-d>", "<A-r>", "<C-A-r>", "<C-3>"} {
		in := New(true)
		feed(t, in, "3")
		if got := in.Handle(key.MustParse(k)); !got.IsNone() {
			t.Errorf("%s = %v, want none", k, got)
		}
		assertPendingCleared(t, in)
	}
}

func TestUnmatchedKeysResetPending(t *testing.T) {
	for _, k := range []string{"q", "z", "<CR>", "<Tab>", "<Up>", "<F1>", ":", "<Space>"} {
		in := New(true)
		feed(t, in, "12")
		if got := in.Handle(key.MustParse(k)); !got.IsNone() {
			t.Errorf("%s = %v, want none", k, got)
		}
		assertPendingCleared(t, in)
	}
}

func TestSearchKeys(t *testing.T) {
	in := New(true)

	got := in.Handle(key.Char('?'))
	assertAction(t, got, ActionSearch, SearchBackward, 1)
	if in.State().Search.Direction != Backward {
		t.Error("? should set backward direction")
	}

	in.SetSearchPattern("needle")
	got = in.Handle(key.Char('n'))
	assertAction(t, got, ActionSearch, SearchNext, 1)
	if got.Pattern != "needle" {
		t.Errorf("search-next pattern = %q, want needle", got.Pattern)
	}
	got = in.Handle(key.Char('N'))
	assertAction(t, got, ActionSearch, SearchPrev, 1)
	if in.State().Search.Direction != Backward {
		t.Error("n/N must not change the direction")
	}

	got = in.Handle(key.Char('/'))
	assertAction(t, got, ActionSearch, SearchForward, 1)
	if got.Pattern != "" {
		t.Errorf("search-forward pattern = %q, want empty", got.Pattern)
	}
	if in.State().Search.Direction != Forward {
		t.Error("/ should set forward direction")
	}

	// empty pattern reuses the last one
	in.SetSearchPattern("")
	s := in.State().Search
	if s.Pattern != "needle" || s.LastPattern != "needle" {
		t.Errorf("search state = %+v, want pattern and last pattern needle", s)
	}
}

func TestSearchClearsPending(t *testing.T) {
	in := New(true)
	feed(t, in, "3d")
	in.Handle(key.Char('/'))
	assertPendingCleared(t, in)
}

func TestLastMotionTracked(t *testing.T) {
	in := New(true)
	feed(t, in, "w")
	if got := in.State().LastMotion; got != MotionWordForward {
		t.Errorf("LastMotion = %q, want %q", got, MotionWordForward)
	}
	feed(t, in, "gg")
	if got := in.State().LastMotion; got != MotionBufferHome {
		t.Errorf("LastMotion = %q, want %q", got, MotionBufferHome)
	}
	feed(t, in, "ve")
	if got := in.State().LastMotion; got != SelectWordEnd {
		t.Errorf("LastMotion = %q, want %q", got, SelectWordEnd)
	}
	// edits leave it alone
	feed(t, in, "y")
	if got := in.State().LastMotion; got != SelectWordEnd {
		t.Errorf("LastMotion after edit = %q, want %q", got, SelectWordEnd)
	}
}

func TestVisualEdits(t *testing.T) {
	tests := []struct {
		start    Mode
		keys     string
		wantName string
		wantMode Mode
	}{
		{ModeVisual, "d", EditDeleteSelection, ModeNormal},
		{ModeVisual, "x", EditDeleteSelection, ModeNormal},
		{ModeVisual, "c", EditChangeSelection, ModeInsert},
		{ModeVisual, "y", EditYankSelection, ModeNormal},
		{ModeVisualLine, "d", EditDeleteSelection, ModeNormal},
		{ModeVisualLine, "c", EditChangeSelection, ModeInsert},
		{ModeVisualLine, "y", EditYankSelection, ModeNormal},
	}

	for _, tt := range tests {
		t.Run(tt.start.String()+"/"+tt.keys, func(t *testing.T) {
			in := New(true)
			in.SetMode(tt.start)
			got := last(t, in, tt.keys)
			assertAction(t, got, ActionEdit, tt.wantName, 1)
			if got.Mode != tt.wantMode || in.Mode() != tt.wantMode {
				t.Errorf("mode = %v, want %v", in.Mode(), tt.wantMode)
			}
			assertPendingCleared(t, in)
		})
	}
}

func TestVisualMotionsKeepMode(t *testing.T) {
	for _, m := range []Mode{ModeVisual, ModeVisualLine} {
		in := New(true)
		in.SetMode(m)
		got := last(t, in, "3j")
		assertAction(t, got, ActionMotion, SelectMoveDown, 3)
		if in.Mode() != m {
			t.Errorf("mode = %v, want %v", in.Mode(), m)
		}
	}
}

func TestVisualUnmatchedKeys(t *testing.T) {
	for _, k := range []string{"i", "p", "u", "v", "n", "/", "<C-r>", "gx"} {
		in := New(true)
		in.SetMode(ModeVisual)
		got := last(t, in, k)
		if !got.IsNone() {
			t.Errorf("visual %s = %v, want none", k, got)
		}
		if in.Mode() != ModeVisual {
			t.Errorf("visual %s changed mode to %v", k, in.Mode())
		}
		assertPendingCleared(t, in)
	}
}

func TestDisabledIsInert(t *testing.T) {
	in := New(false)
	before := in.State()

	for _, k := range []string{"3", "d", "d", "i", "<Esc>", "v", "gg", "<C-r>"} {
		for _, a := range feed(t, in, k) {
			if !a.IsNone() {
				t.Errorf("disabled %s = %v, want none", k, a)
			}
		}
	}

	after := in.State()
	if after.Mode != before.Mode || after.PendingCount != "" || after.PendingPrefix != 0 || after.LastMotion != "" {
		t.Errorf("disabled interpreter mutated state: %+v", after)
	}
}

func TestDisableIdempotent(t *testing.T) {
	in := New(true)
	in.SetMode(ModeVisual)
	feed(t, in, "3g")

	calls := 0
	in.OnEnabledChange(func(bool) { calls++ })

	in.Disable()
	first := in.State()
	in.Disable()
	second := in.State()

	if first.Enabled || second.Enabled {
		t.Error("expected disabled")
	}
	if first.Mode != ModeVisual || second.Mode != ModeVisual {
		t.Errorf("Disable changed mode: %v, %v", first.Mode, second.Mode)
	}
	if second.PendingCount != "" || second.PendingPrefix != 0 {
		t.Errorf("pending not cleared: %+v", second)
	}
	if calls != 1 {
		t.Errorf("enabled observer called %d times, want 1", calls)
	}
}

func TestEnableForcesNormal(t *testing.T) {
	in := New(false)
	in.SetMode(ModeInsert)
	in.Enable()

	if !in.Enabled() || in.Mode() != ModeNormal {
		t.Errorf("after Enable: enabled=%v mode=%v", in.Enabled(), in.Mode())
	}
	assertPendingCleared(t, in)
}

func TestToggle(t *testing.T) {
	in := New(true)
	in.SetMode(ModeVisualLine)

	in.Toggle()
	if in.Enabled() {
		t.Fatal("Toggle should disable")
	}
	if in.Mode() != ModeVisualLine {
		t.Errorf("Toggle off changed mode to %v", in.Mode())
	}

	in.Toggle()
	if !in.Enabled() {
		t.Fatal("Toggle should enable")
	}
	if in.Mode() != ModeNormal {
		t.Errorf("Toggle on mode = %v, want normal", in.Mode())
	}
}

func TestSetModeResetsPending(t *testing.T) {
	in := New(true)
	feed(t, in, "12d")
	in.SetMode(ModeNormal)
	assertPendingCleared(t, in)
}

func TestYankRegisterSideChannel(t *testing.T) {
	in := New(true)
	if got := in.YankRegister(); got != "" {
		t.Errorf("initial register = %q, want empty", got)
	}

	feed(t, in, "yy")
	if got := in.YankRegister(); got != "" {
		t.Errorf("register after yy = %q; only the host writes it", got)
	}

	in.SetYankRegister("line one\n")
	if got := last(t, in, "p"); got.Name != EditPasteAfter {
		t.Errorf("p = %v", got)
	}
	if got := in.YankRegister(); got != "line one\n" {
		t.Errorf("register = %q, want %q", got, "line one\n")
	}

	// later edits never clear it implicitly
	feed(t, in, "ddx<Esc>vy")
	if got := in.YankRegister(); got != "line one\n" {
		t.Errorf("register after edits = %q", got)
	}

	in.SetYankRegister("second")
	if got := in.State().Registers[UnnamedRegister]; got != "second" {
		t.Errorf("snapshot register = %q, want second", got)
	}
}

func TestStateSnapshotIsCopy(t *testing.T) {
	in := New(true)
	in.SetYankRegister("keep")
	s := in.State()
	s.Registers[UnnamedRegister] = "changed"
	if in.YankRegister() != "keep" {
		t.Error("mutating the snapshot changed the interpreter")
	}
}

func TestStatePending(t *testing.T) {
	in := New(true)
	feed(t, in, "3d")
	if got := in.State().Pending(); got != "3d" {
		t.Errorf("Pending() = %q, want 3d", got)
	}
	feed(t, in, "<Esc>2")
	if got := in.State().Pending(); got != "2" {
		t.Errorf("Pending() = %q, want 2", got)
	}
}

func TestModeChangeObserver(t *testing.T) {
	in := New(true)

	var changes []string
	unsubscribe := in.OnModeChange(func(from, to Mode) {
		changes = append(changes, from.String()+">"+to.String())
	})

	feed(t, in, "i<Esc>vy")
	in.SetMode(ModeNormal) // no change, no callback

	want := []string{"normal>insert", "insert>normal", "normal>visual", "visual>normal"}
	if fmt.Sprint(changes) != fmt.Sprint(want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}

	unsubscribe()
	feed(t, in, "i")
	if len(changes) != len(want) {
		t.Errorf("callback ran after unsubscribe: %v", changes)
	}
}

func TestActionReportsMode(t *testing.T) {
	in := New(true)
	if got := in.Handle(key.Char('v')); got.Mode != ModeVisual {
		t.Errorf("v action mode = %v", got.Mode)
	}
	if got := in.Handle(key.Char('z')); got.Mode != ModeVisual {
		t.Errorf("none action mode = %v", got.Mode)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Action{}, "none"},
		{Action{Kind: ActionMotion, Name: MotionMoveRight, Count: 10}, "motion move-right x10"},
		{Action{Kind: ActionEdit, Name: EditUndo, Count: 1}, "edit undo"},
		{Action{Kind: ActionSearch, Name: SearchNext, Count: 1, Pattern: "foo"}, `search search-next "foo"`},
		{Action{Kind: ActionRegister, Register: 'a', Count: 1}, `register register 'a'`},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
