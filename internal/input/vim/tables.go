package vim

// Motion names.
const (
	MotionMoveLeft      = "move-left"
	MotionMoveRight     = "move-right"
	MotionMoveDown      = "move-down"
	MotionMoveUp        = "move-up"
	MotionWordForward   = "word-forward"
	MotionWordBackward  = "word-backward"
	MotionWordEnd       = "word-end"
	MotionLineHome      = "line-home"
	MotionLineEnd       = "line-end"
	MotionLineFirstChar = "line-first-char"
	MotionBufferEnd     = "buffer-end"
	MotionBufferHome    = "buffer-home"

	SelectMoveLeft      = "select-move-left"
	SelectMoveRight     = "select-move-right"
	SelectMoveDown      = "select-move-down"
	SelectMoveUp        = "select-move-up"
	SelectWordForward   = "select-word-forward"
	SelectWordBackward  = "select-word-backward"
	SelectWordEnd       = "select-word-end"
	SelectLineHome      = "select-line-home"
	SelectLineEnd       = "select-line-end"
	SelectLineFirstChar = "select-line-first-char"
	SelectBufferEnd     = "select-buffer-end"
	SelectBufferHome    = "select-buffer-home"
)

// Edit names.
const (
	EditDeleteLine      = "delete-line"
	EditChangeLine      = "change-line"
	EditYankLine        = "yank-line"
	EditDeleteChar      = "delete-char"
	EditPasteAfter      = "paste-after"
	EditPasteBefore     = "paste-before"
	EditUndo            = "undo"
	EditRedo            = "redo"
	EditDeleteToLineEnd = "delete-to-line-end"
	EditChangeToLineEnd = "change-to-line-end"
	EditDeleteSelection = "delete-selection"
	EditChangeSelection = "change-selection"
	EditYankSelection   = "yank-selection"
)

// Mode-change names. Insert entry carries where the cursor lands.
const (
	ChangeNormal          = "normal"
	ChangeInsert          = "insert"
	ChangeInsertLineStart = "insert-line-start"
	ChangeAppend          = "append"
	ChangeAppendLineEnd   = "append-line-end"
	ChangeOpenBelow       = "open-below"
	ChangeOpenAbove       = "open-above"
	ChangeVisual          = "visual"
	ChangeVisualLine      = "visual-line"
)

// Search action names.
const (
	SearchForward  = "search-forward"
	SearchBackward = "search-backward"
	SearchNext     = "search-next"
	SearchPrev     = "search-prev"
)

// binding is one table entry: the action to emit and the mode to leave the
// interpreter in afterwards.
type binding struct {
	kind ActionKind
	name string

	// next is the mode after firing; ignored unless switches is set.
	next     Mode
	switches bool

	// counted bindings report the accumulated count; others report 1.
	counted bool
}

func motion(name string) binding {
	return binding{kind: ActionMotion, name: name, counted: true}
}

func edit(name string) binding {
	return binding{kind: ActionEdit, name: name, counted: true}
}

func editTo(name string, next Mode) binding {
	return binding{kind: ActionEdit, name: name, next: next, switches: true, counted: true}
}

func enter(name string, next Mode) binding {
	return binding{kind: ActionModeChange, name: name, next: next, switches: true}
}

// normalMotions maps Normal-mode motion keys to motion names.
var normalMotions = map[rune]binding{
	'h': motion(MotionMoveLeft),
	'l': motion(MotionMoveRight),
	'j': motion(MotionMoveDown),
	'k': motion(MotionMoveUp),
	'w': motion(MotionWordForward),
	'b': motion(MotionWordBackward),
	'e': motion(MotionWordEnd),
	'0': motion(MotionLineHome),
	'$': motion(MotionLineEnd),
	'^': motion(MotionLineFirstChar),
	'G': motion(MotionBufferEnd),
}

// visualMotions extends the selection over the same keys as normalMotions.
var visualMotions = map[rune]binding{
	'h': motion(SelectMoveLeft),
	'l': motion(SelectMoveRight),
	'j': motion(SelectMoveDown),
	'k': motion(SelectMoveUp),
	'w': motion(SelectWordForward),
	'b': motion(SelectWordBackward),
	'e': motion(SelectWordEnd),
	'0': motion(SelectLineHome),
	'$': motion(SelectLineEnd),
	'^': motion(SelectLineFirstChar),
	'G': motion(SelectBufferEnd),
}

// normalPrefixes resolves a leader pressed twice.
var normalPrefixes = map[rune]binding{
	'g': motion(MotionBufferHome),
	'd': edit(EditDeleteLine),
	'c': editTo(EditChangeLine, ModeInsert),
	'y': edit(EditYankLine),
}

var visualPrefixes = map[rune]binding{
	'g': motion(SelectBufferHome),
}

// normalKeys holds the remaining single-key Normal-mode commands.
var normalKeys = map[rune]binding{
	'i': enter(ChangeInsert, ModeInsert),
	'I': enter(ChangeInsertLineStart, ModeInsert),
	'a': enter(ChangeAppend, ModeInsert),
	'A': enter(ChangeAppendLineEnd, ModeInsert),
	'o': enter(ChangeOpenBelow, ModeInsert),
	'O': enter(ChangeOpenAbove, ModeInsert),
	'v': enter(ChangeVisual, ModeVisual),
	'V': enter(ChangeVisualLine, ModeVisualLine),

	'x': edit(EditDeleteChar),
	'p': edit(EditPasteAfter),
	'P': edit(EditPasteBefore),
	'u': edit(EditUndo),
	'D': edit(EditDeleteToLineEnd),
	'C': editTo(EditChangeToLineEnd, ModeInsert),

	'/': {kind: ActionSearch, name: SearchForward},
	'?': {kind: ActionSearch, name: SearchBackward},
	'n': {kind: ActionSearch, name: SearchNext},
	'N': {kind: ActionSearch, name: SearchPrev},
}

// visualKeys operate on the selection.
var visualKeys = map[rune]binding{
	'd': editTo(EditDeleteSelection, ModeNormal),
	'x': editTo(EditDeleteSelection, ModeNormal),
	'c': editTo(EditChangeSelection, ModeInsert),
	'y': editTo(EditYankSelection, ModeNormal),
}

// ctrlKeys are the only modified bindings. Redo takes no count.
var ctrlKeys = map[rune]binding{
	'r': {kind: ActionEdit, name: EditRedo},
}
