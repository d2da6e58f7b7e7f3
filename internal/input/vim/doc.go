// Package vim implements the modal key interpreter.
//
// The Interpreter turns decoded key events into editing intents. It owns a
// small state record (mode, pending count, pending prefix, registers, search
// state) and is a pure function of that state and the incoming key:
//
//	interp := vim.New(settings.Enabled())
//	for ev := range keys {
//	    action := interp.Handle(ev)
//	    surface.Apply(action)
//	}
//
// # Grammar
//
// Normal mode accepts
//
//	[count] motion            5j, 10l, 0, $, G
//	[count] g g               buffer-home
//	[count] d d | c c | y y   line edits
//	[count] x | p | P | u     single-key edits
//	i I a A o O v V           mode entry
//	/ ? n N                   search intents
//	<C-r>                     redo
//
// Counts start with 1-9; a bare 0 is the line-home motion. A pending leader
// (g, d, c, y) is held in one field and resolved through a table; any key
// other than a repeat of the leader clears it and is dropped.
//
// Visual and visual-line modes accept the same motions under select-
// names, g g, and d/x, c, y on the selection.
//
// # Threading
//
// An Interpreter is not safe for concurrent use. The host calls Handle and
// the setters from its input loop only; observers run synchronously inside
// those calls and must not call Handle.
package vim
