// Package key provides the decoded key event consumed by the modal interpreter.
//
// A key event is a logical key name plus three modifier flags:
//
//   - Name: "escape", "return", "up", "f2", or the literal character ("d", "D", "$")
//   - Ctrl, Alt, Shift: modifier state reported by the key source
//
// Literal characters are case significant: "D" is what the key source reports
// for Shift+d. Named keys are always lowercase.
//
// # Key Specifications
//
// Specifications are accepted in several formats, mostly for scripts and tests:
//
//   - Simple keys: "a", "A", "1", "Escape", "Return"
//   - With modifiers: "Ctrl+R", "Alt+x", "Ctrl+Shift+P"
//   - Vim-style: "<C-r>", "<Esc>", "<CR>", "<Space>"
//
// ParseSequence reads a whole run of keys such as "3dd" or "g g <Esc>".
package key
