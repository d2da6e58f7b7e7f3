// Package settings persists the "modal editing enabled" flag in a JSON
// settings file shared with other tools, and reports external edits to it.
//
// Only the vimModeEnabled key is touched; the rest of the document is
// preserved byte for byte.
package settings
