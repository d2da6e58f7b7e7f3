// Package terminal connects the interpreter to a tcell screen: it decodes
// tcell key events into key.Event values and draws the status view.
package terminal
