package loader

import (
	"os"
	"strings"
)

// LookupFunc looks up an environment variable.
type LookupFunc func(name string) (string, bool)

// Env reads mapped environment variables.
type Env struct {
	lookup LookupFunc
}

// NewEnv creates an Env backed by os.LookupEnv.
func NewEnv() *Env {
	return &Env{lookup: os.LookupEnv}
}

// NewEnvWithLookup creates an Env with a custom lookup, for tests.
func NewEnvWithLookup(lookup LookupFunc) *Env {
	return &Env{lookup: lookup}
}

// String returns the value of name. Empty values count as set.
func (e *Env) String(name string) (string, bool) {
	return e.lookup(name)
}

// Bool returns the value of name parsed as a boolean. Accepts
// true/yes/on/1 and false/no/off/0; anything else reports ok=false.
func (e *Env) Bool(name string) (value, ok bool) {
	s, set := e.lookup(name)
	if !set {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return false, false
	}
}
