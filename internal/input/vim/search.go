package vim

// Direction is the direction of the pending search.
type Direction uint8

const (
	// Forward searches toward the end of the buffer.
	Forward Direction = iota

	// Backward searches toward the start of the buffer.
	Backward
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// SearchState holds the captured search intent. Execution belongs to the
// host's search engine.
type SearchState struct {
	// Pattern is the pattern most recently supplied by the host.
	Pattern string

	// Direction is set by / and ?; n and N leave it untouched.
	Direction Direction

	// LastPattern is the last non-empty pattern, "" if none was ever set.
	LastPattern string
}

// setPattern records a pattern typed after / or ?. An empty pattern reuses
// the previous one.
func (s *SearchState) setPattern(pattern string) {
	if pattern == "" {
		s.Pattern = s.LastPattern
		return
	}
	s.Pattern = pattern
	s.LastPattern = pattern
}
