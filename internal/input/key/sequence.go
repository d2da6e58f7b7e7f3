package key

import "strings"

// Sequence is an ordered run of key events, e.g. "3dd" or "g g".
type Sequence []Event

// String returns the Vim-style representation, e.g. "3dd<Esc>".
func (s Sequence) String() string {
	var sb strings.Builder
	for _, e := range s {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// ParseSequence parses a key sequence string.
// Whitespace-separated input is parsed key by key ("g g", "Ctrl+R Escape");
// otherwise the string is read as a continuous Vim-style run ("3dd<Esc>").
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sequence{}, nil
	}

	if strings.ContainsAny(s, " \t\n") {
		fields := strings.Fields(s)
		seq := make(Sequence, 0, len(fields))
		for _, part := range fields {
			event, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq = append(seq, event)
		}
		return seq, nil
	}

	seq := make(Sequence, 0, len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			end := strings.IndexRune(string(runes[i:]), '>')
			// "<" with no closing ">" or "<>" is a literal "<"
			if end > 1 {
				closing := i + len([]rune(string(runes[i:])[:end]))
				event, err := Parse(string(runes[i : closing+1]))
				if err != nil {
					return nil, err
				}
				seq = append(seq, event)
				i = closing + 1
				continue
			}
		}
		seq = append(seq, Char(runes[i]))
		i++
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
