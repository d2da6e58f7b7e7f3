package vim

import "math"

// MaxCount is the largest count reported; longer digit runs saturate.
const MaxCount = math.MaxInt32

// CountState tracks count prefix accumulation.
type CountState struct {
	digits []byte
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.digits = c.digits[:0]
}

// Active returns true if at least one digit has been accumulated.
func (c *CountState) Active() bool {
	return len(c.digits) > 0
}

// AccumulateDigit adds a digit to the count.
// Returns true if the digit was accepted. '0' is only accepted after a
// leading 1-9, since a bare '0' is the line-home motion.
func (c *CountState) AccumulateDigit(r rune) bool {
	if !IsCountDigit(r) {
		return false
	}
	if !c.Active() && !IsCountStart(r) {
		return false
	}
	c.digits = append(c.digits, byte(r))
	return true
}

// Digits returns the accumulated digits ("" when none).
func (c *CountState) Digits() string {
	return string(c.digits)
}

// Get returns the effective count (1 if no count was specified).
func (c *CountState) Get() int {
	if !c.Active() {
		return 1
	}
	return ParseCount(string(c.digits))
}

// ParseCount converts a digit string to a count, saturating at MaxCount.
// Returns 1 for an empty or non-numeric string.
func ParseCount(digits string) int {
	if digits == "" {
		return 1
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return 1
		}
		digit := int(d - '0')
		if n > (MaxCount-digit)/10 {
			return MaxCount
		}
		n = n*10 + digit
	}
	if n == 0 {
		return 1
	}
	return n
}

// IsCountStart returns true if the character could start a count.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// IsCountDigit returns true if the character is a digit valid in a count.
func IsCountDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
