package sntext

// NumericEscape describes how to parse the digits of a numeric escape after
// its opening entity has been matched by the decoding map.
type NumericEscape struct {
	// Base is the digit radix, 10 or 16.
	Base int
	// MinDigits is the minimum digit count.
	MinDigits int
	// MaxDigits is the maximum digit count; zero means unbounded.
	MaxDigits int
	// Terminator is the byte value closing the escape, or -1 when the
	// escape ends at the first non-digit.
	Terminator int
	// Max is the largest permitted result; zero means MaxCodepoint.
	// Surrogate results are always rejected.
	Max int64
}

// EscapeQuery reports whether an entity opens a numeric escape. It is
// consulted for every decoded entity before encoding.
type EscapeQuery func(entity int64) (NumericEscape, bool)

// digitValue returns the value of scalar s as a digit in base, or -1.
func digitValue(s int64, base int64) int64 {
	switch {
	case s >= '0' && s <= '9':
		v := s - '0'
		if v < base {
			return v
		}
	case base == 16 && s >= 'a' && s <= 'f':
		return s - 'a' + 10
	case base == 16 && s >= 'A' && s <= 'F':
		return s - 'A' + 10
	}
	return -1
}
