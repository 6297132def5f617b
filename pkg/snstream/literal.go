package snstream

import (
	"errors"
	"io"
	"math"
)

// readDelimited scans a string payload whose opening delimiter has already
// been consumed. The payload bytes are appended to buf without the closing
// delimiter; a backslash suppresses the delimiter meaning of the following
// byte. Nesting is tracked only for curly payloads.
func readDelimited(buf *Buffer, f *Filter, open, close byte, nested bool) error {
	buf.Reset(false)
	escaped := false
	nest := int64(1)
	for {
		c, err := f.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrOpenString
			}
			return err
		}
		if !escaped {
			if nested {
				switch c {
				case open:
					if nest == math.MaxInt64 {
						return ErrDeepCurly
					}
					nest++
				case close:
					nest--
				}
				if nest < 1 {
					return nil
				}
			} else if c == close {
				return nil
			}
		}
		escaped = c == asciiBackslash
		if c == 0 {
			return ErrNullChar
		}
		if !buf.Append(c) {
			return ErrLongString
		}
	}
}

// ReadQuoted reads a double-quoted string payload into buf. The opening
// quote must already have been consumed; the closing quote is consumed but
// not appended.
func ReadQuoted(buf *Buffer, f *Filter) error {
	return readDelimited(buf, f, 0, asciiDQuote, false)
}

// ReadApostrophe reads an apostrophe-quoted string payload into buf.
func ReadApostrophe(buf *Buffer, f *Filter) error {
	return readDelimited(buf, f, 0, asciiSQuote, false)
}

// ReadCurly reads a curly-bracketed string payload into buf. Balanced inner
// bracket pairs are kept verbatim; only the outermost closing bracket ends
// the payload.
func ReadCurly(buf *Buffer, f *Filter) error {
	return readDelimited(buf, f, asciiLCurly, asciiRCurly, true)
}
