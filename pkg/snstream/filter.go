package snstream

import (
	"errors"
	"io"
	"math"
)

// UTF-8 byte order mark.
const (
	bomByte1 = 0xef
	bomByte2 = 0xbb
	bomByte3 = 0xbf
)

// Filter reads bytes from a source, stripping an optional UTF-8 BOM,
// normalising CR, LF, CR+LF and LF+CR line terminators to a single LF, and
// counting lines. Exactly one byte of pushback is supported.
//
// Once the filter reports io.EOF, ErrBadSignature or a source error, every
// subsequent Read reports the same condition.
type Filter struct {
	src      io.ByteReader
	err      error
	line     int64
	last     byte
	raw      int
	started  bool
	pushback bool
	bom      bool
}

// NewFilter returns a filter reading from src.
func NewFilter(src io.ByteReader) *Filter {
	f := &Filter{}
	f.Reset(src)
	return f
}

// Reset returns the filter to its initial state, reading from src.
func (f *Filter) Reset(src io.ByteReader) {
	f.src = src
	f.err = nil
	f.line = 0
	f.last = 0
	f.raw = -1
	f.started = false
	f.pushback = false
	f.bom = false
}

// readRaw reads one byte from the source, honouring the raw-side unread slot
// used for BOM detection and newline pairing.
func (f *Filter) readRaw() (byte, error) {
	if f.raw >= 0 {
		c := byte(f.raw)
		f.raw = -1
		return c, nil
	}
	if f.src == nil {
		return 0, io.EOF
	}
	return f.src.ReadByte()
}

// unreadRaw stores one byte in the raw-side unread slot.
func (f *Filter) unreadRaw(c byte) {
	f.raw = int(c)
}

// fail records a terminal condition. Source errors other than io.EOF are
// retained as-is so callers can unwrap the cause.
func (f *Filter) fail(err error) error {
	if f.err == nil {
		f.err = err
	}
	return f.err
}

// readSignature handles the first-byte protocol: a leading 0xEF must be
// followed by the rest of a UTF-8 BOM or the stream is rejected.
func (f *Filter) readSignature() error {
	c, err := f.readRaw()
	if err != nil {
		return f.fail(err)
	}
	if c != bomByte1 {
		f.unreadRaw(c)
		return nil
	}
	for _, want := range [2]byte{bomByte2, bomByte3} {
		c, err = f.readRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return f.fail(ErrBadSignature)
			}
			return f.fail(err)
		}
		if c != want {
			return f.fail(ErrBadSignature)
		}
	}
	f.bom = true
	return nil
}

// Read returns the next filtered byte.
func (f *Filter) Read() (byte, error) {
	if f.pushback {
		f.pushback = false
		return f.last, nil
	}
	if f.err != nil {
		return 0, f.err
	}
	if !f.started {
		if err := f.readSignature(); err != nil {
			return 0, err
		}
	}
	c, err := f.readRaw()
	if err != nil {
		return 0, f.fail(err)
	}
	if c == asciiCR || c == asciiLF {
		c2, err2 := f.readRaw()
		switch {
		case err2 != nil && errors.Is(err2, io.EOF):
			// Lone terminator at end of file; nothing to pair.
		case err2 != nil:
			return 0, f.fail(err2)
		case (c == asciiLF && c2 == asciiCR) || (c == asciiCR && c2 == asciiLF):
			// CR+LF or LF+CR pair consumed as one terminator.
		default:
			f.unreadRaw(c2)
		}
		c = asciiLF
	}
	if !f.started {
		f.started = true
		f.line = 1
	}
	if c == asciiLF && f.line < math.MaxInt64 {
		f.line++
	}
	f.last = c
	return c, nil
}

// Unread arranges for the byte most recently returned by Read to be returned
// again. It fails when no byte has been read or a byte is already pushed
// back. In a terminal state the call is a no-op.
func (f *Filter) Unread() error {
	if f.err != nil {
		return nil
	}
	if !f.started || f.pushback {
		return ErrPushback
	}
	f.pushback = true
	return nil
}

// Line returns the line number of the byte most recently delivered, with an
// LF reporting the line it terminates. Before any byte has been read the
// line is 1. The counter saturates at math.MaxInt64.
func (f *Filter) Line() int64 {
	if !f.started {
		return 1
	}
	if f.line == math.MaxInt64 {
		return f.line
	}
	if f.last == asciiLF && f.line > 1 {
		return f.line - 1
	}
	return f.line
}

// BOM reports whether a UTF-8 byte order mark was stripped from the start of
// the stream. Meaningful only after the first Read.
func (f *Filter) BOM() bool {
	return f.bom
}

// Err returns the terminal condition, if any.
func (f *Filter) Err() error {
	return f.err
}
