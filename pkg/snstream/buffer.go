package snstream

// Buffer is a bounded growable byte buffer. Capacity grows by doubling up to
// a fixed maximum; one byte of capacity is always reserved so that a
// terminated view can be produced without reallocation. The buffer records
// whether a zero byte was ever stored, since a terminated view would be
// misleading for such data.
type Buffer struct {
	data        []byte
	initCap     int
	maxCap      int
	nullPresent bool
}

// NewBuffer returns a buffer with the given initial and maximum capacities.
// initCap must be positive and no greater than maxCap.
func NewBuffer(initCap, maxCap int) *Buffer {
	if initCap <= 0 || maxCap < initCap {
		panic("snstream: invalid buffer capacities")
	}
	return &Buffer{initCap: initCap, maxCap: maxCap}
}

// Reset clears the buffer. A full reset also releases the backing storage.
func (b *Buffer) Reset(full bool) {
	b.data = b.data[:0]
	b.nullPresent = false
	if full {
		b.data = nil
	}
}

// Append adds one byte. It reports false when the buffer is out of capacity;
// the buffer is unmodified in that case.
func (b *Buffer) Append(c byte) bool {
	if len(b.data) >= b.maxCap-1 {
		return false
	}
	if cap(b.data) == 0 {
		b.data = make([]byte, 0, b.initCap)
	} else if len(b.data) >= cap(b.data)-1 {
		newCap := cap(b.data) * 2
		if newCap > b.maxCap {
			newCap = b.maxCap
		}
		grown := make([]byte, len(b.data), newCap)
		copy(grown, b.data)
		b.data = grown
	}
	if c == 0 {
		b.nullPresent = true
	}
	b.data = append(b.data, c)
	return true
}

// Bytes returns the buffered data. The slice is valid until the next Append
// or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// MaxLen returns the maximum number of data bytes the buffer can hold.
func (b *Buffer) MaxLen() int {
	return b.maxCap - 1
}

// Last returns the final buffered byte, if any.
func (b *Buffer) Last() (byte, bool) {
	if len(b.data) == 0 {
		return 0, false
	}
	return b.data[len(b.data)-1], true
}

// TrimLast removes the final buffered byte. It reports false when the buffer
// is already empty.
func (b *Buffer) TrimLast() bool {
	if len(b.data) == 0 {
		return false
	}
	b.data = b.data[:len(b.data)-1]
	return true
}

// NullPresent reports whether a zero byte has been stored since the last
// reset.
func (b *Buffer) NullPresent() bool {
	return b.nullPresent
}

// Terminated returns the data with a trailing zero byte appended. It reports
// false when the data itself contains a zero byte, since scanning for the
// terminator would truncate such data.
func (b *Buffer) Terminated() ([]byte, bool) {
	if b.nullPresent {
		return nil, false
	}
	if cap(b.data) == 0 {
		b.data = make([]byte, 0, b.initCap)
	}
	out := append(b.data, 0)
	return out, true
}
