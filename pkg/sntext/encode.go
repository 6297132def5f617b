package sntext

import "github.com/jacoelho/shastina/pkg/snstream"

// Unicode range boundaries used by the output overrides.
const (
	// MaxCodepoint is the largest Unicode codepoint. Entities above it are
	// application-defined keys and always use the encoding table.
	MaxCodepoint = int64(0x10ffff)

	minSurrogate    = int64(0xd800)
	maxSurrogate    = int64(0xdfff)
	hiSurrogate     = int64(0xd800)
	loSurrogate     = int64(0xdc00)
	minSupplemental = int64(0x10000)
)

// OutputMode selects an output override for Unicode-range entities.
type OutputMode int

const (
	// OutputNone uses the encoding table for every entity.
	OutputNone OutputMode = iota
	// OutputUTF8 emits Unicode-range entities as UTF-8.
	OutputUTF8
	// OutputCESU8 emits supplemental entities as UTF-8 surrogate pairs.
	OutputCESU8
	// OutputUTF16LE emits UTF-16 code units, least significant byte first.
	OutputUTF16LE
	// OutputUTF16BE emits UTF-16 code units, most significant byte first.
	OutputUTF16BE
	// OutputUTF32LE emits one 32-bit unit per entity, little endian.
	OutputUTF32LE
	// OutputUTF32BE emits one 32-bit unit per entity, big endian.
	OutputUTF32BE
)

// EncoderFunc is the encoding-table contract. It returns the number of bytes
// the entity encodes to, storing them in dst when dst is large enough; a
// return larger than len(dst) stores nothing and asks the caller to retry
// with more room. Unknown entities encode to zero bytes.
type EncoderFunc func(entity int64, dst []byte) int

const minScratch = 8

// outputEncoder applies an output override over an encoding table, widening
// a scratch buffer on demand for table encodings.
type outputEncoder struct {
	table   EncoderFunc
	scratch []byte
	mode    OutputMode
	strict  bool
}

// encode appends the encoding of entity to dst.
func (e *outputEncoder) encode(dst *snstream.Buffer, entity int64) error {
	mode := e.mode
	// Output overrides never apply beyond Unicode range, and in strict mode
	// never to surrogates.
	if entity > MaxCodepoint {
		mode = OutputNone
	}
	if e.strict && entity >= minSurrogate && entity <= maxSurrogate {
		mode = OutputNone
	}
	ok := false
	switch mode {
	case OutputNone:
		return e.encodeTable(dst, entity)
	case OutputUTF8:
		ok = appendUTF8(dst, entity, false)
	case OutputCESU8:
		ok = appendUTF8(dst, entity, true)
	case OutputUTF16LE:
		ok = appendUTF16(dst, entity, false)
	case OutputUTF16BE:
		ok = appendUTF16(dst, entity, true)
	case OutputUTF32LE:
		ok = appendUTF32(dst, entity, false)
	case OutputUTF32BE:
		ok = appendUTF32(dst, entity, true)
	}
	if !ok {
		return ErrHugeBlock
	}
	return nil
}

// encodeTable maps entity through the encoding table, retrying with a wider
// scratch buffer until the required length fits. The scratch buffer is
// bounded by the output buffer capacity.
func (e *outputEncoder) encodeTable(dst *snstream.Buffer, entity int64) error {
	if e.table == nil {
		return nil
	}
	limit := dst.MaxLen() + 1
	for {
		n := e.table(entity, e.scratch)
		if n <= len(e.scratch) {
			for _, c := range e.scratch[:n] {
				if !dst.Append(c) {
					return ErrHugeBlock
				}
			}
			return nil
		}
		if n > limit {
			return ErrHugeBlock
		}
		grown := len(e.scratch)
		if grown < minScratch {
			grown = minScratch
		}
		for grown < n {
			grown *= 2
		}
		if grown > limit {
			grown = limit
		}
		e.scratch = make([]byte, grown)
	}
}

// surrogatePair splits a supplemental codepoint into its high and low
// surrogates.
func surrogatePair(code int64) (int64, int64) {
	offset := code - minSupplemental
	return hiSurrogate + (offset>>10)&0x3ff, loSurrogate + offset&0x3ff
}

// appendUTF8 appends the UTF-8 encoding of code. In CESU-8 mode a
// supplemental codepoint is first split into surrogates, each emitted as a
// three-byte sequence.
func appendUTF8(dst *snstream.Buffer, code int64, cesu8 bool) bool {
	if cesu8 && code >= minSupplemental {
		hi, lo := surrogatePair(code)
		if !appendUTF8(dst, hi, false) {
			return false
		}
		code = lo
	}
	var unit [4]byte
	var n int
	switch {
	case code < 0x80:
		unit[0] = byte(code)
		n = 1
	case code < 0x800:
		unit[0] = 0xc0 | byte(code>>6)
		unit[1] = 0x80 | byte(code&0x3f)
		n = 2
	case code < minSupplemental:
		unit[0] = 0xe0 | byte(code>>12)
		unit[1] = 0x80 | byte((code>>6)&0x3f)
		unit[2] = 0x80 | byte(code&0x3f)
		n = 3
	default:
		unit[0] = 0xf0 | byte(code>>18)
		unit[1] = 0x80 | byte((code>>12)&0x3f)
		unit[2] = 0x80 | byte((code>>6)&0x3f)
		unit[3] = 0x80 | byte(code&0x3f)
		n = 4
	}
	for i := 0; i < n; i++ {
		if !dst.Append(unit[i]) {
			return false
		}
	}
	return true
}

// appendUTF16 appends the UTF-16 encoding of code in the chosen byte order.
// Supplemental codepoints become a surrogate pair, high surrogate first.
func appendUTF16(dst *snstream.Buffer, code int64, big bool) bool {
	if code >= minSupplemental {
		hi, lo := surrogatePair(code)
		if !appendUTF16(dst, hi, big) {
			return false
		}
		code = lo
	}
	b0, b1 := byte(code&0xff), byte((code>>8)&0xff)
	if big {
		b0, b1 = b1, b0
	}
	return dst.Append(b0) && dst.Append(b1)
}

// appendUTF32 appends one 32-bit unit for code in the chosen byte order.
func appendUTF32(dst *snstream.Buffer, code int64, big bool) bool {
	unit := [4]byte{
		byte(code & 0xff),
		byte((code >> 8) & 0xff),
		byte((code >> 16) & 0xff),
		byte((code >> 24) & 0xff),
	}
	if big {
		unit[0], unit[1], unit[2], unit[3] = unit[3], unit[2], unit[1], unit[0]
	}
	for _, c := range unit {
		if !dst.Append(c) {
			return false
		}
	}
	return true
}
