package sntext

import "github.com/jacoelho/shastina/pkg/snstream"

// readScalar pre-decodes one codepoint from the payload according to the
// input override.
func (d *stringDecoder) readScalar() (int64, error) {
	switch d.p.Input {
	case InputUTF8:
		return d.readUTF8(false)
	case InputCESU8:
		return d.readUTF8(true)
	case InputUTF16LE:
		return d.readUTF16(false)
	case InputUTF16BE:
		return d.readUTF16(true)
	case InputUTF32LE:
		return d.readUTF32(false)
	case InputUTF32BE:
		return d.readUTF32(true)
	}
	c, err := d.readByte()
	return int64(c), err
}

// readUTF8Unit decodes one UTF-8 sequence. Surrogate codepoints are passed
// through; pairing is the caller's concern.
func (d *stringDecoder) readUTF8Unit() (int64, error) {
	b0, err := d.readByte()
	if err != nil {
		return 0, err
	}
	var code int64
	var cont int
	switch {
	case b0 < 0x80:
		return int64(b0), nil
	case b0 < 0xc0:
		return 0, snstream.ErrBadChar
	case b0 < 0xe0:
		code, cont = int64(b0&0x1f), 1
	case b0 < 0xf0:
		code, cont = int64(b0&0x0f), 2
	case b0 < 0xf8:
		code, cont = int64(b0&0x07), 3
	default:
		return 0, snstream.ErrBadChar
	}
	for i := 0; i < cont; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if b&0xc0 != 0x80 {
			return 0, snstream.ErrBadChar
		}
		code = code<<6 | int64(b&0x3f)
	}
	if code > MaxCodepoint {
		return 0, snstream.ErrBadChar
	}
	return code, nil
}

// readUTF8 decodes one scalar. In CESU-8 mode a high surrogate must be
// followed by a low surrogate and the pair combines into a supplemental
// codepoint; in plain UTF-8 mode surrogates pass through unchanged.
func (d *stringDecoder) readUTF8(pairSurrogates bool) (int64, error) {
	code, err := d.readUTF8Unit()
	if err != nil {
		return 0, err
	}
	if !pairSurrogates || code < minSurrogate || code > maxSurrogate {
		return code, nil
	}
	if code >= loSurrogate {
		return 0, snstream.ErrBadChar
	}
	lo, err := d.readUTF8Unit()
	if err != nil {
		return 0, err
	}
	if lo < loSurrogate || lo > maxSurrogate {
		return 0, snstream.ErrBadChar
	}
	return combineSurrogates(code, lo), nil
}

// readUTF16Unit decodes one 16-bit code unit in the chosen byte order.
func (d *stringDecoder) readUTF16Unit(big bool) (int64, error) {
	b0, err := d.readByte()
	if err != nil {
		return 0, err
	}
	b1, err := d.readByte()
	if err != nil {
		return 0, err
	}
	if big {
		return int64(b0)<<8 | int64(b1), nil
	}
	return int64(b1)<<8 | int64(b0), nil
}

// readUTF16 decodes one scalar, combining surrogate pairs.
func (d *stringDecoder) readUTF16(big bool) (int64, error) {
	unit, err := d.readUTF16Unit(big)
	if err != nil {
		return 0, err
	}
	if unit < minSurrogate || unit > maxSurrogate {
		return unit, nil
	}
	if unit >= loSurrogate {
		return 0, snstream.ErrBadChar
	}
	lo, err := d.readUTF16Unit(big)
	if err != nil {
		return 0, err
	}
	if lo < loSurrogate || lo > maxSurrogate {
		return 0, snstream.ErrBadChar
	}
	return combineSurrogates(unit, lo), nil
}

// readUTF32 decodes one 32-bit unit in the chosen byte order.
func (d *stringDecoder) readUTF32(big bool) (int64, error) {
	var unit [4]byte
	for i := range unit {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		unit[i] = b
	}
	var code int64
	if big {
		code = int64(unit[0])<<24 | int64(unit[1])<<16 | int64(unit[2])<<8 | int64(unit[3])
	} else {
		code = int64(unit[3])<<24 | int64(unit[2])<<16 | int64(unit[1])<<8 | int64(unit[0])
	}
	if code < 0 || code > MaxCodepoint {
		return 0, snstream.ErrBadChar
	}
	return code, nil
}

func combineSurrogates(hi, lo int64) int64 {
	return minSupplemental + (hi-hiSurrogate)<<10 + (lo - loSurrogate)
}
