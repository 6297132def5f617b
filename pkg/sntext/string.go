package sntext

import (
	"errors"
	"io"
	"math"

	"github.com/jacoelho/shastina/pkg/snstream"
)

// InputMode selects a pre-decoding of the payload bytes feeding the decoding
// map. With an override active, scalars below 0x80 feed the map as single
// bytes so escape syntax keeps working; larger scalars bypass the map and
// are emitted directly as entities.
type InputMode int

const (
	// InputNone feeds raw bytes to the decoding map.
	InputNone InputMode = iota
	// InputUTF8 pre-decodes the payload as UTF-8.
	InputUTF8
	// InputCESU8 pre-decodes the payload as CESU-8, pairing surrogates.
	InputCESU8
	// InputUTF16LE pre-decodes little-endian UTF-16.
	InputUTF16LE
	// InputUTF16BE pre-decodes big-endian UTF-16.
	InputUTF16BE
	// InputUTF32LE pre-decodes little-endian UTF-32.
	InputUTF32LE
	// InputUTF32BE pre-decodes big-endian UTF-32.
	InputUTF32BE
)

// StringParams configures one string read.
type StringParams struct {
	// Kind selects the delimiter and nesting rules.
	Kind snstream.StringKind
	// Map is the decoding map; nil selects DefaultMap.
	Map DecodingMap
	// Escapes registers numeric escapes; nil registers none.
	Escapes EscapeQuery
	// Table is the encoding table; nil selects IdentityEncoder.
	Table EncoderFunc
	// Output selects an output override.
	Output OutputMode
	// Strict routes surrogate-range entities to the encoding table when an
	// output override is active.
	Strict bool
	// Input selects an input override.
	Input InputMode
}

// ReadString reads one string payload through the decode/encode pipeline
// into dst. The opening delimiter must already have been consumed; the
// closing delimiter is consumed but produces no output.
func ReadString(dst *snstream.Buffer, f *snstream.Filter, p StringParams) error {
	if p.Map == nil {
		p.Map = DefaultMap()
	}
	if p.Table == nil {
		p.Table = IdentityEncoder
	}
	d := &stringDecoder{
		f:   f,
		p:   p,
		dst: dst,
		enc: outputEncoder{table: p.Table, mode: p.Output, strict: p.Strict},
	}
	dst.Reset(false)
	return d.run()
}

type stringDecoder struct {
	f      *snstream.Filter
	dst    *snstream.Buffer
	p      StringParams
	enc    outputEncoder
	replay []int64
	nest   int64
}

// next returns the next input scalar: a raw byte, or a pre-decoded
// codepoint when an input override is active. End of file inside a payload
// is always an open-string condition.
func (d *stringDecoder) next() (int64, error) {
	if n := len(d.replay); n > 0 {
		s := d.replay[n-1]
		d.replay = d.replay[:n-1]
		return s, nil
	}
	if d.p.Input == InputNone {
		c, err := d.readByte()
		if err != nil {
			return 0, err
		}
		return int64(c), nil
	}
	return d.readScalar()
}

// unread pushes a scalar onto the replay stack. The stack is bounded by the
// decoding map depth plus one.
func (d *stringDecoder) unread(s int64) {
	d.replay = append(d.replay, s)
}

func (d *stringDecoder) readByte() (byte, error) {
	c, err := d.f.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, snstream.ErrOpenString
		}
		return 0, err
	}
	return c, nil
}

// branchable reports whether scalar s may feed the decoding map.
func (d *stringDecoder) branchable(s int64) bool {
	if d.p.Input == InputNone {
		return true
	}
	return s < 0x80
}

// run drives the decode loop: structural delimiters are recognized only at
// the map root, matches are greedy with backtracking through the replay
// stack, and every decoded entity is routed through the output encoder.
func (d *stringDecoder) run() error {
	d.p.Map.Reset()
	d.nest = 1
	depth := 0
	lastEntity := NoEntity
	lastDepth := 0
	var pending []int64
	for {
		s, err := d.next()
		if err != nil {
			return err
		}
		if depth == 0 {
			done, err := d.structural(s)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
		if d.branchable(s) && d.p.Map.Branch(byte(s)) {
			depth++
			pending = append(pending, s)
			if e := d.p.Map.Entity(); e >= 0 {
				lastEntity = e
				lastDepth = depth
			}
			continue
		}
		if depth == 0 {
			if !d.branchable(s) {
				if err := d.emit(s); err != nil {
					return err
				}
				continue
			}
			return badPayloadByte(s)
		}
		// Longest match ended: replay the unmatched tail, emit the entity
		// of the deepest terminal node passed on the way.
		d.unread(s)
		if lastEntity < 0 {
			return badPayloadByte(pending[0])
		}
		for i := len(pending) - 1; i >= lastDepth; i-- {
			d.unread(pending[i])
		}
		if err := d.emit(lastEntity); err != nil {
			return err
		}
		d.p.Map.Reset()
		depth = 0
		lastEntity = NoEntity
		lastDepth = 0
		pending = pending[:0]
	}
}

// structural applies delimiter and nesting rules to a scalar seen at the map
// root. It reports whether the payload is complete.
func (d *stringDecoder) structural(s int64) (bool, error) {
	switch d.p.Kind {
	case snstream.StringQuoted:
		if s == '"' {
			return true, nil
		}
	case snstream.StringApostrophe:
		if s == '\'' {
			return true, nil
		}
	case snstream.StringCurly:
		switch s {
		case '}':
			d.nest--
			if d.nest < 1 {
				return true, nil
			}
		case '{':
			if d.nest == math.MaxInt64 {
				return false, snstream.ErrDeepCurly
			}
			d.nest++
		}
	}
	if s == 0 {
		return false, snstream.ErrNullChar
	}
	return false, nil
}

// badPayloadByte classifies a scalar the decoding map cannot start from.
func badPayloadByte(s int64) error {
	if s >= 0 && s <= 0xff {
		c := byte(s)
		if isVisibleText(c) {
			return snstream.ErrBadChar
		}
		return snstream.ErrTokenChar
	}
	return snstream.ErrBadChar
}

func isVisibleText(c byte) bool {
	return (c >= 0x21 && c <= 0x7e) || c == ' ' || c == '\t' || c == '\n'
}

// emit resolves numeric escapes and encodes one entity.
func (d *stringDecoder) emit(entity int64) error {
	if d.p.Escapes != nil {
		if esc, ok := d.p.Escapes(entity); ok {
			value, err := d.numeric(esc)
			if err != nil {
				return err
			}
			entity = value
		}
	}
	return d.enc.encode(d.dst, entity)
}

// numeric consumes the digits of a numeric escape and returns the resulting
// codepoint.
func (d *stringDecoder) numeric(esc NumericEscape) (int64, error) {
	base := int64(esc.Base)
	max := esc.Max
	if max == 0 {
		max = MaxCodepoint
	}
	var value int64
	digits := 0
	for {
		s, err := d.next()
		if err != nil {
			return 0, err
		}
		if v := digitValue(s, base); v >= 0 && (esc.MaxDigits == 0 || digits < esc.MaxDigits) {
			value = value*base + v
			digits++
			if value > max {
				return 0, snstream.ErrBadChar
			}
			continue
		}
		if esc.Terminator >= 0 {
			if s == int64(esc.Terminator) && digits >= esc.MinDigits {
				break
			}
			return 0, snstream.ErrBadChar
		}
		if digits >= esc.MinDigits {
			d.unread(s)
			break
		}
		return 0, snstream.ErrBadChar
	}
	if value >= minSurrogate && value <= maxSurrogate {
		return 0, snstream.ErrBadChar
	}
	return value, nil
}
