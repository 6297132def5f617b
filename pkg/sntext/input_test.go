package sntext

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jacoelho/shastina/pkg/snstream"
)

func decodeBytes(t *testing.T, payload []byte, p StringParams) []byte {
	t.Helper()
	f := snstream.NewFilter(bytes.NewReader(payload))
	dst := snstream.NewBuffer(32, 32767)
	if err := ReadString(dst, f, p); err != nil {
		t.Fatalf("ReadString(%x) error = %v", payload, err)
	}
	out := make([]byte, dst.Len())
	copy(out, dst.Bytes())
	return out
}

func TestReadStringInputUTF8(t *testing.T) {
	// UTF-8 payload re-encoded as UTF-8: ASCII feeds the map, the euro
	// sign bypasses it as a direct entity.
	p := StringParams{Kind: snstream.StringQuoted, Input: InputUTF8, Output: OutputUTF8}
	payload := append([]byte("a"), 0xe2, 0x82, 0xac, 'b', '"')
	want := []byte{'a', 0xe2, 0x82, 0xac, 'b'}
	if got := decodeBytes(t, payload, p); !bytes.Equal(got, want) {
		t.Fatalf("body = %x, want %x", got, want)
	}
}

func TestReadStringInputUTF8ToUTF16(t *testing.T) {
	p := StringParams{Kind: snstream.StringQuoted, Input: InputUTF8, Output: OutputUTF16BE}
	payload := append([]byte{0xf0, 0x90, 0x90, 0xb7}, '"') // U+10437
	want := []byte{0xd8, 0x01, 0xdc, 0x37}
	if got := decodeBytes(t, payload, p); !bytes.Equal(got, want) {
		t.Fatalf("body = %x, want %x", got, want)
	}
}

func TestReadStringInputUTF16LE(t *testing.T) {
	p := StringParams{Kind: snstream.StringQuoted, Input: InputUTF16LE, Output: OutputUTF8}
	payload := []byte{
		0x41, 0x00, // A
		0xac, 0x20, // U+20AC
		0x01, 0xd8, 0x37, 0xdc, // U+10437 as a surrogate pair
		0x22, 0x00, // closing quote
	}
	want := append([]byte{'A', 0xe2, 0x82, 0xac}, 0xf0, 0x90, 0x90, 0xb7)
	if got := decodeBytes(t, payload, p); !bytes.Equal(got, want) {
		t.Fatalf("body = %x, want %x", got, want)
	}
}

func TestReadStringInputUTF32BE(t *testing.T) {
	p := StringParams{Kind: snstream.StringQuoted, Input: InputUTF32BE, Output: OutputUTF8}
	payload := []byte{
		0x00, 0x00, 0x00, 0x41,
		0x00, 0x01, 0x03, 0x48, // U+10348
		0x00, 0x00, 0x00, 0x22,
	}
	want := append([]byte{'A'}, 0xf0, 0x90, 0x8d, 0x88)
	if got := decodeBytes(t, payload, p); !bytes.Equal(got, want) {
		t.Fatalf("body = %x, want %x", got, want)
	}
}

func TestReadStringInputCESU8(t *testing.T) {
	// The CESU-8 surrogate pair for U+10437 combines into one codepoint.
	p := StringParams{Kind: snstream.StringQuoted, Input: InputCESU8, Output: OutputUTF8}
	payload := append([]byte{0xed, 0xa0, 0x81, 0xed, 0xb0, 0xb7}, '"')
	want := []byte{0xf0, 0x90, 0x90, 0xb7}
	if got := decodeBytes(t, payload, p); !bytes.Equal(got, want) {
		t.Fatalf("body = %x, want %x", got, want)
	}
}

func TestReadStringInputEscapesStillWork(t *testing.T) {
	// ASCII scalars feed the decoding map, so escape syntax survives an
	// input override.
	p := StringParams{
		Kind:    snstream.StringQuoted,
		Input:   InputUTF8,
		Output:  OutputUTF8,
		Escapes: DefaultEscapes,
	}
	payload := []byte(`\u0041 ok"`)
	if got := decodeBytes(t, payload, p); !bytes.Equal(got, []byte("A ok")) {
		t.Fatalf("body = %q, want %q", got, "A ok")
	}
}

func TestReadStringInputMalformed(t *testing.T) {
	tests := []struct {
		name    string
		input   InputMode
		payload []byte
		want    error
	}{
		{"utf8 bad lead", InputUTF8, []byte{0xff, '"'}, snstream.ErrBadChar},
		{"utf8 bad continuation", InputUTF8, []byte{0xe2, 0x41, 0x41, '"'}, snstream.ErrBadChar},
		{"utf8 truncated", InputUTF8, []byte{0xe2, 0x82}, snstream.ErrOpenString},
		{"cesu8 unpaired high", InputCESU8, []byte{0xed, 0xa0, 0x81, 'x', '"'}, snstream.ErrBadChar},
		{"utf16 unpaired high", InputUTF16LE, []byte{0x01, 0xd8, 0x41, 0x00, 0x22, 0x00}, snstream.ErrBadChar},
		{"utf16 truncated", InputUTF16BE, []byte{0x00}, snstream.ErrOpenString},
		{"utf32 out of range", InputUTF32LE, []byte{0x00, 0x00, 0x11, 0x01, 0x22, 0x00, 0x00, 0x00}, snstream.ErrBadChar},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := snstream.NewFilter(bytes.NewReader(tc.payload))
			dst := snstream.NewBuffer(32, 32767)
			p := StringParams{Kind: snstream.StringQuoted, Input: tc.input}
			if err := ReadString(dst, f, p); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}
