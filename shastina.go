// Package shastina implements a streaming front-end reader for the Shastina
// metalanguage: a lexical layer turning a byte stream into typed tokens and
// decoded string literals.
package shastina

import (
	stderrors "errors"
	"io"

	snerrors "github.com/jacoelho/shastina/errors"
	"github.com/jacoelho/shastina/pkg/snstream"
	"github.com/jacoelho/shastina/pkg/sntext"
)

var errNoStringPrefix = stderrors.New("shastina: no string prefix pending")

// Token kinds, re-exported from the streaming layer.
const (
	Simple = snstream.KindSimple
	Final  = snstream.KindFinal
	String = snstream.KindString
	Embed  = snstream.KindEmbed
)

// String kinds, re-exported from the streaming layer.
const (
	Quoted     = snstream.StringQuoted
	Apostrophe = snstream.StringApostrophe
	Curly      = snstream.StringCurly
)

// Token is one recognized token. Prefix and Text reference the reader's
// internal buffers and are valid until the next read operation.
type Token struct {
	// Kind classifies the token.
	Kind snstream.TokenKind
	// String is the string syntax for String kinds, StringNone otherwise.
	String snstream.StringKind
	// Line is the 1-based line the token starts on.
	Line int64
	// Prefix holds the token bytes: the full token for Simple and Final
	// kinds, the bytes before the opening delimiter for String and Embed.
	Prefix []byte
	// Text holds the raw string payload when read by Next, nil otherwise.
	Text []byte
}

// Reader reads Shastina tokens and string bodies from a byte source. It is
// a self-contained value: readers on different sources share no state. A
// reader must not be shared between concurrent goroutines.
//
// The first error places the reader in a terminal state: the buffers are
// cleared, the line number is frozen, and every subsequent operation
// reports the same error until Reset.
type Reader struct {
	filter  *snstream.Filter
	key     *snstream.Buffer
	val     *snstream.Buffer
	last    *snstream.Buffer
	err     error
	mode    snstream.Mode
	code    snerrors.Code
	errLine int64
	tokLine int64
	lastTok snstream.Token
}

// NewReader returns a reader pulling bytes from src.
func NewReader(src io.ByteReader, opts ...Option) (*Reader, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		filter: snstream.NewFilter(src),
		key:    snstream.NewBuffer(min(initBufferSize, cfg.maxTokenSize), cfg.maxTokenSize),
		val:    snstream.NewBuffer(min(initBufferSize, cfg.maxStringSize), cfg.maxStringSize),
		mode:   cfg.mode,
	}
	r.reset()
	return r, nil
}

// Reset returns the reader to its initial state, reading from src.
func (r *Reader) Reset(src io.ByteReader) {
	r.filter.Reset(src)
	r.reset()
}

func (r *Reader) reset() {
	r.key.Reset(false)
	r.val.Reset(false)
	r.last = r.key
	r.err = nil
	r.code = snerrors.CodeOK
	r.errLine = 0
	r.tokLine = 1
	r.lastTok = snstream.Token{}
}

// fail records the first error, freezing the line number and clearing the
// buffers so the caller can still query consistent state.
func (r *Reader) fail(err error) error {
	if r.err != nil {
		return r.err
	}
	r.code = codeOf(err)
	r.errLine = r.filter.Line()
	r.key.Reset(false)
	r.val.Reset(false)
	r.err = &snerrors.SyntaxError{Code: r.code, Line: r.errLine, Err: err}
	return r.err
}

// codeOf maps streaming-layer sentinels to the public taxonomy. Unknown
// errors are source failures.
func codeOf(err error) snerrors.Code {
	switch {
	case stderrors.Is(err, io.EOF):
		return snerrors.CodeEOF
	case stderrors.Is(err, snstream.ErrBadSignature):
		return snerrors.CodeBadSignature
	case stderrors.Is(err, snstream.ErrOpenString):
		return snerrors.CodeOpenString
	case stderrors.Is(err, snstream.ErrLongString):
		return snerrors.CodeLongString
	case stderrors.Is(err, snstream.ErrNullChar):
		return snerrors.CodeNullChar
	case stderrors.Is(err, snstream.ErrDeepCurly):
		return snerrors.CodeDeepCurly
	case stderrors.Is(err, snstream.ErrBadChar):
		return snerrors.CodeBadChar
	case stderrors.Is(err, snstream.ErrLongToken):
		return snerrors.CodeLongToken
	case stderrors.Is(err, snstream.ErrTrailer):
		return snerrors.CodeTrailer
	case stderrors.Is(err, snstream.ErrTokenChar):
		return snerrors.CodeTokenChar
	case stderrors.Is(err, sntext.ErrHugeBlock):
		return snerrors.CodeHugeBlock
	default:
		return snerrors.CodeIO
	}
}

// Token recognizes the next token. For String and Embed kinds only the
// prefix is read; the payload follows and must be read with String or, for
// embeds, by the caller directly.
func (r *Reader) Token() (Token, error) {
	if r.err != nil {
		return Token{}, r.err
	}
	tok, err := snstream.ReadToken(r.key, r.filter, r.mode)
	if err != nil {
		return Token{}, r.fail(err)
	}
	r.lastTok = tok
	r.tokLine = tok.Line
	r.last = r.key
	return Token{
		Kind:   tok.Kind,
		String: tok.String,
		Line:   tok.Line,
		Prefix: r.key.Bytes(),
	}, nil
}

// Next recognizes the next token and, for string tokens, also reads the raw
// payload into Text. Escape sequences are preserved verbatim; the entity
// pass is a separate concern of String.
func (r *Reader) Next() (Token, error) {
	tok, err := r.Token()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != snstream.KindString {
		return tok, nil
	}
	switch tok.String {
	case snstream.StringQuoted:
		err = snstream.ReadQuoted(r.val, r.filter)
	case snstream.StringApostrophe:
		err = snstream.ReadApostrophe(r.val, r.filter)
	case snstream.StringCurly:
		err = snstream.ReadCurly(r.val, r.filter)
	}
	if err != nil {
		return Token{}, r.fail(err)
	}
	r.last = r.val
	tok.Text = r.val.Bytes()
	return tok, nil
}

// String reads the payload of the string prefix returned by the previous
// Token call through the decode/encode pipeline, returning the encoded
// body. A zero Kind in params selects the kind of that prefix.
func (r *Reader) String(params sntext.StringParams) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if params.Kind == snstream.StringNone {
		params.Kind = r.lastTok.String
	}
	if params.Kind == snstream.StringNone {
		// Caller mistake, not an input failure: leave the reader usable.
		return nil, errNoStringPrefix
	}
	if err := sntext.ReadString(r.val, r.filter, params); err != nil {
		return nil, r.fail(err)
	}
	r.last = r.val
	return r.val.Bytes(), nil
}

// Status returns the reader's error code and, in the error state, the line
// the error occurred on.
func (r *Reader) Status() (snerrors.Code, int64) {
	if r.code == snerrors.CodeOK {
		return snerrors.CodeOK, r.tokLine
	}
	return r.code, r.errLine
}

// Count returns the byte count of the last token or string body, or zero in
// the error state.
func (r *Reader) Count() int64 {
	if r.err != nil {
		return 0
	}
	return int64(r.last.Len())
}

// Bytes returns the bytes of the last token or string body. With nullTerm
// set the data is returned with a trailing zero byte, and the call reports
// false when the data itself contains a zero byte. In the error state the
// result is empty.
func (r *Reader) Bytes(nullTerm bool) ([]byte, bool) {
	if r.err != nil {
		return nil, true
	}
	if nullTerm {
		return r.last.Terminated()
	}
	return r.last.Bytes(), true
}

// Line returns the line of the last token, or the saturation value in the
// error state.
func (r *Reader) Line() int64 {
	if r.err != nil {
		return snerrors.UnknownLine
	}
	return r.tokLine
}

// BOM reports whether a UTF-8 byte order mark was stripped from the input.
func (r *Reader) BOM() bool {
	return r.filter.BOM()
}
