package snstream

import (
	"errors"
	"io"
)

// TokenKind classifies a recognized token.
type TokenKind int

const (
	// KindSimple is any complete token other than |;.
	KindSimple TokenKind = iota
	// KindFinal is the |; token marking logical end of input.
	KindFinal
	// KindString is a string prefix token; the payload follows the opening
	// delimiter and must be read separately.
	KindString
	// KindEmbed is an embedded-data prefix token; the payload follows the
	// backtick and must be read separately.
	KindEmbed
)

// StringKind selects a string literal syntax.
type StringKind int

const (
	// StringNone marks a token that is not a string prefix.
	StringNone StringKind = iota
	// StringQuoted is a double-quoted "" string.
	StringQuoted
	// StringApostrophe is an apostrophe-quoted '' string.
	StringApostrophe
	// StringCurly is a curly-bracketed {} string.
	StringCurly
)

// Mode selects the token recognizer variant.
type Mode struct {
	// Comment is the byte introducing a comment during whitespace skipping.
	Comment byte
	// Strict requires every token byte to be visible printing ASCII and
	// recognizes apostrophe string prefixes.
	Strict bool
}

// TokenizerMode is the plain-token grammar: # comments, byte legality per
// the outside-literal rules.
var TokenizerMode = Mode{Comment: asciiPound}

// BlockMode is the string-mode grammar: & comments and strict visible-range
// token bytes.
var BlockMode = Mode{Comment: asciiAmpersand, Strict: true}

// Token describes one recognized token. The token bytes live in the buffer
// passed to ReadToken; for string and embed kinds the buffer holds only the
// prefix, with the opening delimiter stripped.
type Token struct {
	Kind   TokenKind
	String StringKind
	Line   int64
}

// Skip consumes whitespace and comments. On return the next filtered byte is
// neither whitespace nor a comment introducer and has been pushed back, or
// the filter is in a terminal state.
func Skip(f *Filter, mode Mode) error {
	for {
		c, err := f.Read()
		for err == nil && (c == asciiSP || c == asciiHT || c == asciiLF) {
			c, err = f.Read()
		}
		if err != nil {
			return err
		}
		if c != mode.Comment {
			if perr := f.Unread(); perr != nil {
				return perr
			}
			return nil
		}
		// Comment runs through the next LF; the LF belongs to the comment.
		for {
			c, err = f.Read()
			if err != nil {
				return err
			}
			if c == asciiLF {
				break
			}
		}
	}
}

// checkByte validates a token byte for the given mode.
func checkByte(c byte, mode Mode) error {
	if mode.Strict {
		if !isVisible(c) {
			return ErrTokenChar
		}
		return nil
	}
	if !isLegal(c) {
		return ErrBadChar
	}
	return nil
}

// ReadToken recognizes one token into buf. Whitespace and comments before
// the token are skipped; after the final |; token the remainder of the input
// must hold nothing but whitespace and comments.
func ReadToken(buf *Buffer, f *Filter, mode Mode) (Token, error) {
	buf.Reset(false)

	if err := Skip(f, mode); err != nil {
		return Token{}, err
	}

	c, err := f.Read()
	if err != nil {
		return Token{}, err
	}
	tok := Token{Line: f.Line()}
	if err := checkByte(c, mode); err != nil {
		return Token{}, err
	}
	if !buf.Append(c) {
		return Token{}, ErrLongToken
	}

	// |; is detected with an explicit flag rather than by re-inspecting the
	// buffer, since only one byte is certain to be present.
	final := false
	if c == asciiBar {
		c2, err := f.Read()
		if err != nil {
			return Token{}, err
		}
		if c2 == asciiSemicolon {
			final = true
			if !buf.Append(c2) {
				return Token{}, ErrLongToken
			}
		} else if perr := f.Unread(); perr != nil {
			return Token{}, perr
		}
	}

	if final {
		if err := Skip(f, mode); err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = KindFinal
				return tok, nil
			}
			return Token{}, err
		}
		if _, err := f.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = KindFinal
				return tok, nil
			}
			return Token{}, err
		}
		return Token{}, ErrTrailer
	}

	if !isAtomic(c) {
		for {
			c, err = f.Read()
			if err != nil {
				return Token{}, err
			}
			if isInclusive(c) {
				if !buf.Append(c) {
					return Token{}, ErrLongToken
				}
				break
			}
			if isExclusive(c) {
				if perr := f.Unread(); perr != nil {
					return Token{}, perr
				}
				break
			}
			if err := checkByte(c, mode); err != nil {
				return Token{}, err
			}
			if !buf.Append(c) {
				return Token{}, ErrLongToken
			}
		}
	}

	classify(buf, &tok, mode)
	return tok, nil
}

// classify inspects the last buffered byte to determine the token kind and,
// for string and embed prefixes, strips the opening delimiter so the buffer
// holds only the prefix.
func classify(buf *Buffer, tok *Token, mode Mode) {
	last, ok := buf.Last()
	if !ok {
		tok.Kind = KindSimple
		return
	}
	switch {
	case last == asciiDQuote:
		tok.Kind = KindString
		tok.String = StringQuoted
	case last == asciiSQuote && mode.Strict:
		tok.Kind = KindString
		tok.String = StringApostrophe
	case last == asciiLCurly:
		tok.Kind = KindString
		tok.String = StringCurly
	case last == asciiAccent:
		tok.Kind = KindEmbed
	default:
		tok.Kind = KindSimple
		return
	}
	buf.TrimLast()
}
