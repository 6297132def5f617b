// Package errors defines the stable Shastina reader error taxonomy.
package errors

import (
	"fmt"
	"math"
)

// Code identifies a reader failure. Codes are stable negative integers
// suitable for wire-level reporting; CodeOK is zero.
type Code int

const (
	// CodeOK indicates no error.
	CodeOK Code = 0
	// CodeIO indicates the byte source reported an I/O error.
	CodeIO Code = -1
	// CodeEOF indicates end of file in a context requiring more input.
	CodeEOF Code = -2
	// CodeBadSignature indicates a partial or invalid UTF-8 BOM at the start
	// of the stream.
	CodeBadSignature Code = -3
	// CodeOpenString indicates end of file inside a string payload.
	CodeOpenString Code = -4
	// CodeLongString indicates a string payload exceeding the buffer cap.
	CodeLongString Code = -5
	// CodeNullChar indicates a literal zero byte inside a string payload.
	CodeNullChar Code = -6
	// CodeDeepCurly indicates curly nesting saturating the counter.
	CodeDeepCurly Code = -7
	// CodeBadChar indicates an illegal byte outside a literal or comment.
	CodeBadChar Code = -8
	// CodeLongToken indicates a token exceeding the buffer cap.
	CodeLongToken Code = -9
	// CodeTrailer indicates content after the final |; token.
	CodeTrailer Code = -10
	// CodeHugeBlock indicates encoder output exceeding the buffer cap.
	CodeHugeBlock Code = -11
	// CodeTokenChar indicates a token byte outside visible printing ASCII.
	CodeTokenChar Code = -12
)

// UnknownLine is the saturation value reported when the line counter has
// overflowed or the error position is unknown.
const UnknownLine = int64(math.MaxInt64)

var codeNames = map[Code]string{
	CodeOK:           "ok",
	CodeIO:           "i/o error",
	CodeEOF:          "unexpected end of file",
	CodeBadSignature: "unrecognized file signature",
	CodeOpenString:   "file ends in middle of string",
	CodeLongString:   "string is too long",
	CodeNullChar:     "null character in string",
	CodeDeepCurly:    "too much curly nesting in string",
	CodeBadChar:      "illegal character",
	CodeLongToken:    "token is too long",
	CodeTrailer:      "content after |; token",
	CodeHugeBlock:    "encoded string output is too long",
	CodeTokenChar:    "token character out of range",
}

// String returns a short description of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("error %d", int(c))
}

// SyntaxError reports a reader failure with the line it occurred on.
type SyntaxError struct {
	Code Code
	Line int64
	Err  error
}

// Error formats the error with its location.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line == UnknownLine {
		return fmt.Sprintf("shastina: %v at unknown line", e.Code)
	}
	return fmt.Sprintf("shastina: %v at line %d", e.Code, e.Line)
}

// Unwrap exposes the underlying cause, if any.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
