package snstream

import "errors"

var (
	// ErrBadSignature reports a partial or invalid UTF-8 BOM at the start of
	// the stream.
	ErrBadSignature = errors.New("unrecognized file signature")
	// ErrPushback reports a pushback request with no byte available to push
	// back, or with the pushback slot already occupied.
	ErrPushback = errors.New("pushback unavailable")
	// ErrBadChar reports an illegal byte outside a literal or comment.
	ErrBadChar = errors.New("illegal character")
	// ErrTokenChar reports a token byte outside visible printing ASCII.
	ErrTokenChar = errors.New("token character out of range")
	// ErrLongToken reports a token exceeding the buffer cap.
	ErrLongToken = errors.New("token is too long")
	// ErrTrailer reports content after the final |; token.
	ErrTrailer = errors.New("content after |; token")
	// ErrOpenString reports end of file inside a string payload.
	ErrOpenString = errors.New("file ends in middle of string")
	// ErrLongString reports a string payload exceeding the buffer cap.
	ErrLongString = errors.New("string is too long")
	// ErrNullChar reports a literal zero byte inside a string payload.
	ErrNullChar = errors.New("null character in string")
	// ErrDeepCurly reports curly nesting saturating the counter.
	ErrDeepCurly = errors.New("too much curly nesting in string")
)
