package sntext

import "errors"

// ErrHugeBlock reports encoder output exceeding the output buffer cap.
var ErrHugeBlock = errors.New("encoded string output is too long")
