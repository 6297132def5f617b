// Package snstream provides the byte-level streaming layer of the Shastina
// reader: a bounded token buffer, the newline-normalising input filter with
// single-byte pushback, and the token and string-literal recognizers.
package snstream
