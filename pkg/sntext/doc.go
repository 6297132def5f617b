// Package sntext implements the Shastina string pipeline: a prefix-map
// driven entity decoder over the filtered input, followed by an output
// encoder whose encoding table may be overridden by one of the Unicode
// transformation schemes.
package sntext
