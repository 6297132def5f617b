package errors

import "testing"

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeOK, "ok"},
		{CodeIO, "i/o error"},
		{CodeEOF, "unexpected end of file"},
		{CodeTrailer, "content after |; token"},
		{Code(-99), "error -99"},
	}
	for _, tc := range tests {
		if got := tc.code.String(); got != tc.want {
			t.Fatalf("Code(%d).String() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestCodeValuesStable(t *testing.T) {
	// The wire-level values are a compatibility contract.
	want := map[Code]int{
		CodeIO:           -1,
		CodeEOF:          -2,
		CodeBadSignature: -3,
		CodeOpenString:   -4,
		CodeLongString:   -5,
		CodeNullChar:     -6,
		CodeDeepCurly:    -7,
		CodeBadChar:      -8,
		CodeLongToken:    -9,
		CodeTrailer:      -10,
		CodeHugeBlock:    -11,
		CodeTokenChar:    -12,
	}
	for code, value := range want {
		if int(code) != value {
			t.Fatalf("%v = %d, want %d", code, int(code), value)
		}
	}
}

func TestSyntaxError(t *testing.T) {
	err := &SyntaxError{Code: CodeBadChar, Line: 12}
	if got := err.Error(); got != "shastina: illegal character at line 12" {
		t.Fatalf("Error = %q", got)
	}
	err = &SyntaxError{Code: CodeEOF, Line: UnknownLine}
	if got := err.Error(); got != "shastina: unexpected end of file at unknown line" {
		t.Fatalf("Error = %q", got)
	}
}
