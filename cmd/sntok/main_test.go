package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWithArgsStdinless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.sn")
	src := "a \"hi\" |;\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	want := "@1: a\n@1: () \"hi\"\n@1: |;\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunWithArgsReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sn")
	if err := os.WriteFile(path, []byte("\"never closed"), 0o600); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "line 1") {
		t.Fatalf("stderr = %q, want line report", stderr.String())
	}
}

func TestRunWithArgsTooManyArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{"a", "b"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}
