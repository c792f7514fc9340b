package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, Result{Before: 5, After: 1, Merged: true})
	if !strings.Contains(buf.String(), "Deleted 4 workspaces") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

type causeErr struct{ cause error }

func (e causeErr) Error() string { return "cannot connect to db:1521/X" }
func (e causeErr) Unwrap() error { return e.cause }

func TestPrintErrorWithSeparateCause(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, causeErr{cause: errors.New("DPI-1047: Cannot locate a 64-bit Oracle Client library")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected error and cause on two lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "cannot connect") || !strings.Contains(lines[1], "DPI-1047") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintErrorWrappedOnce(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("cannot count workspaces: %w", errors.New("ORA-00942")))

	if n := strings.Count(buf.String(), "ORA-00942"); n != 1 {
		t.Errorf("cause should be printed once, got %d times in %q", n, buf.String())
	}
}
