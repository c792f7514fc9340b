package workspace

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlunlocker/sqlunlocker/internal/oracle"
)

// fakeConn returns queued counts and records every call.
type fakeConn struct {
	counts    []int64
	mergeErr  error
	commitErr error
	calls     []string
}

func (c *fakeConn) QueryInt(ctx context.Context, query string, args ...any) (int64, error) {
	c.calls = append(c.calls, "count")
	if len(c.counts) == 0 {
		return 0, errors.New("no more counts queued")
	}
	n := c.counts[0]
	c.counts = c.counts[1:]
	return n, nil
}

func (c *fakeConn) Exec(ctx context.Context, query string, args ...any) error {
	c.calls = append(c.calls, "merge")
	return c.mergeErr
}

func (c *fakeConn) Commit() error {
	c.calls = append(c.calls, "commit")
	return c.commitErr
}

func (c *fakeConn) Close() error {
	c.calls = append(c.calls, "close")
	return nil
}

func connectTo(c *fakeConn) ConnectFunc {
	return func(ctx context.Context) (Conn, error) { return c, nil }
}

func assertCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, got)
	}
}

func TestRunNoWorkspaces(t *testing.T) {
	conn := &fakeConn{counts: []int64{0}}
	var buf bytes.Buffer

	if err := Run(context.Background(), connectTo(conn), Options{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No workspaces found") {
		t.Errorf("unexpected output %q", buf.String())
	}
	assertCalls(t, conn.calls, "count", "commit", "close")
}

func TestRunMergesWorkspaces(t *testing.T) {
	conn := &fakeConn{counts: []int64{5, 1}}
	var buf bytes.Buffer

	if err := Run(context.Background(), connectTo(conn), Options{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Deleted 4 workspaces") {
		t.Errorf("unexpected output %q", buf.String())
	}
	assertCalls(t, conn.calls, "count", "merge", "count", "commit", "close")
}

func TestRunConnectFailure(t *testing.T) {
	cause := errors.New("ORA-01017: invalid username/password; logon denied")
	connect := func(ctx context.Context) (Conn, error) {
		return nil, &oracle.ConnectError{ConnectString: "dbhost:1521/ORCL", Err: cause}
	}
	var buf bytes.Buffer

	err := Run(context.Background(), connect, Options{}, &buf)
	if !errors.Is(err, cause) {
		t.Fatalf("expected the connect error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "cannot connect to dbhost:1521/ORCL") {
		t.Errorf("output should report the error: %q", out)
	}
	if !strings.Contains(out, "ORA-01017") {
		t.Errorf("output should report the cause: %q", out)
	}
}

func TestRunMergeFailureSkipsCommit(t *testing.T) {
	conn := &fakeConn{counts: []int64{3, 3}, mergeErr: errors.New("ORA-20171: WM error")}
	var buf bytes.Buffer

	err := Run(context.Background(), connectTo(conn), Options{}, &buf)
	if err == nil {
		t.Fatal("expected merge failure")
	}
	if strings.Contains(buf.String(), "Deleted") {
		t.Errorf("no summary should be printed on failure: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "ORA-20171") {
		t.Errorf("output should include the cause: %q", buf.String())
	}
	assertCalls(t, conn.calls, "count", "merge", "close")
}

func TestRunCountFailure(t *testing.T) {
	conn := &fakeConn{}
	var buf bytes.Buffer

	if err := Run(context.Background(), connectTo(conn), Options{}, &buf); err == nil {
		t.Fatal("expected count failure")
	}
	assertCalls(t, conn.calls, "count", "close")
}

func TestRunCommitFailure(t *testing.T) {
	conn := &fakeConn{counts: []int64{2, 0}, commitErr: errors.New("ORA-02091: transaction rolled back")}
	var buf bytes.Buffer

	if err := Run(context.Background(), connectTo(conn), Options{}, &buf); err == nil {
		t.Fatal("expected commit failure")
	}
	assertCalls(t, conn.calls, "count", "merge", "count", "commit", "close")
}

func TestRunDryRun(t *testing.T) {
	conn := &fakeConn{counts: []int64{5}}
	var buf bytes.Buffer

	if err := Run(context.Background(), connectTo(conn), Options{DryRun: true}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Found 5 workspaces") {
		t.Errorf("unexpected output %q", buf.String())
	}
	assertCalls(t, conn.calls, "count", "close")
}

func TestResultMessage(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Result{}, "No workspaces found"},
		{Result{Before: 0, DryRun: true}, "No workspaces found"},
		{Result{Before: 5, After: 1, Merged: true}, "Deleted 4 workspaces"},
		{Result{Before: 2, After: 2, DryRun: true}, "Found 2 workspaces (dry run, nothing merged)"},
	}
	for _, tt := range tests {
		if got := tt.res.Message(); got != tt.want {
			t.Errorf("%+v: expected %q, got %q", tt.res, tt.want, got)
		}
	}
}

// sqliteQueries stand in for the Workspace Manager catalog.
var sqliteQueries = Queries{
	Count: `SELECT count(*) FROM workspaces WHERE workspace != 'LIVE'`,
	Merge: `DELETE FROM workspaces WHERE workspace != 'LIVE'`,
}

func TestRunAgainstSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wm.db")
	client := oracle.New("", 0, path, "", "", oracle.WithDriver(mustDriver(t, "sqlite")))
	connect := func(ctx context.Context) (Conn, error) {
		c, err := client.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	ctx := context.Background()
	seed, err := client.Connect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := seed.Exec(ctx, `CREATE TABLE workspaces (workspace TEXT)`); err != nil {
		t.Fatal(err)
	}
	if err := seed.Exec(ctx, `INSERT INTO workspaces VALUES ('LIVE'), ('ws1'), ('ws2'), ('ws3')`); err != nil {
		t.Fatal(err)
	}
	if err := seed.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := seed.Close(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Run(ctx, connect, Options{Queries: sqliteQueries}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Deleted 3 workspaces") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := Run(ctx, connect, Options{Queries: sqliteQueries}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No workspaces found") {
		t.Errorf("merge should have been committed, got %q", buf.String())
	}
}

func mustDriver(t *testing.T, name string) oracle.Driver {
	t.Helper()
	d, err := oracle.LookupDriver(name)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
