// Package workspace merges every Oracle Workspace Manager workspace other
// than LIVE back into LIVE.
package workspace

import (
	"context"
	"fmt"
	"io"
)

// Queries are the statements Merge runs.
type Queries struct {
	// Count returns the number of workspaces to merge.
	Count string
	// Merge merges all of them into LIVE.
	Merge string
}

// OracleQueries target the Workspace Manager catalog.
var OracleQueries = Queries{
	Count: `SELECT count(*) FROM WMSYS.WM$WORKSPACES_TABLE$ WHERE workspace != 'LIVE'`,
	Merge: `begin
  for workspaces in (SELECT workspace FROM WMSYS.WM$WORKSPACES_TABLE$ WHERE workspace != 'LIVE') loop
    wmsys.lt.mergeworkspace(workspaces.workspace, TRUE, TRUE);
  end loop;
end;`,
}

// Conn is the part of a database session Merge and Run need.
type Conn interface {
	QueryInt(ctx context.Context, query string, args ...any) (int64, error)
	Exec(ctx context.Context, query string, args ...any) error
	Commit() error
	Close() error
}

// ConnectFunc opens a session.
type ConnectFunc func(ctx context.Context) (Conn, error)

// Options control Run.
type Options struct {
	// Queries defaults to OracleQueries.
	Queries Queries
	// DryRun only counts workspaces; nothing is merged or committed.
	DryRun bool
}

// Result records what a merge did.
type Result struct {
	Before int64
	After  int64
	Merged bool
	DryRun bool
}

// Deleted is the number of workspaces that disappeared during the merge.
func (r Result) Deleted() int64 {
	return r.Before - r.After
}

// Message is the one-line summary shown to the operator.
func (r Result) Message() string {
	switch {
	case r.Before == 0:
		return "No workspaces found"
	case r.DryRun:
		return fmt.Sprintf("Found %d workspaces (dry run, nothing merged)", r.Before)
	default:
		return fmt.Sprintf("Deleted %d workspaces", r.Deleted())
	}
}

// Merge counts the workspaces, merges them when there are any, and counts
// again. A failed merge is returned before the second count.
func Merge(ctx context.Context, conn Conn, q Queries, dryRun bool) (Result, error) {
	before, err := conn.QueryInt(ctx, q.Count)
	if err != nil {
		return Result{}, fmt.Errorf("cannot count workspaces: %w", err)
	}
	res := Result{Before: before, After: before, DryRun: dryRun}
	if before == 0 || dryRun {
		return res, nil
	}

	if err := conn.Exec(ctx, q.Merge); err != nil {
		return res, fmt.Errorf("cannot merge workspaces: %w", err)
	}
	res.Merged = true

	after, err := conn.QueryInt(ctx, q.Count)
	if err != nil {
		return res, fmt.Errorf("cannot count workspaces after merge: %w", err)
	}
	res.After = after
	return res, nil
}

// Run connects, merges, commits and closes the session, then writes the
// outcome to w. Nothing is committed unless every step before the commit
// succeeded.
func Run(ctx context.Context, connect ConnectFunc, opts Options, w io.Writer) error {
	res, err := run(ctx, connect, opts)
	if err != nil {
		PrintError(w, err)
		return err
	}
	PrintResult(w, res)
	return nil
}

func run(ctx context.Context, connect ConnectFunc, opts Options) (res Result, err error) {
	q := opts.Queries
	if q.Count == "" || q.Merge == "" {
		q = OracleQueries
	}

	conn, err := connect(ctx)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	res, err = Merge(ctx, conn, q, opts.DryRun)
	if err != nil {
		return res, err
	}
	if !opts.DryRun {
		if err := conn.Commit(); err != nil {
			return res, err
		}
	}
	return res, nil
}
