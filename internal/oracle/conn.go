package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Conn is a live database session with one open transaction. Nothing it
// executes is visible to other sessions until Commit.
type Conn struct {
	db        *sql.DB
	tx        *sql.Tx
	committed bool
}

// QueryInt runs a query returning a single integer, such as a count.
func (c *Conn) QueryInt(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := c.tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return n, nil
}

// Query runs a query inside the transaction.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := c.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// Exec runs a statement or PL/SQL block inside the transaction.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := c.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("execute failed: %w", err)
	}
	return nil
}

// Commit makes the transaction's changes permanent.
func (c *Conn) Commit() error {
	if err := c.tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	c.committed = true
	return nil
}

// Close rolls back anything not committed and closes the session.
func (c *Conn) Close() error {
	var rollbackErr error
	if !c.committed {
		if err := c.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			rollbackErr = fmt.Errorf("rollback failed: %w", err)
		}
	}
	if err := c.db.Close(); err != nil {
		return errors.Join(rollbackErr, fmt.Errorf("close failed: %w", err))
	}
	return rollbackErr
}
