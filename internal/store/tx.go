package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Tx scopes record operations to one transaction. Obtain one through
// Store.Update or Store.View; it is invalid once the callback returns.
type Tx struct {
	tx      *sql.Tx
	session string
}

// Session returns the session timestamp of the owning Store.
func (t *Tx) Session() string {
	return t.session
}

type scanner interface {
	Scan(dest ...any) error
}

// selectOne runs query and scans at most one row. A missing row is (nil, nil).
func selectOne[T any](ctx context.Context, t *Tx, scan func(scanner) (T, error), query string, args ...any) (*T, error) {
	rec, err := scan(t.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// selectMany runs query and scans every row. An empty result is an empty,
// non-nil slice.
func selectMany[T any](ctx context.Context, t *Tx, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []T{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return list, nil
}

func (t *Tx) exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
