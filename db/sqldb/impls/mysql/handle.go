package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zeptools/invoicer/db/sqldb"
)

// Handle adapts *sql.DB to sqldb.Handle
type Handle struct {
	*sql.DB // [Embedded]
}

var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	res, err := h.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	r, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return row{h.DB.QueryRowContext(ctx, query, args...)}
}

// row maps sql.ErrNoRows onto sqldb.ErrNoRows
type row struct {
	*sql.Row
}

func (r row) Scan(dest ...any) error {
	err := r.Row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return sqldb.ErrNoRows
	}
	return err
}
