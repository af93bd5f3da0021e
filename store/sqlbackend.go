package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/zeptools/invoicer/db/sqldb"
)

//go:embed sql
var sqlFS embed.FS

const sqlGroup = "saved"

var (
	stmtSchema = sqldb.StoreGroupedStmtKey{Group: sqlGroup, StmtName: "schema"}.String()
	stmtGet    = sqldb.StoreGroupedStmtKey{Group: sqlGroup, StmtName: "get"}.String()
	stmtAll    = sqldb.StoreGroupedStmtKey{Group: sqlGroup, StmtName: "all"}.String()
	stmtPut    = sqldb.StoreGroupedStmtKey{Group: sqlGroup, StmtName: "put"}.String()
	stmtDelete = sqldb.StoreGroupedStmtKey{Group: sqlGroup, StmtName: "delete"}.String()
)

type savedRow struct {
	Number string
	Body   string
}

func (r *savedRow) TargetFields() []any {
	return []any{&r.Number, &r.Body}
}

// SQL keeps records in the saved_invoices table
type SQL struct {
	handle sqldb.Handle
	stmts  *sqldb.RawSQLStore
}

var _ Backend = (*SQL)(nil)

// NewSQL loads the statements for dbType and creates the table when missing
func NewSQL(ctx context.Context, handle sqldb.Handle, dbType string) (*SQL, error) {
	stmts := sqldb.NewRawStore()
	if err := sqldb.LoadGroup(stmts, sqldb.GroupFS{Group: sqlGroup, FS: sqlFS}, dbType); err != nil {
		return nil, err
	}
	for _, key := range []string{stmtSchema, stmtGet, stmtAll, stmtPut, stmtDelete} {
		if _, ok := stmts.Get(key); !ok {
			return nil, fmt.Errorf("store: no %s statement for %s", key, dbType)
		}
	}
	if _, err := handle.Exec(ctx, stmts.MustGet(stmtSchema)); err != nil {
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return &SQL{handle: handle, stmts: stmts}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	row, err := sqldb.QueryItem[savedRow, *savedRow](ctx, s.handle, s.stmts.MustGet(stmtGet), key)
	if errors.Is(err, sqldb.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Body), nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.handle.Exec(ctx, s.stmts.MustGet(stmtPut), key, string(value))
	return err
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	res, err := s.handle.Exec(ctx, s.stmts.MustGet(stmtDelete), key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) All(ctx context.Context) (map[string][]byte, error) {
	rows, err := sqldb.QueryItems[savedRow, *savedRow](ctx, s.handle, s.stmts.MustGet(stmtAll))
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(rows))
	for _, r := range rows {
		out[r.Number] = []byte(r.Body)
	}
	return out, nil
}
