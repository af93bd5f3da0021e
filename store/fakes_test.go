package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeptools/invoicer/db/kvdb"
	"github.com/zeptools/invoicer/db/sqldb"
)

// fakeKV implements the hash ops of kvdb.Client over a map
type fakeKV struct {
	mu     sync.Mutex
	hashes map[string]map[string]string
}

var _ kvdb.Client = (*fakeKV)(nil)

func newFakeKV() *fakeKV {
	return &fakeKV{hashes: map[string]map[string]string{}}
}

func (f *fakeKV) Init() error { return nil }
func (f *fakeKV) Close() error { return nil }
func (f *fakeKV) GetConf() *kvdb.Conf { return &kvdb.Conf{Type: "fake"} }
func (f *fakeKV) Ping(context.Context) error { return nil }

func (f *fakeKV) SetField(_ context.Context, key string, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]string{}
		f.hashes[key] = h
	}
	h[field] = value.(string)
	return nil
}

func (f *fakeKV) GetField(_ context.Context, key string, field string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.hashes[key][field]
	return v, ok, nil
}

func (f *fakeKV) RemoveFields(_ context.Context, key string, fields ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, field := range fields {
		if _, ok := f.hashes[key][field]; ok {
			delete(f.hashes[key], field)
			n++
		}
	}
	return n, nil
}

func (f *fakeKV) GetAllFields(_ context.Context, key string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]string{}
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

// fakeSQL understands exactly the statements under sql/ for the pgsql dialect
type fakeSQL struct {
	mu      sync.Mutex
	created bool
	rows    map[string]string
}

var _ sqldb.Handle = (*fakeSQL)(nil)

func newTestSQL(t *testing.T) *SQL {
	t.Helper()
	h := &fakeSQL{rows: map[string]string{}}
	s, err := NewSQL(context.Background(), h, "pgsql")
	require.NoError(t, err)
	require.True(t, h.created)
	return s
}

type fakeResult int64

func (r fakeResult) RowsAffected() (int64, error) {
	return int64(r), nil
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (sqldb.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case strings.HasPrefix(query, "CREATE TABLE"):
		f.created = true
		return fakeResult(0), nil
	case strings.HasPrefix(query, "INSERT") && strings.Contains(query, "$2"):
		f.rows[args[0].(string)] = args[1].(string)
		return fakeResult(1), nil
	case strings.HasPrefix(query, "DELETE") && strings.Contains(query, "$1"):
		key := args[0].(string)
		if _, ok := f.rows[key]; !ok {
			return fakeResult(0), nil
		}
		delete(f.rows, key)
		return fakeResult(1), nil
	}
	panic("fakeSQL: unexpected exec " + query)
}

type fakeSQLRows struct {
	keys []string
	vals map[string]string
	i    int
}

func (r *fakeSQLRows) Next() bool {
	r.i++
	return r.i <= len(r.keys)
}

func (r *fakeSQLRows) Scan(dest ...any) error {
	k := r.keys[r.i-1]
	*dest[0].(*string) = k
	*dest[1].(*string) = r.vals[k]
	return nil
}

func (r *fakeSQLRows) Close() error { return nil }
func (r *fakeSQLRows) Err() error { return nil }

func (f *fakeSQL) QueryRows(_ context.Context, query string, _ ...any) (sqldb.Rows, error) {
	if !strings.Contains(query, "ORDER BY number") {
		panic("fakeSQL: unexpected query " + query)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := &fakeSQLRows{vals: map[string]string{}}
	for k, v := range f.rows {
		rows.keys = append(rows.keys, k)
		rows.vals[k] = v
	}
	sort.Strings(rows.keys)
	return rows, nil
}

type fakeSQLRow struct {
	key, val string
	found    bool
}

func (r fakeSQLRow) Scan(dest ...any) error {
	if !r.found {
		return sqldb.ErrNoRows
	}
	*dest[0].(*string) = r.key
	*dest[1].(*string) = r.val
	return nil
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) sqldb.Row {
	if !strings.Contains(query, "WHERE number = $1") {
		panic("fakeSQL: unexpected query " + query)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := args[0].(string)
	v, ok := f.rows[key]
	return fakeSQLRow{key: key, val: v, found: ok}
}
