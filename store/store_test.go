package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/records"
	"github.com/zeptools/invoicer/sec"
)

func testCipher(t *testing.T) *sec.XChaCha20Poly1305Cipher {
	t.Helper()
	c, err := sec.NewXChaCha20Poly1305CipherBase64(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	return c
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)
	return map[string]Backend{
		"memory": NewMemory(),
		"dir":    dir,
		"kv":     NewKV(newFakeKV(), ""),
		"sql":    newTestSQL(t),
		"sealed": NewSealed(NewMemory(), testCipher(t)),
	}
}

func record(t *testing.T, number string) *invoice.Record {
	t.Helper()
	r := invoice.New(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	r.InvoiceNumber = number
	r.ClientName = "Globex"
	item := r.AddItem()
	require.NoError(t, r.UpdateItem(item.ID, invoice.FieldRate, "12.5"))
	return r
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(ctx, "k/1")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Put(ctx, "k/1", []byte("one")))
			require.NoError(t, b.Put(ctx, "k2", []byte("two")))
			require.NoError(t, b.Put(ctx, "k/1", []byte("uno")))

			got, err := b.Get(ctx, "k/1")
			require.NoError(t, err)
			assert.Equal(t, "uno", string(got))

			all, err := b.All(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"k/1": []byte("uno"), "k2": []byte("two")}, all)

			require.NoError(t, b.Delete(ctx, "k2"))
			assert.ErrorIs(t, b.Delete(ctx, "k2"), ErrNotFound)
			all, err = b.All(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestRecordsStore(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewRecords(b)
			_, err := s.Get(ctx, "INV-000002")
			assert.ErrorIs(t, err, ErrNotFound)

			r2 := record(t, "INV-000002")
			r1 := record(t, "INV-000001")
			require.NoError(t, s.Set(ctx, r2))
			require.NoError(t, s.Set(ctx, r1))

			r2.ClientName = "Initech"
			require.NoError(t, s.Set(ctx, r2))

			got, err := s.Get(ctx, "INV-000002")
			require.NoError(t, err)
			assert.Equal(t, r2, got)

			list, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "INV-000001", list[0].InvoiceNumber)
			assert.Equal(t, "Initech", list[1].ClientName)

			require.NoError(t, s.Delete(ctx, "INV-000001"))
			list, err = s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestSetRejectsInvalid(t *testing.T) {
	s := NewRecords(NewMemory())
	r := record(t, "INV-1")
	r.Currency = "XYZ"
	assert.ErrorIs(t, s.Set(context.Background(), r), records.ErrInvalidRecord)

	r = record(t, "")
	assert.ErrorIs(t, s.Set(context.Background(), r), ErrNoNumber)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListSkipsUndecodable(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Put(ctx, "broken", []byte("{")))
	s := NewRecords(mem)
	require.NoError(t, s.Set(ctx, record(t, "INV-1")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "INV-1", list[0].InvoiceNumber)
}

func TestSealedAtRest(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	s := NewSealed(inner, testCipher(t))
	require.NoError(t, s.Put(ctx, "INV-1", []byte(`{"secret":"Globex"}`)))

	raw, err := inner.Get(ctx, "INV-1")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Globex")

	// a value moved under another key must not open
	require.NoError(t, inner.Put(ctx, "INV-2", raw))
	_, err = s.Get(ctx, "INV-2")
	assert.Error(t, err)
	_, err = s.All(ctx)
	assert.Error(t, err)
}

func TestDirLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := NewDir(root)
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "INV/../x", []byte("v")))
	_, err = os.Stat(filepath.Join(root, "INV%2F..%2Fx.json"))
	assert.NoError(t, err)

	for _, bad := range []string{"", ".", ".."} {
		assert.Error(t, d.Put(ctx, bad, []byte("v")), bad)
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	all, err := d.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"INV/../x": []byte("v")}, all)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = d.Get(canceled, "INV/../x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackupKeepsSealedValues(t *testing.T) {
	ctx := context.Background()
	raw := NewMemory()
	src := NewRecords(NewSealed(raw, testCipher(t)))
	require.NoError(t, src.Set(ctx, record(t, "INV-1")))
	require.NoError(t, src.Set(ctx, record(t, "INV-2")))

	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, BackupTask(raw, dir)(ctx))

	restored := NewRecords(NewSealed(dir, testCipher(t)))
	list, err := restored.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "INV-1", list[0].InvoiceNumber)

	plain, err := dir.Get(ctx, "INV-1")
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "Globex")
}
