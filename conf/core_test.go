package conf

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/store"
)

func appRoot(t *testing.T, coreJSON string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", ".core.json"), []byte(coreJSON), 0o600))
	return root
}

func initCore(t *testing.T, coreJSON string) *Core[string] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c := &Core[string]{}
	require.NoError(t, c.BaseInit(appRoot(t, coreJSON), ctx, cancel))
	return c
}

func TestDefaults(t *testing.T) {
	c := initCore(t, `{}`)
	assert.Equal(t, "invoicer", c.AppName)
	assert.Equal(t, "invoicer", c.Share.Issuer)
	assert.Equal(t, 7*24*time.Hour, c.Share.TTL.Std())
	assert.Equal(t, StoreMemory, c.Store.Type)
	assert.Equal(t, 10, c.Throttle.Export.Burst)
	assert.NotNil(t, c.ActionLocks)
}

func TestBaseInitErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &Core[string]{}
	assert.Error(t, c.BaseInit(t.TempDir(), ctx, cancel))

	err := c.BaseInit(appRoot(t, `{"listen": 8080}`), ctx, cancel)
	assert.ErrorContains(t, err, ".core.json")
}

func TestPath(t *testing.T) {
	c := initCore(t, `{}`)
	assert.Equal(t, filepath.Join(c.AppRoot, "data"), c.Path("data"))
	assert.Equal(t, "/var/lib/x", c.Path("/var/lib/x"))
	assert.Equal(t, "", c.Path(""))
}

func saveOne(t *testing.T, st store.Store) {
	t.Helper()
	rec := invoice.New(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	rec.InvoiceNumber = "INV-1"
	rec.ClientName = "Globex"
	require.NoError(t, st.Set(context.Background(), rec))
}

func TestDirStoreSealed(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	c := initCore(t, `{"store": {"type": "dir", "dir": "saved", "seal_key": "`+key+`"}}`)
	require.NoError(t, c.PrepareRecordStore())
	saveOne(t, c.RecordStore)

	raw, err := os.ReadFile(filepath.Join(c.AppRoot, "saved", "INV-1.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Globex")

	got, err := c.RecordStore.Get(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.ClientName)
}

func TestStoreConfErrors(t *testing.T) {
	for name, coreJSON := range map[string]string{
		"unknown type": `{"store": {"type": "tape"}}`,
		"dir no path":  `{"store": {"type": "dir"}}`,
		"bad seal key": `{"store": {"type": "memory", "seal_key": "short"}}`,
		"kv no conf":   `{"store": {"type": "kv"}}`,
		"sql no conf":  `{"store": {"type": "sql", "sql_db": "main"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := initCore(t, coreJSON)
			assert.Error(t, c.PrepareRecordStore())
			assert.Nil(t, c.RecordStore)
		})
	}
}

func TestBackupJob(t *testing.T) {
	c := initCore(t, `{"backup": {"dir": "backup", "hours": [2], "minutes": [30]}}`)
	assert.Error(t, c.PrepareBackupJob())

	require.NoError(t, c.PrepareRecordStore())
	c.PrepareJobScheduler()
	require.NoError(t, c.PrepareBackupJob())
	saveOne(t, c.RecordStore)

	jobs := c.JobScheduler.GetCronJobs()
	require.Len(t, jobs, 1)
	c.JobScheduler.RunDue(time.Date(2026, 10, 16, 2, 30, 0, 0, time.Local))
	c.JobScheduler.Wait()
	_, err := os.Stat(filepath.Join(c.AppRoot, "backup", "INV-1.json"))
	assert.NoError(t, err)
}

func TestServicesLifecycle(t *testing.T) {
	c := initCore(t, `{"listen": "127.0.0.1:0"}`)
	c.PrepareThrottleBucketStore()
	c.PrepareJobScheduler()
	require.NoError(t, c.StartServices())
	c.RootCancel()
	done := make(chan error, 1)
	go func() { done <- c.WaitServicesDone() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("services did not stop")
	}
}
