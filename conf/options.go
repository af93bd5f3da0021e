package conf

import (
	"time"

	"github.com/zeptools/invoicer/throttle"
)

// Store types
const (
	StoreMemory = "memory"
	StoreDir    = "dir"
	StoreKV     = "kv"
	StoreSQL    = "sql"
)

type StoreConf struct {
	Type    string `json:"type"`     // memory, dir, kv, sql
	Dir     string `json:"dir"`      // dir backend root
	SQLDB   string `json:"sql_db"`   // key in .sql-databases.json
	HashKey string `json:"hash_key"` // kv backend hash. empty = store.DefaultKVHashKey
	SealKey string `json:"seal_key"` // base64 32 bytes. empty = stored in clear
}

type ShareConf struct {
	Secret string  `json:"secret"` // HMAC secret. empty = sharing disabled
	Issuer string  `json:"issuer"`
	TTL    Seconds `json:"ttl"`
}

type ThrottleConf struct {
	Export           throttle.BucketConf `json:"export"`
	CleanupCycle     Seconds             `json:"cleanup_cycle"`
	CleanupOlderThan Seconds             `json:"cleanup_older_than"`
}

type BackupConf struct {
	Dir     string `json:"dir"` // empty = no backup job
	Hours   []int  `json:"hours"`
	Minutes []int  `json:"minutes"`
}

// Seconds is a duration written as whole seconds in config files
type Seconds int64

func (s Seconds) Std() time.Duration {
	return time.Duration(s) * time.Second
}

func (c *Core[B]) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "invoicer"
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreMemory
	}
	if c.Share.Issuer == "" {
		c.Share.Issuer = c.AppName
	}
	if c.Share.TTL == 0 {
		c.Share.TTL = Seconds(7 * 24 * 60 * 60)
	}
	if c.Throttle.Export.Burst == 0 {
		c.Throttle.Export = throttle.BucketConf{Burst: 10, Increment: 1, Period: 6 * time.Second}
	}
	if c.Throttle.CleanupCycle == 0 {
		c.Throttle.CleanupCycle = 5 * 60
	}
	if c.Throttle.CleanupOlderThan == 0 {
		c.Throttle.CleanupOlderThan = 30 * 60
	}
	if len(c.Backup.Minutes) == 0 {
		c.Backup.Minutes = []int{0}
	}
	if len(c.Backup.Hours) == 0 {
		c.Backup.Hours = []int{3}
	}
}
