package conf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/zeptools/invoicer/db"
	"github.com/zeptools/invoicer/db/kvdb"
	"github.com/zeptools/invoicer/db/sqldb"
	"github.com/zeptools/invoicer/schedjobs"
	"github.com/zeptools/invoicer/sec"
	"github.com/zeptools/invoicer/store"
	"github.com/zeptools/invoicer/svc"
	"github.com/zeptools/invoicer/throttle"
	"github.com/zeptools/invoicer/uds"
	"github.com/zeptools/invoicer/web"

	// registered database implementations
	_ "github.com/zeptools/invoicer/db/kvdb/impls/redis"
	_ "github.com/zeptools/invoicer/db/sqldb/impls/mysql"
	_ "github.com/zeptools/invoicer/db/sqldb/impls/pgsql"
)

// Core - common config
// B = Throttle BucketID Type _ e.g. string, int64, etc
type Core[B comparable] struct {
	AppName             string                   `json:"app_name"`
	Listen              string                   `json:"listen"`       // HTTP Server Listen IP:PORT Address
	Host                string                   `json:"host"`         // HTTP Host. Used to build share links
	AdminSocket         string                   `json:"admin_socket"` // UDS path. empty = no admin socket
	PreviewDir          string                   `json:"preview_dir"`  // .gohtml overrides. empty = embedded views
	Store               StoreConf                `json:"store"`
	Share               ShareConf                `json:"share"`
	Throttle            ThrottleConf             `json:"throttle"`
	Backup              BackupConf               `json:"backup"`
	AppRoot             string                   `json:"-"` // Filled from compiled paths
	RootCtx             context.Context          `json:"-"` // Global Context with RootCancel
	RootCancel          context.CancelFunc       `json:"-"` // CancelFunc for RootCtx
	UDSService          *uds.Service             `json:"-"` // PrepareUDSService
	JobScheduler        *schedjobs.Scheduler     `json:"-"` // PrepareJobScheduler
	WebService          *web.Service             `json:"-"` // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore[B] `json:"-"` // PrepareThrottleBucketStore
	ActionLocks         *sync.Map                `json:"-"` // map[string]struct{}
	KVDBConf            kvdb.Conf                `json:"-"` // loadKVDBConf
	BackendKVDBClient   kvdb.Client              `json:"-"` // prepareKVDBClient
	SQLDBConfs          map[string]*sqldb.Conf   `json:"-"` // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client  `json:"-"` // prepareSQLDBClients
	StoreBackend        store.Backend            `json:"-"` // PrepareRecordStore. values as persisted
	RecordStore         store.Store              `json:"-"` // PrepareRecordStore

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. prepare base fields
// 4. Start ShutdownSignalListener
func (c *Core[B]) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	if err := c.readConfFile(".core.json", c); err != nil {
		return err
	}
	c.applyDefaults()
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.ActionLocks = &sync.Map{}
	c.startShutdownSignalListener()
	return nil
}

func (c *Core[B]) readConfFile(name string, v any) error {
	confBytes, err := os.ReadFile(filepath.Join(c.AppRoot, "config", name))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Path resolves p against AppRoot unless it is absolute
func (c *Core[B]) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.AppRoot, p)
}

func (c *Core[B]) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core[B]) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		err := s.Start()
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s) // pass the loop var to the param. otherwise, they are captured inside goroutine lazily
	}
	return nil
}

func (c *Core[B]) WaitServicesDone() error {
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core[B]) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core[B]) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core[B]) PrepareJobScheduler() {
	c.JobScheduler = schedjobs.NewScheduler(c.RootCtx)
	c.AddService(c.JobScheduler)
}

func (c *Core[B]) PrepareUDSService(cmdMap map[string]uds.CmdHnd) {
	c.UDSService = uds.NewService(c.RootCtx, c.Path(c.AdminSocket), cmdMap)
	c.AddService(c.UDSService)
}

func (c *Core[B]) PrepareWebService(router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, c.Listen, router)
	c.AddService(c.WebService)
}

func (c *Core[B]) PrepareThrottleBucketStore() {
	c.ThrottleBucketStore = throttle.NewBucketStore[B](c.RootCtx, c.Throttle.CleanupCycle.Std(), c.Throttle.CleanupOlderThan.Std())
	c.AddService(c.ThrottleBucketStore)
}

func (c *Core[B]) PrepareKVDatabase() error {
	if err := c.readConfFile(".kv-databases.json", &c.KVDBConf); err != nil {
		return err
	}
	client, err := kvdb.New(&c.KVDBConf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.RootCtx, 5*time.Second)
	defer cancel()
	if err = client.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("kv database %s: %w", c.KVDBConf.Addr(), err)
	}
	c.BackendKVDBClient = client
	return nil
}

// PrepareSQLDatabases builds and inits every client listed in .sql-databases.json
func (c *Core[B]) PrepareSQLDatabases() error {
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err := c.readConfFile(".sql-databases.json", &c.SQLDBConfs); err != nil {
		return err
	}
	c.BackendSQLDBClients = make(map[string]sqldb.Client)
	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf.Type, sqlDBConf)
		if err != nil {
			return err
		}
		if err = dbClient.Init(); err != nil {
			return fmt.Errorf("sql db %q: %w", dbName, err)
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

// PrepareRecordStore opens the configured backend for quick-saved records,
// sealing values at rest when a seal key is set
func (c *Core[B]) PrepareRecordStore() error {
	backend, err := c.openBackend()
	if err != nil {
		return err
	}
	c.StoreBackend = backend
	if c.Store.SealKey == "" {
		c.RecordStore = store.NewRecords(backend)
		log.Printf("[INFO][STORE] %s backend ready", c.Store.Type)
		return nil
	}
	cipher, err := sec.NewXChaCha20Poly1305CipherFromKeyString(c.Store.SealKey)
	if err != nil {
		return fmt.Errorf("store seal key: %w", err)
	}
	c.RecordStore = store.NewRecords(store.NewSealed(backend, cipher))
	log.Printf("[INFO][STORE] %s backend ready, sealed at rest", c.Store.Type)
	return nil
}

func (c *Core[B]) openBackend() (store.Backend, error) {
	switch c.Store.Type {
	case StoreMemory:
		return store.NewMemory(), nil
	case StoreDir:
		if c.Store.Dir == "" {
			return nil, errors.New("store: dir backend needs store.dir")
		}
		return store.NewDir(c.Path(c.Store.Dir))
	case StoreKV:
		if err := c.PrepareKVDatabase(); err != nil {
			return nil, err
		}
		return store.NewKV(c.BackendKVDBClient, c.Store.HashKey), nil
	case StoreSQL:
		if err := c.PrepareSQLDatabases(); err != nil {
			return nil, err
		}
		client, ok := c.BackendSQLDBClients[c.Store.SQLDB]
		if !ok {
			return nil, fmt.Errorf("store: sql database %q not configured", c.Store.SQLDB)
		}
		ctx, cancel := context.WithTimeout(c.RootCtx, 10*time.Second)
		defer cancel()
		return store.NewSQL(ctx, client, client.DBType())
	}
	return nil, fmt.Errorf("store: unsupported type %q", c.Store.Type)
}

// PrepareBackupJob schedules copying the persisted values into Backup.Dir.
// Prerequisite: StoreBackend, JobScheduler
func (c *Core[B]) PrepareBackupJob() error {
	if c.Backup.Dir == "" {
		return nil
	}
	if c.StoreBackend == nil {
		return errors.New("record store not ready")
	}
	if c.JobScheduler == nil {
		return errors.New("job scheduler not ready")
	}
	dst, err := store.NewDir(c.Path(c.Backup.Dir))
	if err != nil {
		return err
	}
	job := schedjobs.NewEveryMinEmptyCronJob("store-backup")
	job.Minutes = schedjobs.BitsFromMinutes(c.Backup.Minutes)
	job.Hours = schedjobs.BitsFromHours(c.Backup.Hours)
	job.Task = store.BackupTask(c.StoreBackend, dst)
	c.JobScheduler.AddCronJob(job)
	log.Printf("[INFO][CORE] store backup scheduled at hours %v minutes %v", c.Backup.Hours, c.Backup.Minutes)
	return nil
}

func (c *Core[B]) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.BackendKVDBClient != nil {
		db.CloseClient("kv database", c.BackendKVDBClient)
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		db.CloseClient(fmt.Sprintf("%s sql database %s", sqlDBClient.DBType(), name), sqlDBClient)
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
