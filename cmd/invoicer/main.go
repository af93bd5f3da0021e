package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/zeptools/invoicer/admin"
	"github.com/zeptools/invoicer/api"
	"github.com/zeptools/invoicer/conf"
	"github.com/zeptools/invoicer/preview"
	"github.com/zeptools/invoicer/routing"
)

func main() {
	appRoot := flag.String("root", ".", "app root holding config/")
	flag.Parse()

	if err := run(*appRoot); err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}
}

func run(appRoot string) error {
	root, err := filepath.Abs(appRoot)
	if err != nil {
		return err
	}
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	core := &conf.Core[string]{}
	if err = core.BaseInit(root, rootCtx, rootCancel); err != nil {
		return err
	}
	defer core.ResourceCleanUp()

	if err = core.PrepareRecordStore(); err != nil {
		return err
	}
	renderer, err := preview.New(core.Path(core.PreviewDir))
	if err != nil {
		return err
	}

	core.PrepareThrottleBucketStore()
	core.ThrottleBucketStore.SetBucketGroup(api.ExportThrottleGroup, &core.Throttle.Export)

	server := &api.Server{
		Store:       core.RecordStore,
		Preview:     renderer,
		Throttle:    core.ThrottleBucketStore,
		ActionLocks: core.ActionLocks,
		ShareSecret: []byte(core.Share.Secret),
		ShareIssuer: core.Share.Issuer,
		ShareTTL:    core.Share.TTL.Std(),
		PublicURL:   core.Host,
	}
	router := routing.NewBaseRouter()
	server.Routes(router)
	for _, route := range router.Routes() {
		log.Printf("[INFO][ROUTING] %s", route)
	}
	core.PrepareWebService(router)

	core.PrepareJobScheduler()
	if err = core.PrepareBackupJob(); err != nil {
		return err
	}
	if core.AdminSocket != "" {
		core.PrepareUDSService(admin.Commands(core.RecordStore))
	}

	if err = core.StartServices(); err != nil {
		core.StopServices()
		return err
	}
	log.Printf("[INFO] %s started", core.AppName)

	// a service failing on its own takes the others down with it
	err = core.WaitServicesDone()
	rootCancel()
	log.Printf("[INFO] %s stopped", core.AppName)
	return err
}
