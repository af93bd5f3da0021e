package api

import (
	"sync"
	"time"

	"github.com/zeptools/invoicer/preview"
	"github.com/zeptools/invoicer/routing"
	"github.com/zeptools/invoicer/store"
	"github.com/zeptools/invoicer/throttle"
)

const (
	ExportThrottleGroup = "export"

	maxRecordBody = 8 << 20
	maxLogoBody   = 3 << 20 // 2 MiB file plus multipart overhead
)

// Server holds what the handlers share. Each request works on its own record value.
type Server struct {
	Store       store.Store
	Preview     *preview.Renderer
	Throttle    *throttle.BucketStore[string] // nil = no export throttling
	ActionLocks *sync.Map                     // key-only locks for quick-save
	ShareSecret []byte                        // empty = sharing disabled
	ShareIssuer string
	ShareTTL    time.Duration
	PublicURL   string // share link base. empty = from the request
	Now         func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Routes registers every endpoint on router
func (s *Server) Routes(router *routing.BaseRouter) {
	recovered := routing.HandlerWrapperFunc(routing.RecoverWrapper)

	router.Group("/api/", func(api *routing.RouteGroup) {
		api.HandleFunc("GET templates", s.listTemplates)
		api.HandleFunc("GET currencies", s.listCurrencies)

		api.Group("invoices/", func(inv *routing.RouteGroup) {
			inv.HandleFunc("GET new", s.newInvoice)
			inv.HandleFunc("POST totals", s.recalculate)
			inv.HandleFunc("POST preview", s.preview)
			inv.HandleFunc("POST export", s.export, s.exportThrottle())
		}, routing.BodyLimit(maxRecordBody))

		api.Group("saved", func(saved *routing.RouteGroup) {
			saved.HandleFunc("GET ", s.listSaved)
			saved.HandleFunc("PUT ", s.putSaved)
			saved.HandleFunc("GET /{number}", s.getSaved)
			saved.HandleFunc("DELETE /{number}", s.deleteSaved)
			saved.HandleFunc("POST /{number}/share", s.share)
		}, routing.BodyLimit(maxRecordBody))

		api.HandleFunc("POST logo", s.uploadLogo, routing.BodyLimit(maxLogoBody))
	}, recovered)

	router.Group("/share/", func(sh *routing.RouteGroup) {
		sh.HandleFunc("GET {token}", s.openShared, s.exportThrottle())
	}, recovered)
}
