package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/zeptools/invoicer/svc"
)

const DefaultShutdownTimeout = 10 * time.Second

type Service struct {
	Ctx             context.Context    // Service Context
	cancel          context.CancelFunc // Service Context CancelFunc
	state           int                // internal service state
	done            chan error         // Shutdown Error Channel
	Server          *http.Server
	ShutdownTimeout time.Duration
	listener        net.Listener
}

func (s *Service) Name() string {
	return "WebService"
}

func NewService(parentCtx context.Context, addr string, router http.Handler) *Service {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Service{
		Ctx:    svcCtx,
		cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Start binds the listen address and serves in the background.
// Bind errors are returned immediately, serving errors are pushed into Done().
func (s *Service) Start() error {
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	listener, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen(%q) failed: %w", s.Server.Addr, err)
	}
	s.listener = listener
	s.state = svc.StateRUNNING
	go s.run()
	return nil
}

// Addr is the bound address, useful when listening on port 0
func (s *Service) Addr() string {
	if s.listener == nil {
		return s.Server.Addr
	}
	return s.listener.Addr().String()
}

func (s *Service) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][WEB] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
	log.Println("[INFO][WEB] service stopped")
}

func (s *Service) Done() <-chan error {
	return s.done
}

func (s *Service) run() {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[INFO][WEB] listening on %s ...", s.listener.Addr())
		if err := s.Server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		s.done <- err
		return
	case <-s.Ctx.Done():
	}

	log.Printf("[INFO][WEB] shutting down")
	// stop accepting new requests, give in-flight ones time to finish
	ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	if err := s.Server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR][WEB] server shutdown failed: %v", err)
		s.done <- err
		return
	}
	s.done <- <-serveErr
}
