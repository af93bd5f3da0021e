package routing

import (
	"net/http"
	"sync"
)

type BaseRouter struct {
	*http.ServeMux // Embedded

	mu     sync.Mutex
	routes []string
}

var _ Router = (*BaseRouter)(nil)

func NewBaseRouter() *BaseRouter {
	return &BaseRouter{ServeMux: http.NewServeMux()}
}

// Handle registers a route pattern. ServeMux panics on a conflicting pattern.
func (r *BaseRouter) Handle(pattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	r.ServeMux.Handle(pattern, wrap(handler, handlerWrappers))
	r.mu.Lock()
	r.routes = append(r.routes, pattern)
	r.mu.Unlock()
}

func (r *BaseRouter) HandleFunc(pattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	r.Handle(pattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Routes lists registered patterns in registration order
func (r *BaseRouter) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// Group lets you register routes under a common Prefix + middleware.
func (r *BaseRouter) Group(prefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	g := &RouteGroup{
		Router:          r,
		Prefix:          prefix,
		HandlerWrappers: handlerWrappers,
	}
	batch(g)
	return g
}
