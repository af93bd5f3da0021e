package routing

import (
	"fmt"
	"net/http"
	"strings"
)

type RouteGroup struct {
	Router          // [Embedded Interface]
	Prefix          string
	HandlerWrappers []HandlerWrapper // Group Handler Wrappers
}

var _ Router = (*RouteGroup)(nil)

// Handle registers "<method> <subpath>" or "<subpath>" under the group prefix.
// Group wrappers run before the route's own wrappers, outermost group first.
func (g *RouteGroup) Handle(subpattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	fullPattern := g.fullPattern(subpattern)
	if strings.Contains(fullPattern, "//") {
		panic(fmt.Sprintf("routing: bad pattern %q", fullPattern))
	}
	g.Router.Handle(fullPattern, wrap(wrap(handler, handlerWrappers), g.HandlerWrappers))
}

func (g *RouteGroup) fullPattern(subpattern string) string {
	if method, subpath, ok := strings.Cut(subpattern, " "); ok {
		return method + " " + g.Prefix + subpath
	}
	return g.Prefix + subpattern
}

func (g *RouteGroup) HandleFunc(subpattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	g.Handle(subpattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group on *RouteGroup makes a Subgroup
//
//	router.Group("/api/", func(api *RouteGroup) {       // "/api/..."
//	  api.HandleFunc("GET templates", listTemplates)    // "GET /api/templates"
//	  api.Group("saved", func(saved *RouteGroup) {      // "/api/saved..."
//	    saved.HandleFunc("GET /{number}", getSaved)     // "GET /api/saved/{number}"
//	  })
//	})
func (g *RouteGroup) Group(subPrefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	wrappers := make([]HandlerWrapper, 0, len(g.HandlerWrappers)+len(handlerWrappers))
	wrappers = append(wrappers, g.HandlerWrappers...)
	subg := &RouteGroup{
		Router:          g.Router,
		Prefix:          g.Prefix + subPrefix,
		HandlerWrappers: append(wrappers, handlerWrappers...),
	}
	batch(subg)
	return subg
}
