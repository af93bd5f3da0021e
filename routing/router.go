package routing

import "net/http"

type Router interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
	Handle(pattern string, handler http.Handler, handlerWrappers ...HandlerWrapper)
	HandleFunc(pattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper)
	Routes() []string
}

// wrap nests handler so that wrappers[0] runs first and handler runs last
func wrap(handler http.Handler, wrappers []HandlerWrapper) http.Handler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		handler = wrappers[i].Wrap(handler)
	}
	return handler
}
