package routing

import (
	"net/http"

	"github.com/zeptools/invoicer/requests"
)

// HandlerWrapper has Wrap method which acts as a middleware by wrapping an http.Handler
// prepending and appending some additinonal logic wrapping the handler's ServeHTTP(w,r)
// and then returns a new http.Handler which can wrap another or can be wrapped by another
type HandlerWrapper interface {
	Wrap(http.Handler) http.Handler
}

// HandlerWrapperFunc lets a plain func(http.Handler) http.Handler act as a HandlerWrapper
type HandlerWrapperFunc func(http.Handler) http.Handler

func (f HandlerWrapperFunc) Wrap(inner http.Handler) http.Handler {
	return f(inner)
}

// BodyLimit caps request bodies at maxBytes. Reads past the cap fail with *http.MaxBytesError.
func BodyLimit(maxBytes int64) HandlerWrapper {
	return HandlerWrapperFunc(func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requests.HasBody(r) {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			inner.ServeHTTP(w, r)
		})
	})
}
