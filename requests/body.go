package requests

import "net/http"

// HasBody reports whether the request may carry a body and does
func HasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return r.Body != nil && r.Body != http.NoBody
}
