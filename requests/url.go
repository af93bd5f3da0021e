package requests

import (
	"net/http"
)

// BaseURL is scheme://host of the request as the client sees it
func BaseURL(req *http.Request) string {
	scheme := ""
	if req.TLS != nil {
		scheme = "https"
	} else {
		scheme = req.Header.Get("X-Forwarded-Proto")
		if scheme == "" {
			scheme = "http"
		}
	}
	return scheme + "://" + req.Host
}

func FullURL(req *http.Request) string {
	return BaseURL(req) + req.URL.RequestURI()
}
