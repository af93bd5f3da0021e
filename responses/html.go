package responses

import (
	"log"
	"net/http"
)

func WriteHTMLBytes(w http.ResponseWriter, HTTPStatusCode int, HTMLBytes []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(HTTPStatusCode) // Response Header Sent & Frozen
	if _, err := w.Write(HTMLBytes); err != nil {
		log.Printf("[ERROR] Writing HTML to Response: %v", err)
	}
}
