package responses

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
)

// WritePDFBytesWithFilename answers a download (attachment) unless inline is set
func WritePDFBytesWithFilename(w http.ResponseWriter, filename string, PDFBytes []byte, inline bool) {
	w.Header().Set("Content-Length", strconv.Itoa(len(PDFBytes)))
	WritePDFResponseHeaders(w, filename, inline)
	_, err := w.Write(PDFBytes)
	if err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}

// WritePDFResponseHeaders write HTTP response headers for PDF response. i.e. headers are frozen
func WritePDFResponseHeaders(w http.ResponseWriter, filename string, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
