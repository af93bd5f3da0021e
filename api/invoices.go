package api

import (
	"bytes"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/zeptools/invoicer/document"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/records"
	"github.com/zeptools/invoicer/requests"
	"github.com/zeptools/invoicer/responses"
	"github.com/zeptools/invoicer/routing"
	"github.com/zeptools/invoicer/styles"
	"github.com/zeptools/invoicer/templates"
)

func (s *Server) listTemplates(w http.ResponseWriter, _ *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, templates.All())
}

func (s *Server) listCurrencies(w http.ResponseWriter, _ *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, invoice.Currencies())
}

func (s *Server) newInvoice(w http.ResponseWriter, _ *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, invoice.New(s.now()))
}

// recalculate answers the posted record with derived fields recomputed
func (s *Server) recalculate(w http.ResponseWriter, r *http.Request) {
	rec, err := records.Read(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, rec)
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	rec, err := records.Read(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err = s.Preview.Render(&buf, rec, styles.ForRecord(rec), invoice.SymbolFor(rec.Currency)); err != nil {
		writeError(w, err)
		return
	}
	responses.WriteHTMLBytes(w, http.StatusOK, buf.Bytes())
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	rec, err := records.Read(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writePDF(w, r, rec, false)
}

func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, rec *invoice.Record, inline bool) {
	art, err := document.Render(r.Context(), rec, styles.ForRecord(rec), invoice.SymbolFor(rec.Currency))
	if err != nil {
		writeError(w, err)
		return
	}
	responses.WritePDFBytesWithFilename(w, art.FileName, art.Bytes, inline)
}

// exportThrottle limits PDF generation per client IP
func (s *Server) exportThrottle() routing.HandlerWrapper {
	return routing.HandlerWrapperFunc(func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.Throttle != nil {
				ok, wait := s.Throttle.Take(ExportThrottleGroup, requests.GetClientIP(r), time.Now())
				if !ok {
					if wait > 0 {
						w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
					}
					writeError(w, errThrottled)
					return
				}
			}
			inner.ServeHTTP(w, r)
		})
	})
}
