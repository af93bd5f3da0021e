package api

import (
	"net/http"

	"github.com/zeptools/invoicer/locks/keyonlylocks"
	"github.com/zeptools/invoicer/records"
	"github.com/zeptools/invoicer/responses"
	"github.com/zeptools/invoicer/store"
)

func savedLockKey(number string) string {
	return "saved:" + number
}

func (s *Server) listSaved(w http.ResponseWriter, r *http.Request) {
	list, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, list)
}

func (s *Server) getSaved(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), r.PathValue("number"))
	if err != nil {
		writeError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, rec)
}

// putSaved upserts by invoice number. A concurrent save of the same number gets 409.
func (s *Server) putSaved(w http.ResponseWriter, r *http.Request) {
	rec, err := records.Read(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	if rec.InvoiceNumber == "" {
		writeError(w, store.ErrNoNumber)
		return
	}
	err = keyonlylocks.Do(s.ActionLocks, []string{savedLockKey(rec.InvoiceNumber)}, func() error {
		return s.Store.Set(r.Context(), rec)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteSaved(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	err := keyonlylocks.Do(s.ActionLocks, []string{savedLockKey(number)}, func() error {
		return s.Store.Delete(r.Context(), number)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
