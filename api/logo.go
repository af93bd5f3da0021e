package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/zeptools/invoicer/logo"
	"github.com/zeptools/invoicer/responses"
)

const logoFormField = "logo"

type logoResponse struct {
	DataURI string `json:"data_uri"`
}

// uploadLogo takes a multipart file under "logo" and answers its data URI
func (s *Server) uploadLogo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile(logoFormField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, logo.ErrTooLarge)
			return
		}
		responses.WriteErrorJSON(w, http.StatusBadRequest, responses.CodeInvalidInput, "multipart field `logo` is required")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("[WARN][API] closing upload: %v", closeErr)
		}
	}()
	if header.Size > logo.MaxBytes {
		writeError(w, logo.ErrTooLarge)
		return
	}
	uri, err := logo.Ingest(file, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, logoResponse{DataURI: uri})
}
