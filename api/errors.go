package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/zeptools/invoicer/document"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/locks/keyonlylocks"
	"github.com/zeptools/invoicer/logo"
	"github.com/zeptools/invoicer/records"
	"github.com/zeptools/invoicer/responses"
	"github.com/zeptools/invoicer/sec"
	"github.com/zeptools/invoicer/store"
)

var (
	errSharingDisabled = errors.New("api: sharing is not configured")
	errThrottled       = errors.New("api: too many exports, retry later")
)

// writeError maps domain errors onto statuses. Unknown errors are 500 and logged.
func writeError(w http.ResponseWriter, err error) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		responses.WriteErrorJSON(w, http.StatusRequestEntityTooLarge, responses.CodeInvalidInput, "request body too large")
	case errors.Is(err, records.ErrInvalidRecord), errors.Is(err, store.ErrNoNumber):
		responses.WriteErrorJSON(w, http.StatusBadRequest, responses.CodeInvalidRecord, err.Error())
	case errors.Is(err, invoice.ErrInvalidColor), errors.Is(err, invoice.ErrInvalidField):
		responses.WriteErrorJSON(w, http.StatusBadRequest, responses.CodeInvalidInput, err.Error())
	case errors.Is(err, logo.ErrTooLarge):
		responses.WriteErrorJSON(w, http.StatusRequestEntityTooLarge, responses.CodeLogoTooLarge, err.Error())
	case errors.Is(err, logo.ErrNotImage), errors.Is(err, logo.ErrEmpty):
		responses.WriteErrorJSON(w, http.StatusUnsupportedMediaType, responses.CodeLogoNotImage, err.Error())
	case errors.Is(err, store.ErrNotFound):
		responses.WriteErrorJSON(w, http.StatusNotFound, responses.CodeNotFound, "saved invoice not found")
	case errors.Is(err, keyonlylocks.ErrBusy):
		responses.WriteErrorJSON(w, http.StatusConflict, responses.CodeBusy, "invoice is being saved, retry")
	case errors.Is(err, errThrottled):
		responses.WriteErrorJSON(w, http.StatusTooManyRequests, responses.CodeThrottled, err.Error())
	case errors.Is(err, sec.ErrInvalidShareToken):
		responses.WriteErrorJSON(w, http.StatusNotFound, responses.CodeInvalidToken, "share link is invalid or expired")
	case errors.Is(err, errSharingDisabled):
		responses.WriteErrorJSON(w, http.StatusNotFound, responses.CodeNone, err.Error())
	case errors.Is(err, document.ErrRender):
		log.Printf("[ERROR][API] %v", err)
		responses.WriteErrorJSON(w, http.StatusInternalServerError, responses.CodeRenderFailed, "could not generate the PDF, please retry")
	default:
		log.Printf("[ERROR][API] %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
