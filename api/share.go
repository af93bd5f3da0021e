package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zeptools/invoicer/requests"
	"github.com/zeptools/invoicer/responses"
	"github.com/zeptools/invoicer/sec"
)

const defaultShareTTL = 7 * 24 * time.Hour

type shareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// share issues a link to the PDF of a saved invoice
func (s *Server) share(w http.ResponseWriter, r *http.Request) {
	if len(s.ShareSecret) == 0 {
		writeError(w, errSharingDisabled)
		return
	}
	number := r.PathValue("number")
	if _, err := s.Store.Get(r.Context(), number); err != nil {
		writeError(w, err)
		return
	}
	ttl := s.ShareTTL
	if ttl <= 0 {
		ttl = defaultShareTTL
	}
	token, err := sec.IssueShareToken(s.ShareSecret, s.ShareIssuer, number, ttl)
	if err != nil {
		writeError(w, err)
		return
	}
	base := s.PublicURL
	if base == "" {
		base = requests.BaseURL(r)
	}
	responses.EncodeWriteJSON(w, http.StatusOK, shareResponse{
		Token:     token,
		URL:       strings.TrimSuffix(base, "/") + "/share/" + url.PathEscape(token),
		ExpiresAt: time.Now().Add(ttl).UTC().Truncate(time.Second),
	})
}

func (s *Server) openShared(w http.ResponseWriter, r *http.Request) {
	if len(s.ShareSecret) == 0 {
		writeError(w, errSharingDisabled)
		return
	}
	number, err := sec.ParseShareToken(s.ShareSecret, s.ShareIssuer, r.PathValue("token"))
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.Store.Get(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writePDF(w, r, rec, true)
}
