package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/preview"
	"github.com/zeptools/invoicer/records"
	"github.com/zeptools/invoicer/responses"
	"github.com/zeptools/invoicer/routing"
	"github.com/zeptools/invoicer/store"
	"github.com/zeptools/invoicer/throttle"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	server *Server
	router *routing.BaseRouter
	locks  *sync.Map
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	pv, err := preview.New("")
	require.NoError(t, err)
	tb := throttle.NewBucketStore[string](context.Background(), time.Hour, time.Hour)
	tb.SetBucketGroup(ExportThrottleGroup, &throttle.BucketConf{Burst: 100, Increment: 1, Period: time.Second})
	locks := &sync.Map{}
	s := &Server{
		Store:       store.NewRecords(store.NewMemory()),
		Preview:     pv,
		Throttle:    tb,
		ActionLocks: locks,
		ShareSecret: []byte("test-secret"),
		ShareIssuer: "invoicer-test",
		Now:         func() time.Time { return fixedNow },
	}
	router := routing.NewBaseRouter()
	s.Routes(router)
	return &testEnv{server: s, router: router, locks: locks}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func sampleBody(t *testing.T, number string) *bytes.Reader {
	t.Helper()
	r := invoice.New(fixedNow)
	r.InvoiceNumber = number
	r.CompanyName = "Acme"
	item := r.AddItem()
	require.NoError(t, r.UpdateItem(item.ID, invoice.FieldQuantity, "3"))
	require.NoError(t, r.UpdateItem(item.ID, invoice.FieldRate, "49.99"))
	r.SetTaxRate("10")
	b, err := records.Encode(r)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) responses.Message {
	t.Helper()
	var m responses.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestReferenceData(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tpls []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tpls))
	require.Len(t, tpls, 4)
	assert.Equal(t, "modern", tpls[0]["id"])

	rec = e.do(t, http.MethodGet, "/api/currencies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INR"`)
}

func TestNewInvoice(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/api/invoices/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := records.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", got.Date)
	assert.Equal(t, "2026-04-13", got.DueDate)
}

func TestTotals(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/invoices/totals", sampleBody(t, "INV-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := records.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.InDelta(t, 164.967, got.Total, 1e-9)

	rec = e.do(t, http.MethodPost, "/api/invoices/totals", strings.NewReader(`{"invoiceNumber":"x"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, responses.CodeInvalidRecord, decodeMessage(t, rec).Code)
}

func TestPreview(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/invoices/preview", sampleBody(t, "INV-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "$164.97")
}

func TestExport(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/invoices/export", sampleBody(t, "INV-9"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-INV-9.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestUnnumberedInvoice(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/invoices/export", sampleBody(t, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="invoice-untitled.pdf"`, rec.Header().Get("Content-Disposition"))

	rec = e.do(t, http.MethodPost, "/api/invoices/preview", sampleBody(t, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "N/A")

	rec = e.do(t, http.MethodPost, "/api/invoices/totals", sampleBody(t, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := records.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Empty(t, got.InvoiceNumber)

	rec = e.do(t, http.MethodPut, "/api/saved", sampleBody(t, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, responses.CodeInvalidRecord, decodeMessage(t, rec).Code)
}

func TestExportThrottled(t *testing.T) {
	e := newEnv(t)
	e.server.Throttle.SetBucketGroup(ExportThrottleGroup, &throttle.BucketConf{Burst: 1, Increment: 1, Period: time.Hour})
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/api/invoices/export", sampleBody(t, "INV-1")).Code)
	rec := e.do(t, http.MethodPost, "/api/invoices/export", sampleBody(t, "INV-1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, responses.CodeThrottled, decodeMessage(t, rec).Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestSavedUpsertAndList(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/saved/INV-2", nil).Code)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/saved", sampleBody(t, "INV-2")).Code)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/saved", sampleBody(t, "INV-1")).Code)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/saved", sampleBody(t, "INV-2")).Code)

	rec := e.do(t, http.MethodGet, "/api/saved", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*invoice.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "INV-1", list[0].InvoiceNumber)

	rec = e.do(t, http.MethodGet, "/api/saved/INV-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/api/saved/INV-2", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/api/saved/INV-2", nil).Code)
}

func TestSavedBusy(t *testing.T) {
	e := newEnv(t)
	e.locks.Store(savedLockKey("INV-1"), struct{}{})
	rec := e.do(t, http.MethodPut, "/api/saved", sampleBody(t, "INV-1"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, responses.CodeBusy, decodeMessage(t, rec).Code)
}

func TestShareFlow(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/api/saved/INV-7/share", nil).Code)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/saved", sampleBody(t, "INV-7")).Code)
	rec := e.do(t, http.MethodPost, "/api/saved/INV-7/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sr shareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sr))
	assert.True(t, strings.HasPrefix(sr.URL, "http://example.com/share/"))

	rec = e.do(t, http.MethodGet, "/share/"+sr.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `inline; filename="invoice-INV-7.pdf"`, rec.Header().Get("Content-Disposition"))

	rec = e.do(t, http.MethodGet, "/share/not-a-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, responses.CodeInvalidToken, decodeMessage(t, rec).Code)
}

func TestShareDisabled(t *testing.T) {
	e := newEnv(t)
	e.server.ShareSecret = nil
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/saved", sampleBody(t, "INV-7")).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/api/saved/INV-7/share", nil).Code)
}

func multipartLogo(t *testing.T, data []byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="logo"; filename="logo.png"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) upload(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/logo", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestLogoUpload(t *testing.T) {
	e := newEnv(t)
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	body, ct := multipartLogo(t, img.Bytes(), "image/png")
	rec := e.upload(t, body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	var lr logoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	assert.True(t, invoice.IsImageDataURI(lr.DataURI))

	body, ct = multipartLogo(t, []byte("plain words"), "text/plain")
	rec = e.upload(t, body, ct)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	body, ct = multipartLogo(t, make([]byte, 2<<20+10), "image/png")
	rec = e.upload(t, body, ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, responses.CodeLogoTooLarge, decodeMessage(t, rec).Code)

	rec = e.upload(t, bytes.NewBufferString("x"), "text/plain")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordBodyLimit(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/invoices/totals", bytes.NewReader(make([]byte, maxRecordBody+1)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
