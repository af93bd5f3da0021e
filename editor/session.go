package editor

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/zeptools/invoicer/document"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/logo"
	"github.com/zeptools/invoicer/records"
	"github.com/zeptools/invoicer/styles"
)

var (
	ErrStale  = errors.New("editor: stale completion dropped")
	ErrClosed = errors.New("editor: session closed")
)

// Op is a kind of one-shot background operation
type Op string

const (
	OpLoad   Op = "load"
	OpLogo   Op = "logo"
	OpExport Op = "export"
)

// Ticket identifies one started operation. Only the latest ticket of its kind may complete.
type Ticket struct {
	op  Op
	seq uint64
}

func (t Ticket) Op() Op {
	return t.op
}

// Session is the single writer of one invoice record.
// Mutations run under mu to completion; a failed mutation leaves the record as it was.
type Session struct {
	mu     sync.Mutex
	rec    *invoice.Record
	desc   styles.Descriptor
	closed bool
	seq    uint64
	latest map[Op]uint64 // op -> seq of the ticket allowed to complete; 0 = idle
	now    func() time.Time
}

// New starts a session on rec, or on a fresh default record when rec is nil
func New(rec *invoice.Record) *Session {
	s := &Session{latest: make(map[Op]uint64), now: time.Now}
	if rec == nil {
		rec = invoice.New(s.now())
	}
	s.rec = rec.Clone()
	s.desc = styles.ForRecord(s.rec)
	return s
}

// Record returns a copy of the current record
func (s *Session) Record() *invoice.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

func (s *Session) Descriptor() styles.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desc
}

// Apply runs fn on a copy of the record and commits the copy only when fn succeeds
func (s *Session) Apply(fn func(r *invoice.Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	next := s.rec.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// commit must be called with mu held
func (s *Session) commit(next *invoice.Record) {
	s.rec = next
	s.desc = styles.ForRecord(next)
}

func (s *Session) AddItem() (invoice.LineItem, error) {
	var item invoice.LineItem
	err := s.Apply(func(r *invoice.Record) error {
		item = r.AddItem()
		return nil
	})
	return item, err
}

func (s *Session) UpdateItem(id string, field invoice.ItemField, raw string) error {
	return s.Apply(func(r *invoice.Record) error { return r.UpdateItem(id, field, raw) })
}

func (s *Session) RemoveItem(id string) error {
	return s.Apply(func(r *invoice.Record) error { return r.RemoveItem(id) })
}

func (s *Session) MoveItem(from, to int) error {
	return s.Apply(func(r *invoice.Record) error { return r.MoveItem(from, to) })
}

func (s *Session) SetText(field, value string) error {
	return s.Apply(func(r *invoice.Record) error { return r.SetText(field, value) })
}

func (s *Session) SetTaxRate(raw string) error {
	return s.Apply(func(r *invoice.Record) error {
		r.SetTaxRate(raw)
		return nil
	})
}

func (s *Session) SetTemplate(id string) error {
	return s.Apply(func(r *invoice.Record) error {
		r.SetTemplate(id)
		return nil
	})
}

func (s *Session) SetColor(slot, value string) error {
	return s.Apply(func(r *invoice.Record) error { return r.SetColor(slot, value) })
}

func (s *Session) SetCurrency(code string) error {
	return s.Apply(func(r *invoice.Record) error { return r.SetCurrency(code) })
}

func (s *Session) SetShowLogo(show bool) error {
	return s.Apply(func(r *invoice.Record) error {
		r.ShowLogo = show && r.LogoData() != ""
		return nil
	})
}

func (s *Session) SetLogoPosition(pos invoice.LogoPosition) error {
	return s.Apply(func(r *invoice.Record) error { return r.SetLogoPosition(pos) })
}

func (s *Session) ClearLogo() error {
	return s.Apply(func(r *invoice.Record) error {
		r.ClearLogo()
		return nil
	})
}

// RenewNumber gives the record a fresh invoice number from the session clock
func (s *Session) RenewNumber() (string, error) {
	var number string
	err := s.Apply(func(r *invoice.Record) error {
		number = invoice.NewInvoiceNumber(s.now())
		r.InvoiceNumber = number
		return nil
	})
	return number, err
}

// Begin starts an operation of kind op. A ticket of the same kind issued earlier becomes stale.
func (s *Session) Begin(op Op) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Ticket{}, ErrClosed
	}
	s.seq++
	s.latest[op] = s.seq
	return Ticket{op: op, seq: s.seq}, nil
}

// Busy reports whether an operation of kind op is in flight
func (s *Session) Busy(op Op) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[op] != 0
}

// finish runs merge for a current ticket and ends the operation.
// A stale ticket is dropped without running merge.
func (s *Session) finish(t Ticket, merge func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.latest[t.op] != t.seq || t.seq == 0 {
		log.Printf("[DEBUG][EDITOR] dropped stale %s completion", t.op)
		return ErrStale
	}
	s.latest[t.op] = 0
	if merge == nil {
		return nil
	}
	return merge()
}

// CompleteLoad replaces the record with a loaded one
func (s *Session) CompleteLoad(t Ticket, rec *invoice.Record, loadErr error) error {
	return s.finish(t, func() error {
		if loadErr != nil {
			return loadErr
		}
		if rec == nil {
			return records.ErrInvalidRecord
		}
		s.commit(rec.Clone())
		return nil
	})
}

// CompleteLogo attaches an ingested data URI
func (s *Session) CompleteLogo(t Ticket, dataURI string, ingestErr error) error {
	return s.finish(t, func() error {
		if ingestErr != nil {
			return ingestErr
		}
		if !invoice.IsImageDataURI(dataURI) {
			return logo.ErrNotImage
		}
		next := s.rec.Clone()
		next.SetLogo(dataURI)
		s.commit(next)
		return nil
	})
}

// CompleteExport only ends the operation; the artifact never touches the record
func (s *Session) CompleteExport(t Ticket) error {
	return s.finish(t, nil)
}

// LoadFile reads a saved-record file through the load boundary
func (s *Session) LoadFile(r io.Reader) error {
	t, err := s.Begin(OpLoad)
	if err != nil {
		return err
	}
	rec, err := records.Read(r)
	return s.CompleteLoad(t, rec, err)
}

// UploadLogo ingests an image through the logo boundary
func (s *Session) UploadLogo(r io.Reader, declared string) error {
	t, err := s.Begin(OpLogo)
	if err != nil {
		return err
	}
	uri, err := logo.Ingest(r, declared)
	return s.CompleteLogo(t, uri, err)
}

// Export renders a snapshot. ErrStale means a newer export started or the session closed meanwhile.
func (s *Session) Export(ctx context.Context) (*document.Artifact, error) {
	t, err := s.Begin(OpExport)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	rec, desc := s.rec.Clone(), s.desc
	s.mu.Unlock()

	art, renderErr := document.Render(ctx, rec, desc, invoice.SymbolFor(rec.Currency))
	if err := s.CompleteExport(t); err != nil {
		return nil, err
	}
	if renderErr != nil {
		return nil, renderErr
	}
	return art, nil
}

// Close makes every in-flight completion stale and rejects further edits
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	clear(s.latest)
}
