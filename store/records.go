package store

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/records"
)

// Store is the quick-save slot: records keyed by invoice number, upsert on Set
type Store interface {
	Get(ctx context.Context, number string) (*invoice.Record, error)
	Set(ctx context.Context, rec *invoice.Record) error
	List(ctx context.Context) ([]*invoice.Record, error)
	Delete(ctx context.Context, number string) error
}

// Records stores records in the saved-file format over any Backend
type Records struct {
	backend Backend
}

var _ Store = (*Records)(nil)

func NewRecords(backend Backend) *Records {
	return &Records{backend: backend}
}

func (s *Records) Get(ctx context.Context, number string) (*invoice.Record, error) {
	b, err := s.backend.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	return records.Decode(b)
}

// Set validates before writing, so every stored value decodes.
// The invoice number is the slot key and must be set.
func (s *Records) Set(ctx context.Context, rec *invoice.Record) error {
	if rec.InvoiceNumber == "" {
		return ErrNoNumber
	}
	if err := records.Validate(rec); err != nil {
		return err
	}
	b, err := records.Encode(rec)
	if err != nil {
		return err
	}
	if err = s.backend.Put(ctx, rec.InvoiceNumber, b); err != nil {
		return fmt.Errorf("store: put %s: %w", rec.InvoiceNumber, err)
	}
	return nil
}

// List returns all decodable records ordered by invoice number.
// A value that no longer decodes is logged and skipped.
func (s *Records) List(ctx context.Context) ([]*invoice.Record, error) {
	all, err := s.backend.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*invoice.Record, 0, len(all))
	for key, b := range all {
		rec, err := records.Decode(b)
		if err != nil {
			log.Printf("[WARN][STORE] skipping saved invoice %s: %v", key, err)
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InvoiceNumber < out[j].InvoiceNumber
	})
	return out, nil
}

func (s *Records) Delete(ctx context.Context, number string) error {
	return s.backend.Delete(ctx, number)
}
