package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/zeptools/invoicer/invoice"
)

// MaxFileSize bounds a saved-record file read from an upload
const MaxFileSize = 8 << 20

var ErrInvalidRecord = errors.New("records: invalid invoice record")

type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return &ValidationError{Err: ErrInvalidRecord, Details: fmt.Sprintf(format, args...)}
}

// Encode writes the saved-file form: the record object, indented
func Encode(rec *invoice.Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

func Write(w io.Writer, rec *invoice.Record) error {
	b, err := Encode(rec)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Decode parses a saved record and fails closed: unknown or missing fields,
// trailing data and any field-level violation are rejected with ErrInvalidRecord.
// Derived amounts and totals are recomputed from quantities, rates and tax rate.
func Decode(data []byte) (*invoice.Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid("not a JSON object: %v", err)
	}
	var missing []string
	for _, key := range recordKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, invalid("missing fields: %s", strings.Join(missing, ", "))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	rec := &invoice.Record{}
	if err := dec.Decode(rec); err != nil {
		return nil, invalid("%v", err)
	}
	if dec.More() {
		return nil, invalid("trailing data after record")
	}
	if rec.LineItems == nil {
		rec.LineItems = invoice.LineItems{}
	}
	if err := Validate(rec); err != nil {
		return nil, err
	}
	rec.Recalculate()
	return rec, nil
}

// Read decodes at most MaxFileSize bytes from r
func Read(r io.Reader) (*invoice.Record, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, invalid("file larger than %d bytes", MaxFileSize)
	}
	return Decode(data)
}

// recordKeys are the JSON names every saved record must carry
var recordKeys = jsonKeys(reflect.TypeOf(invoice.Record{}))

func jsonKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}
