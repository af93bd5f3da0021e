package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zeptools/invoicer/orm"
	"github.com/zeptools/invoicer/templates"
)

type TemplateColors = templates.Colors

type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

func (p LogoPosition) Valid() bool {
	switch p {
	case LogoLeft, LogoCenter, LogoRight:
		return true
	}
	return false
}

type LineItem struct {
	ID          string  `json:"id" validate:"required"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Rate        float64 `json:"rate" validate:"gte=0"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

func (li LineItem) GetID() string {
	return li.ID
}

type LineItems = orm.Sequence[LineItem, string]

// Record is one invoice being edited. It owns its line items and color triple.
// Subtotal, TaxAmount and Total are derived; every mutator below keeps them current.
type Record struct {
	InvoiceNumber  string         `json:"invoiceNumber"`
	Date           string         `json:"date"`
	DueDate        string         `json:"dueDate"`
	CompanyName    string         `json:"companyName"`
	CompanyAddress string         `json:"companyAddress"`
	CompanyEmail   string         `json:"companyEmail"`
	CompanyPhone   string         `json:"companyPhone"`
	ClientName     string         `json:"clientName"`
	ClientAddress  string         `json:"clientAddress"`
	ClientEmail    string         `json:"clientEmail"`
	LineItems      LineItems      `json:"lineItems" validate:"dive"`
	Subtotal       float64        `json:"subtotal"`
	TaxRate        float64        `json:"taxRate" validate:"gte=0"`
	TaxAmount      float64        `json:"taxAmount"`
	Total          float64        `json:"total"`
	Notes          string         `json:"notes"`
	Currency       string         `json:"currency" validate:"required,currency"`
	Template       string         `json:"template" validate:"required,template"`
	TemplateColors TemplateColors `json:"templateColors"`
	ShowLogo       bool           `json:"showLogo"`
	LogoPosition   LogoPosition   `json:"logoPosition" validate:"required,oneof=left center right"`
	Logo           *string        `json:"logo"`
}

const (
	DateLayout     = "2006-01-02"
	DefaultDueDays = 30
)

// New returns a record with session defaults: fresh number, today, due in 30 days,
// no items, USD, the default template and its colors, logo hidden on the left
func New(now time.Time) *Record {
	tpl := templates.Get(templates.DefaultID)
	return &Record{
		InvoiceNumber:  NewInvoiceNumber(now),
		Date:           now.Format(DateLayout),
		DueDate:        now.AddDate(0, 0, DefaultDueDays).Format(DateLayout),
		LineItems:      LineItems{},
		Currency:       DefaultCurrency,
		Template:       tpl.ID,
		TemplateColors: tpl.Colors,
		LogoPosition:   LogoLeft,
	}
}

// NewInvoiceNumber is "INV-" followed by the last 6 digits of the millisecond clock
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%06d", now.UnixMilli()%1_000_000)
}

// NewLineItemID is time-ordered (UUIDv7) so ids sort by creation
func NewLineItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "item-" + id.String()
}

// LineAmount is quantity*rate rounded to cents
func LineAmount(quantity float64, rate float64) float64 {
	return decimal.NewFromFloat(quantity * rate).Round(2).InexactFloat64()
}

// Clone returns a deep copy. Renderers and exporters work on clones.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.LineItems = r.LineItems.Clone()
	if r.Logo != nil {
		logo := *r.Logo
		c.Logo = &logo
	}
	return &c
}

// HasLogo reports whether a logo should be drawn
func (r *Record) HasLogo() bool {
	return r.ShowLogo && r.Logo != nil && *r.Logo != ""
}

func (r *Record) LogoData() string {
	if r.Logo == nil {
		return ""
	}
	return *r.Logo
}

// IsImageDataURI reports whether s looks like "data:image/<type>;base64,<payload>"
func IsImageDataURI(s string) bool {
	head, _, ok := strings.Cut(s, ",")
	return ok && strings.HasPrefix(head, "data:image/") && strings.HasSuffix(head, ";base64")
}
