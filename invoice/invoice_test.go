package invoice

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func addItem(t *testing.T, r *Record, qty, rate string) LineItem {
	t.Helper()
	item := r.AddItem()
	require.NoError(t, r.UpdateItem(item.ID, FieldQuantity, qty))
	require.NoError(t, r.UpdateItem(item.ID, FieldRate, rate))
	got, ok := r.LineItems.Find(item.ID)
	require.True(t, ok)
	return got
}

func TestNewDefaults(t *testing.T) {
	r := New(fixedNow)
	assert.Regexp(t, `^INV-\d{6}$`, r.InvoiceNumber)
	assert.Equal(t, "2026-03-14", r.Date)
	assert.Equal(t, "2026-04-13", r.DueDate)
	assert.Empty(t, r.LineItems)
	assert.Equal(t, "USD", r.Currency)
	assert.Equal(t, "modern", r.Template)
	assert.Equal(t, "#3b82f6", r.TemplateColors.Primary)
	assert.Equal(t, LogoLeft, r.LogoPosition)
	assert.False(t, r.HasLogo())
}

func TestAddItemDefaults(t *testing.T) {
	r := New(fixedNow)
	item := r.AddItem()
	assert.Regexp(t, `^item-`, item.ID)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, 0.0, item.Rate)
	assert.Equal(t, 0.0, item.Amount)
	assert.Equal(t, 0.0, r.Total)
}

func TestEndToEndExample(t *testing.T) {
	r := New(fixedNow)
	item := addItem(t, r, "3", "49.99")
	assert.Equal(t, 149.97, item.Amount)

	r.SetTaxRate("10")
	assert.InDelta(t, 149.97, r.Subtotal, 1e-9)
	assert.InDelta(t, 14.997, r.TaxAmount, 1e-9)
	assert.InDelta(t, 164.967, r.Total, 1e-9)

	assert.Equal(t, "149.97", FormatAmount(r.Subtotal))
	assert.Equal(t, "15.00", FormatAmount(r.TaxAmount))
	assert.Equal(t, "164.97", FormatAmount(r.Total))
}

func TestCoercion(t *testing.T) {
	for _, raw := range []string{"", "abc", "-4", "NaN", "Inf", "-Inf"} {
		assert.Equal(t, 0.0, ParseNumber(raw), raw)
	}
	assert.Equal(t, 2.5, ParseNumber(" 2.5 "))

	r := New(fixedNow)
	item := addItem(t, r, "-3", "oops")
	assert.Equal(t, 0.0, item.Quantity)
	assert.Equal(t, 0.0, item.Amount)
	r.SetTaxRate("-10")
	assert.Equal(t, 0.0, r.TaxRate)
}

func TestUpdateItemErrors(t *testing.T) {
	r := New(fixedNow)
	assert.ErrorIs(t, r.UpdateItem("missing", FieldRate, "1"), ErrItemNotFound)
	item := r.AddItem()
	assert.ErrorIs(t, r.UpdateItem(item.ID, "amount", "99"), ErrInvalidField)
	assert.ErrorIs(t, r.RemoveItem("missing"), ErrItemNotFound)
}

func assertInvariants(t *testing.T, r *Record) {
	t.Helper()
	var sum float64
	for _, item := range r.LineItems {
		assert.Equal(t, LineAmount(item.Quantity, item.Rate), item.Amount)
		sum += item.Amount
	}
	assert.InDelta(t, sum, r.Subtotal, 1e-9)
	assert.InDelta(t, r.Subtotal+r.Subtotal*r.TaxRate/100, r.Total, 1e-9)
}

func TestInvariantsUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := New(fixedNow)
	r.SetTaxRate("7.25")
	for step := 0; step < 300; step++ {
		switch op := rng.Intn(5); {
		case op == 0 || len(r.LineItems) == 0:
			r.AddItem()
		case op == 1:
			id := r.LineItems[rng.Intn(len(r.LineItems))].ID
			require.NoError(t, r.UpdateItem(id, FieldQuantity, formatRand(rng)))
		case op == 2:
			id := r.LineItems[rng.Intn(len(r.LineItems))].ID
			require.NoError(t, r.UpdateItem(id, FieldRate, formatRand(rng)))
		case op == 3:
			id := r.LineItems[rng.Intn(len(r.LineItems))].ID
			require.NoError(t, r.RemoveItem(id))
		default:
			n := len(r.LineItems)
			require.NoError(t, r.MoveItem(rng.Intn(n), rng.Intn(n)))
		}
		assertInvariants(t, r)
	}
}

func formatRand(rng *rand.Rand) string {
	return FormatAmount(rng.Float64() * 500)
}

func TestReorderKeepsTotals(t *testing.T) {
	r := New(fixedNow)
	addItem(t, r, "2", "10.10")
	addItem(t, r, "1", "0.07")
	addItem(t, r, "5", "3.33")
	r.SetTaxRate("8.5")
	before := r.Totals()
	ids := r.LineItems.IDs()

	require.NoError(t, r.MoveItem(0, 2))
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, r.LineItems.IDs())
	after := r.Totals()
	assert.InDelta(t, before.Subtotal, after.Subtotal, 1e-9)
	assert.InDelta(t, before.TaxAmount, after.TaxAmount, 1e-9)
	assert.InDelta(t, before.Total, after.Total, 1e-9)
}

func TestComputeTotalsZeroRate(t *testing.T) {
	got := ComputeTotals([]LineItem{{Amount: 10}, {Amount: 0}}, 0)
	assert.Equal(t, Totals{Subtotal: 10, TaxAmount: 0, Total: 10}, got)
	assert.Equal(t, Totals{}, ComputeTotals(nil, 12))
}

func TestColors(t *testing.T) {
	r := New(fixedNow)
	for _, bad := range []string{"red", "#12", "#12345g", "3b82f6", "#1234"} {
		assert.ErrorIs(t, r.SetColor("primary", bad), ErrInvalidColor, bad)
	}
	assert.Equal(t, "#3b82f6", r.TemplateColors.Primary, "rejected input must not mutate")

	require.NoError(t, r.SetColor("accent", "#ABC"))
	assert.Equal(t, "#ABC", r.TemplateColors.Accent)

	err := r.SetColors(TemplateColors{Primary: "#000000", Accent: "nope", Background: "#fff"})
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, "#3b82f6", r.TemplateColors.Primary)
}

func TestSetTemplateResetsColors(t *testing.T) {
	r := New(fixedNow)
	require.NoError(t, r.SetColor("primary", "#ff0000"))
	r.SetTemplate("classic")
	assert.Equal(t, "classic", r.Template)
	assert.Equal(t, "#1e293b", r.TemplateColors.Primary)
	r.SetTemplate("does-not-exist")
	assert.Equal(t, "modern", r.Template)
}

func TestCurrencies(t *testing.T) {
	assert.Len(t, Currencies(), 6)
	assert.Equal(t, "€", SymbolFor("EUR"))
	assert.Equal(t, "C$", SymbolFor("CAD"))
	assert.Equal(t, "$", SymbolFor("XYZ"))
	r := New(fixedNow)
	assert.Error(t, r.SetCurrency("XYZ"))
	require.NoError(t, r.SetCurrency("JPY"))
}

func TestLogo(t *testing.T) {
	r := New(fixedNow)
	r.SetLogo("data:image/png;base64,AAAA")
	assert.True(t, r.HasLogo())
	assert.Error(t, r.SetLogoPosition("top"))
	require.NoError(t, r.SetLogoPosition(LogoCenter))
	r.ClearLogo()
	assert.False(t, r.HasLogo())
}

func TestCloneIsDeep(t *testing.T) {
	r := New(fixedNow)
	addItem(t, r, "1", "5")
	r.SetLogo("data:image/png;base64,AAAA")
	c := r.Clone()
	c.LineItems[0].Description = "changed"
	*c.Logo = "other"
	assert.Empty(t, r.LineItems[0].Description)
	assert.Equal(t, "data:image/png;base64,AAAA", r.LogoData())
}

func TestCloneKeepsEmptyItemList(t *testing.T) {
	b, err := json.Marshal(New(fixedNow).Clone())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"lineItems":[]`)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney("$", 0))
	assert.Equal(t, "€1234.50", FormatMoney("€", 1234.5))
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "1.5", FormatQuantity(1.5))
	assert.Equal(t, "8.5", FormatPercent(8.5))
	assert.Equal(t, "Mar 14, 2026", FormatDate("2026-03-14"))
	assert.Equal(t, "someday", FormatDate("someday"))
	assert.False(t, math.IsNaN(Coerce(math.NaN())))
}

func TestSetText(t *testing.T) {
	r := New(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, r.SetText("clientName", "Globex"))
	require.NoError(t, r.SetText("notes", "a\nb"))
	assert.Equal(t, "Globex", r.ClientName)
	assert.Equal(t, "a\nb", r.Notes)

	err := r.SetText("subtotal", "5")
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Zero(t, r.Subtotal)
}
