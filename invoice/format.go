package invoice

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const DisplayDateLayout = "Jan 2, 2006"

// FormatAmount renders v with exactly two fraction digits.
// Rounds half away from zero on the shortest decimal form of v, so 14.997 -> "15.00".
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatMoney prefixes the currency symbol: "$149.97"
func FormatMoney(symbol string, v float64) string {
	return symbol + FormatAmount(v)
}

// FormatQuantity drops trailing zeros: 3 -> "3", 1.5 -> "1.5"
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPercent prints a tax rate the way it was entered: 8.5 -> "8.5"
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate turns an ISO date into the short display form.
// Anything that does not parse is shown as entered; dates are not range-validated.
func FormatDate(iso string) string {
	t, err := time.Parse(DateLayout, iso)
	if err != nil {
		t, err = time.Parse(time.RFC3339, iso)
		if err != nil {
			return iso
		}
	}
	return t.Format(DisplayDateLayout)
}
