package invoice

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

const (
	DefaultCurrency = "USD"
	fallbackSymbol  = "$"
)

var currencies = []Currency{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
}

func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

func LookupCurrency(code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// SymbolFor returns the display symbol of code, "$" when code is unknown
func SymbolFor(code string) string {
	if c, ok := LookupCurrency(code); ok {
		return c.Symbol
	}
	return fallbackSymbol
}
