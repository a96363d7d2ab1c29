package currency

import "strings"

// Rates maps an upper-case ISO code to units of that currency per 1 USD.
type Rates map[string]float64

// DefaultRates returns the built-in conversion table used when no rates
// file is configured. These are fixed approximations, not live quotes.
func DefaultRates() Rates {
	return Rates{
		"GHS": 14,
		"NGN": 1600,
		"XOF": 600,
		"XAF": 600,
		"EUR": 0.92,
		"GBP": 0.79,
	}
}

// Converter normalizes amounts into USD using a fixed rate table. The
// zero value converts with the default table.
type Converter struct {
	rates Rates
}

func (c Converter) table() Rates {
	if c.rates == nil {
		return DefaultRates()
	}
	return c.rates
}

// NewConverter builds a converter from the given table. Codes are matched
// case-insensitively; a nil table falls back to the defaults.
func NewConverter(rates Rates) Converter {
	if rates == nil {
		rates = DefaultRates()
	}
	normalized := make(Rates, len(rates))
	for code, rate := range rates {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return Converter{rates: normalized}
}

// ToUSD converts an amount in the given currency into USD. Empty or "USD"
// codes pass through unchanged. Unknown codes also pass through unchanged:
// the table is an approximation and the reporting pipeline prefers a wrong
// figure over a dropped one.
func (c Converter) ToUSD(amount float64, code string) float64 {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "USD" {
		return amount
	}
	rate, ok := c.table()[code]
	if !ok || rate == 0 {
		return amount
	}
	return amount / rate
}

// Supported reports whether the code has an entry in the table.
func (c Converter) Supported(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "USD" {
		return true
	}
	_, ok := c.table()[code]
	return ok
}
