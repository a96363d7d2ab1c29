package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUSD(t *testing.T) {
	conv := NewConverter(nil)

	tests := []struct {
		name     string
		amount   float64
		code     string
		expected float64
	}{
		{name: "usd passthrough", amount: 50, code: "USD", expected: 50},
		{name: "empty code defaults to usd", amount: 25, code: "", expected: 25},
		{name: "ghs divides by rate", amount: 140, code: "GHS", expected: 10},
		{name: "ngn divides by rate", amount: 1600, code: "NGN", expected: 1},
		{name: "lower case code", amount: 140, code: "ghs", expected: 10},
		{name: "padded code", amount: 140, code: " GHS ", expected: 10},
		{name: "unknown code passes through", amount: 77, code: "JPY", expected: 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, conv.ToUSD(tt.amount, tt.code), 1e-9)
		})
	}
}

func TestToUSDRoundTrip(t *testing.T) {
	rates := DefaultRates()
	conv := NewConverter(rates)

	for code, rate := range rates {
		usd := conv.ToUSD(100, "USD")
		recovered := conv.ToUSD(usd*rate, code)
		assert.InDelta(t, 100, recovered, 1e-9, "round trip for %s", code)
		_ = rate
	}
}

func TestNewConverterInjectedTable(t *testing.T) {
	conv := NewConverter(Rates{"kes": 130})

	assert.InDelta(t, 1, conv.ToUSD(130, "KES"), 1e-9)
	assert.True(t, conv.Supported("kes"))
	// Injected tables replace the defaults entirely.
	assert.False(t, conv.Supported("GHS"))
	assert.InDelta(t, 14, conv.ToUSD(14, "GHS"), 1e-9)
}

func TestZeroRateIsPassThrough(t *testing.T) {
	conv := NewConverter(Rates{"ZZZ": 0})
	assert.InDelta(t, 9, conv.ToUSD(9, "ZZZ"), 1e-9)
}
