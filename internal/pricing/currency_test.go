package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "¥16,500", FormatAmount(16500, "JPY"))
	assert.Equal(t, "¥1,235", FormatAmount(1234.6, "jpy"))
	assert.Equal(t, "CN¥792", FormatAmount(792, "CNY"))
	assert.Equal(t, "฿3,630", FormatAmount(3630, "THB"))
	assert.Equal(t, "$111", FormatAmount(110.55, "USD"))
	assert.Equal(t, "-¥500", FormatAmount(-500, "JPY"))
}

func TestNormalizeCurrency(t *testing.T) {
	c, err := NormalizeCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", c)

	_, err = NormalizeCurrency("GBP")
	assert.Error(t, err)

	_, err = NormalizeCurrency("??")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	rates := Rates{"JPY": 1, "USD": 0.0067}

	assert.InDelta(t, 67, rates.Convert(10000, "JPY", "USD"), 0.0001)
	assert.InDelta(t, 10000, rates.Convert(67, "USD", "JPY"), 0.0001)
	// THB comes from the snapshot
	assert.InDelta(t, 2200, rates.Convert(10000, "JPY", "THB"), 0.0001)
	assert.InDelta(t, 500, rates.Convert(500, "EUR", "EUR"), 0.0001)
}

func TestDecodeRates(t *testing.T) {
	rates, err := DecodeRates(strings.NewReader(`{"base":"JPY","rates":{"USD":0.0068,"GBP":0.005,"THB":0.23}}`))
	require.NoError(t, err)
	assert.Equal(t, Rates{"JPY": 1, "USD": 0.0068, "THB": 0.23}, rates)

	_, err = DecodeRates(strings.NewReader(`{"base":"USD","rates":{"JPY":150}}`))
	assert.Error(t, err)

	_, err = DecodeRates(strings.NewReader(`{"rates":{}}`))
	assert.Error(t, err)
}
