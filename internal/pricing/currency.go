package pricing

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rates are units of each currency per 1 JPY.
type Rates map[string]float64

// FallbackRates is used when live rates cannot be fetched.
var FallbackRates = Rates{
	"JPY": 1,
	"USD": 0.0067,
	"EUR": 0.0062,
	"THB": 0.22,
	"CNY": 0.048,
	"SGD": 0.0091,
}

var SupportedCurrencies = []string{"JPY", "USD", "EUR", "THB", "CNY", "SGD"}

var symbols = map[string]string{
	"JPY": "¥",
	"USD": "$",
	"EUR": "€",
	"THB": "฿",
	"CNY": "CN¥",
	"SGD": "S$",
}

var printer = message.NewPrinter(language.AmericanEnglish)

// NormalizeCurrency upper-cases code and checks it is a supported ISO 4217
// unit.
func NormalizeCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("invalid currency %q: %w", code, err)
	}
	c := unit.String()
	if _, ok := symbols[c]; !ok {
		return "", fmt.Errorf("unsupported currency %s", c)
	}
	return c, nil
}

// FormatAmount renders whole units with thousands grouping, e.g. ¥16,500.
func FormatAmount(amount float64, code string) string {
	code = strings.ToUpper(code)
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-" + symbol + printer.Sprintf("%d", -rounded)
	}
	return symbol + printer.Sprintf("%d", rounded)
}

// Convert moves amount between two currencies through the JPY base. Missing
// rates fall back to the snapshot.
func (r Rates) Convert(amount float64, from, to string) float64 {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return amount
	}
	fromRate, toRate := r.rate(from), r.rate(to)
	if fromRate == 0 || toRate == 0 {
		return amount
	}
	return amount / fromRate * toRate
}

func (r Rates) rate(code string) float64 {
	if v, ok := r[code]; ok && v > 0 {
		return v
	}
	return FallbackRates[code]
}

// DecodeRates reads an exchangerate.host style body
// ({"base":"JPY","rates":{...}}) keeping only supported currencies.
func DecodeRates(body io.Reader) (Rates, error) {
	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if payload.Base != "" && !strings.EqualFold(payload.Base, BaseCurrency) {
		return nil, fmt.Errorf("rates base is %s, want %s", payload.Base, BaseCurrency)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates payload is empty")
	}

	rates := Rates{BaseCurrency: 1}
	for _, c := range SupportedCurrencies {
		if v, ok := payload.Rates[c]; ok && v > 0 {
			rates[c] = v
		}
	}
	return rates, nil
}
