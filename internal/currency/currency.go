package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

const BaseCode = "USD"

type Currency struct {
	Code   string
	Symbol string
	Name   string
}

var Supported = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
}

// FallbackRates are USD based and used when the rates API is unreachable.
var FallbackRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"TRY": decimal.RequireFromString("33.5"),
	"GBP": decimal.RequireFromString("0.79"),
	"JPY": decimal.RequireFromString("145.2"),
}

func Lookup(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Symbol falls back to "$" for unknown codes.
func Symbol(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Symbol
	}
	return "$"
}

// Convert turns a USD amount into target using rates. A missing rate leaves
// the amount unchanged.
func Convert(amount decimal.Decimal, rates map[string]decimal.Decimal, target string) decimal.Decimal {
	rate, ok := rates[strings.ToUpper(target)]
	if !ok {
		return amount
	}
	return amount.Mul(rate)
}

// Format renders amount with the currency symbol, two decimals and
// thousands separators, e.g. "₺1,234.50".
func Format(amount decimal.Decimal, code string) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(Symbol(code))
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
