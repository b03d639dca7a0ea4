package common

import (
	"net/http"
	"strings"
	"time"

	"budgetbuddy-go/internal/currency"
	"github.com/shopspring/decimal"
)

type currencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type ratesResponse struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Fallback  bool                       `json:"fallback"`
	Converted *convertedAmount           `json:"converted,omitempty"`
}

type convertedAmount struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}

func (h *Handlers) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	response := make([]currencyResponse, 0, len(currency.Supported))
	for _, c := range currency.Supported {
		response = append(response, currencyResponse{Code: c.Code, Symbol: c.Symbol, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, response)
}

// GetRates returns the latest USD based rates. With ?amount=&to= it also
// converts a USD amount into the target currency.
func (h *Handlers) GetRates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var amount *decimal.Decimal
	if raw := strings.TrimSpace(query.Get("amount")); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "amount must be a number")
			return
		}
		amount = &parsed
	}
	target := strings.ToUpper(strings.TrimSpace(query.Get("to")))
	if amount != nil && !currency.IsSupported(target) {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be a supported currency")
		return
	}

	rates := h.Rates.Latest(r.Context())
	response := ratesResponse{
		Base:      rates.Base,
		Rates:     rates.Values,
		FetchedAt: rates.FetchedAt,
		Fallback:  rates.Fallback,
	}
	if amount != nil {
		converted := currency.Convert(*amount, rates.Values, target)
		response.Converted = &convertedAmount{
			Amount:    converted.Round(2),
			Currency:  target,
			Formatted: currency.Format(converted, target),
		}
	}

	writeJSON(w, http.StatusOK, response)
}
