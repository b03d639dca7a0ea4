package common

import (
	"net/http"
	"time"

	"budgetbuddy-go/internal/domain/calendar"
	"github.com/go-chi/chi/v5"
)

type monthResponse struct {
	Month    string    `json:"month"`
	Display  string    `json:"display"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Previous string    `json:"previous"`
	Next     string    `json:"next"`
	Current  bool      `json:"current"`
}

func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	loc, err := RequestLocation(r, h.location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid timezone")
		return
	}
	now := h.now().In(loc)

	key, err := ParseMonth(chi.URLParam(r, "month"), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		return
	}

	month, err := calendar.Describe(key, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, monthResponse{
		Month:    month.Key,
		Display:  month.Display,
		Start:    month.Start,
		End:      month.End,
		Previous: month.Previous,
		Next:     month.Next,
		Current:  calendar.Contains(month.Key, now),
	})
}
