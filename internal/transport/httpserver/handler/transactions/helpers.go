package transactions

import (
	"net/http"
	"time"

	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func writeInternal(w http.ResponseWriter) {
	commonhandler.WriteInternal(w)
}

func unauthorized(w http.ResponseWriter) {
	commonhandler.WriteUnauthorized(w)
}

// clock resolves the request timezone and the current time in it. It writes
// the error response itself when the timezone is invalid.
func (h *Handlers) clock(w http.ResponseWriter, r *http.Request) (*time.Location, time.Time, bool) {
	loc, err := commonhandler.RequestLocation(r, h.location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid timezone")
		return nil, time.Time{}, false
	}
	return loc, h.now().In(loc), true
}

// month reads the month from the given value, defaulting to the month of now.
func month(w http.ResponseWriter, value string, now time.Time) (string, bool) {
	key, err := commonhandler.ParseMonth(value, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		return "", false
	}
	return key, true
}
