package bills

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

func (h *Handlers) clock(w http.ResponseWriter, r *http.Request) (*time.Location, time.Time, bool) {
	loc, err := commonhandler.RequestLocation(r, h.location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid timezone")
		return nil, time.Time{}, false
	}
	return loc, h.now().In(loc), true
}
