package common

import (
	"net/http"

	"budgetbuddy-go/internal/transport/httpserver/middleware"
)

type authMeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// AuthMe echoes the identity the auth middleware resolved.
func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, authMeResponse(user))
}
