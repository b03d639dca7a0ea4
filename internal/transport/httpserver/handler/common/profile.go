package common

import (
	"errors"
	"net/http"
	"time"

	"budgetbuddy-go/internal/currency"
	userdomain "budgetbuddy-go/internal/domain/user"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
)

type profileResponse struct {
	UserID         string    `json:"user_id"`
	Email          *string   `json:"email"`
	DisplayName    *string   `json:"display_name"`
	AvatarURL      *string   `json:"avatar_url"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currency_symbol"`
	CreatedAt      time.Time `json:"created_at"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Currency    *string `json:"currency"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w)
		return
	}

	profile, err := h.Profiles.GetProfile(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrProfileNotFound) {
			h.log.BusinessError("profile.get: profile not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "profile_not_found", "profile not found")
			return
		}
		h.log.InternalError("profile.get: load profile failed", err, "user_id", user.ID)
		WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w)
		return
	}

	profile, err := h.Profiles.UpdateProfile(r.Context(), userdomain.UpdateProfileInput{
		UserID:      user.ID,
		DisplayName: req.DisplayName,
		Currency:    req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrProfileNotFound):
			h.log.BusinessError("profile.update: profile not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "profile_not_found", "profile not found")
		case errors.Is(err, userdomain.ErrUnsupportedCurrency):
			h.log.BusinessError("profile.update: unsupported currency", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "currency is not supported")
		case errors.Is(err, userdomain.ErrInvalidDisplayName):
			h.log.BusinessError("profile.update: invalid display name", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "display_name must be at most 80 characters")
		default:
			h.log.InternalError("profile.update: update profile failed", err, "user_id", user.ID)
			WriteInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(profile *userdomain.Profile) profileResponse {
	return profileResponse{
		UserID:         profile.UserID,
		Email:          profile.Email,
		DisplayName:    profile.DisplayName,
		AvatarURL:      profile.AvatarURL,
		Currency:       profile.Currency,
		CurrencySymbol: currency.Symbol(profile.Currency),
		CreatedAt:      profile.CreatedAt,
	}
}
