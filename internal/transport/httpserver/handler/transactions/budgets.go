package transactions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	budgetsdomain "budgetbuddy-go/internal/domain/budgets"
	"budgetbuddy-go/internal/domain/calendar"
	txdomain "budgetbuddy-go/internal/domain/transactions"
	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type upsertBudgetRequest struct {
	OverallLimit   *decimal.Decimal           `json:"overall_limit"`
	CategoryLimits map[string]decimal.Decimal `json:"category_limits"`
}

type budgetResponse struct {
	ID             string                     `json:"id"`
	Month          string                     `json:"month"`
	OverallLimit   decimal.Decimal            `json:"overall_limit"`
	CategoryLimits map[string]decimal.Decimal `json:"category_limits"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	monthKey, ok := month(w, chi.URLParam(r, "month"), h.now().In(h.location))
	if !ok {
		return
	}

	budget, err := h.Budgets.GetBudget(r.Context(), user.ID, monthKey)
	if err != nil {
		if errors.Is(err, budgetsdomain.ErrBudgetNotFound) {
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.get: load budget failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(*budget))
}

func (h *Handlers) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req upsertBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	for categoryID := range req.CategoryLimits {
		if categoryID != txdomain.OtherCategoryID && !commonhandler.ValidID(categoryID) {
			writeError(w, http.StatusBadRequest, "invalid_request", "category_limits keys must be category ids")
			return
		}
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	monthKey := strings.TrimSpace(chi.URLParam(r, "month"))

	budget, err := h.Budgets.UpsertBudget(r.Context(), budgetsdomain.UpsertBudgetInput{
		UserID:         user.ID,
		MonthKey:       monthKey,
		OverallLimit:   req.OverallLimit,
		CategoryLimits: req.CategoryLimits,
	})
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		case errors.Is(err, budgetsdomain.ErrInvalidLimit):
			h.log.BusinessError("budgets.upsert: invalid limit", err, "user_id", user.ID, "month", monthKey)
			writeError(w, http.StatusBadRequest, "invalid_request", "limits must not be negative")
		default:
			h.log.InternalError("budgets.upsert: save budget failed", err, "user_id", user.ID, "month", monthKey)
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(*budget))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	monthKey := strings.TrimSpace(chi.URLParam(r, "month"))

	if err := h.Budgets.DeleteBudget(r.Context(), user.ID, monthKey); err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		case errors.Is(err, budgetsdomain.ErrBudgetNotFound):
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
		default:
			h.log.InternalError("budgets.delete: delete budget failed", err, "user_id", user.ID, "month", monthKey)
			writeInternal(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toBudgetResponse(budget budgetsdomain.Budget) budgetResponse {
	limits := budget.CategoryLimits
	if limits == nil {
		limits = map[string]decimal.Decimal{}
	}
	return budgetResponse{
		ID:             budget.ID,
		Month:          budget.MonthKey,
		OverallLimit:   budget.OverallLimit,
		CategoryLimits: limits,
		UpdatedAt:      budget.UpdatedAt,
	}
}
