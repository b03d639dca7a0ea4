package transactions

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	analyticsdomain "budgetbuddy-go/internal/domain/analytics"
	budgetsdomain "budgetbuddy-go/internal/domain/budgets"
	"budgetbuddy-go/internal/domain/calendar"
	txdomain "budgetbuddy-go/internal/domain/transactions"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"github.com/shopspring/decimal"
)

type totalsResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type breakdownResponse struct {
	Month string                            `json:"month"`
	Items []txdomain.CategoryBreakdownEntry `json:"items"`
}

type topCategoriesResponse struct {
	Month  string                            `json:"month"`
	Status string                            `json:"status"`
	Items  []txdomain.CategoryBreakdownEntry `json:"items"`
}

type progressResponse struct {
	Spent             decimal.Decimal `json:"spent"`
	Limit             decimal.Decimal `json:"limit"`
	Percentage        float64         `json:"percentage"`
	ClampedPercentage float64         `json:"clamped_percentage"`
	Remaining         decimal.Decimal `json:"remaining"`
	Over              decimal.Decimal `json:"over"`
	Status            string          `json:"status"`
}

type categoryProgressResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	progressResponse
}

type overviewResponse struct {
	Month            string                            `json:"month"`
	Display          string                            `json:"display"`
	Totals           txdomain.MonthlyTotals            `json:"totals"`
	Budget           *budgetResponse                   `json:"budget"`
	Progress         progressResponse                  `json:"progress"`
	TopCategories    []txdomain.CategoryBreakdownEntry `json:"top_categories"`
	CategoryProgress []categoryProgressResponse        `json:"category_progress"`
}

type periodResponse struct {
	Month   string                 `json:"month"`
	Display string                 `json:"display"`
	Totals  txdomain.MonthlyTotals `json:"totals"`
	Count   int                    `json:"count"`
}

type compareResponse struct {
	Current  periodResponse `json:"current"`
	Previous periodResponse `json:"previous"`
	Delta    struct {
		Amount  decimal.Decimal `json:"amount"`
		Percent float64         `json:"percent"`
	} `json:"delta"`
}

func (h *Handlers) AnalyticsTotals(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	monthKey, ok := month(w, r.URL.Query().Get("month"), now)
	if !ok {
		return
	}

	totals, err := h.Analytics.MonthlyTotals(r.Context(), user.ID, monthKey, loc)
	if err != nil {
		h.log.InternalError("analytics.totals: build totals failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, totalsResponse{
		Month:   monthKey,
		Income:  totals.Income,
		Expense: totals.Expense,
		Net:     totals.Net,
	})
}

func (h *Handlers) AnalyticsByCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	monthKey, ok := month(w, r.URL.Query().Get("month"), now)
	if !ok {
		return
	}

	items, err := h.Analytics.SpentByCategory(r.Context(), user.ID, monthKey, loc)
	if err != nil {
		h.log.InternalError("analytics.by_category: build breakdown failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, breakdownResponse{Month: monthKey, Items: items})
}

func (h *Handlers) TopCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	monthKey, ok := month(w, r.URL.Query().Get("month"), now)
	if !ok {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	result, err := h.Analytics.TopCategories(r.Context(), user.ID, monthKey, loc, limit)
	if err != nil {
		h.log.InternalError("analytics.top_categories: build report failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, topCategoriesResponse{
		Month:  monthKey,
		Status: string(result.Status),
		Items:  result.Items,
	})
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	monthKey, ok := month(w, r.URL.Query().Get("month"), now)
	if !ok {
		return
	}

	overview, err := h.Analytics.Overview(r.Context(), user.ID, monthKey, loc)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidFormat) {
			writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
			return
		}
		h.log.InternalError("analytics.overview: build overview failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	display, _ := calendar.Display(monthKey)
	response := overviewResponse{
		Month:            monthKey,
		Display:          display,
		Totals:           overview.Totals,
		Progress:         toProgressResponse(overview.Progress),
		TopCategories:    overview.TopCategories,
		CategoryProgress: make([]categoryProgressResponse, 0, len(overview.CategoryProgress)),
	}
	if overview.Budget != nil {
		budget := toBudgetResponse(*overview.Budget)
		response.Budget = &budget
	}
	for _, entry := range overview.CategoryProgress {
		response.CategoryProgress = append(response.CategoryProgress, categoryProgressResponse{
			CategoryID:       entry.CategoryID,
			CategoryName:     entry.CategoryName,
			progressResponse: toProgressResponse(entry.Progress),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	monthKey, ok := month(w, r.URL.Query().Get("month"), now)
	if !ok {
		return
	}

	result, err := h.Analytics.Compare(r.Context(), user.ID, monthKey, loc)
	if err != nil {
		h.log.InternalError("analytics.compare: build comparison failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	var response compareResponse
	response.Current = toPeriodResponse(result.Current)
	response.Previous = toPeriodResponse(result.Previous)
	response.Delta.Amount = result.Delta.Amount
	response.Delta.Percent = result.Delta.Percent
	writeJSON(w, http.StatusOK, response)
}

func toPeriodResponse(period analyticsdomain.PeriodSummary) periodResponse {
	display, _ := calendar.Display(period.MonthKey)
	return periodResponse{
		Month:   period.MonthKey,
		Display: display,
		Totals:  period.Totals,
		Count:   period.Count,
	}
}

func toProgressResponse(progress budgetsdomain.Progress) progressResponse {
	return progressResponse{
		Spent:             progress.Spent,
		Limit:             progress.Limit,
		Percentage:        progress.Percentage,
		ClampedPercentage: progress.ClampedPercentage,
		Remaining:         progress.Remaining,
		Over:              progress.Over,
		Status:            string(progress.Status),
	}
}
