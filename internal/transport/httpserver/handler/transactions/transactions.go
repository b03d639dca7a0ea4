package transactions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	categoriesdomain "budgetbuddy-go/internal/domain/categories"
	txdomain "budgetbuddy-go/internal/domain/transactions"
	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *string         `json:"category_id"`
	Date          string          `json:"date"`
	Note          *string         `json:"note"`
	PaymentMethod string          `json:"payment_method"`
}

type transactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *string         `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Date          time.Time       `json:"date"`
	Note          *string         `json:"note"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type transactionListResponse struct {
	Month string                `json:"month"`
	Items []transactionResponse `json:"items"`
	Count int                   `json:"count"`
}

type sectionResponse struct {
	Label   string                `json:"label"`
	DateKey string                `json:"date_key"`
	Date    time.Time             `json:"date"`
	Items   []transactionResponse `json:"items"`
}

type sectionsResponse struct {
	Month    string            `json:"month"`
	Sections []sectionResponse `json:"sections"`
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
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
	filters, ok := parseFilters(w, r)
	if !ok {
		return
	}

	items, err := h.Transactions.ListByMonth(r.Context(), user.ID, monthKey, loc, filters)
	if err != nil {
		h.log.InternalError("transactions.list: list failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, transactionListResponse{
		Month: monthKey,
		Items: toTransactionResponses(items),
		Count: len(items),
	})
}

func (h *Handlers) ListSections(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	_, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	monthKey, ok := month(w, r.URL.Query().Get("month"), now)
	if !ok {
		return
	}
	filters, ok := parseFilters(w, r)
	if !ok {
		return
	}

	groups, err := h.Transactions.Sections(r.Context(), user.ID, monthKey, filters, now)
	if err != nil {
		h.log.InternalError("transactions.sections: list failed", err, "user_id", user.ID, "month", monthKey)
		writeInternal(w)
		return
	}

	sections := make([]sectionResponse, 0, len(groups))
	for _, group := range groups {
		sections = append(sections, sectionResponse{
			Label:   group.Label,
			DateKey: group.DateKey,
			Date:    group.Date,
			Items:   toTransactionResponses(group.Items),
		})
	}
	writeJSON(w, http.StatusOK, sectionsResponse{Month: monthKey, Sections: sections})
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, _, ok := h.clock(w, r)
	if !ok {
		return
	}
	date, err := commonhandler.ParseDate(req.Date, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD or RFC 3339")
		return
	}

	created, err := h.Transactions.CreateTransaction(r.Context(), txdomain.CreateTransactionInput{
		UserID:        user.ID,
		Type:          txdomain.Type(strings.TrimSpace(req.Type)),
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		Date:          date,
		Note:          req.Note,
		PaymentMethod: txdomain.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
	})
	if err != nil {
		if writeTransactionError(w, err) {
			h.log.BusinessError("transactions.create: validation failed", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("transactions.create: create failed", err, "user_id", user.ID)
		writeInternal(w)
		return
	}

	h.Analytics.Invalidate(user.ID)
	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))
	if !commonhandler.ValidID(transactionID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "id must be a uuid")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	loc, _, ok := h.clock(w, r)
	if !ok {
		return
	}
	date, err := commonhandler.ParseDate(req.Date, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD or RFC 3339")
		return
	}

	updated, err := h.Transactions.UpdateTransaction(r.Context(), txdomain.UpdateTransactionInput{
		ID:            transactionID,
		UserID:        user.ID,
		Type:          txdomain.Type(strings.TrimSpace(req.Type)),
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		Date:          date,
		Note:          req.Note,
		PaymentMethod: txdomain.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
	})
	if err != nil {
		if writeTransactionError(w, err) {
			h.log.BusinessError("transactions.update: rejected", err, "user_id", user.ID, "transaction_id", transactionID)
			return
		}
		h.log.InternalError("transactions.update: update failed", err, "user_id", user.ID, "transaction_id", transactionID)
		writeInternal(w)
		return
	}

	h.Analytics.Invalidate(user.ID)
	writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))
	if !commonhandler.ValidID(transactionID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "id must be a uuid")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	if err := h.Transactions.DeleteTransaction(r.Context(), user.ID, transactionID); err != nil {
		if errors.Is(err, txdomain.ErrTransactionNotFound) {
			h.log.BusinessError("transactions.delete: transaction not found", err, "user_id", user.ID, "transaction_id", transactionID)
			writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
			return
		}
		h.log.InternalError("transactions.delete: delete failed", err, "user_id", user.ID, "transaction_id", transactionID)
		writeInternal(w)
		return
	}

	h.Analytics.Invalidate(user.ID)
	w.WriteHeader(http.StatusNoContent)
}

func parseFilters(w http.ResponseWriter, r *http.Request) (txdomain.Filters, bool) {
	query := r.URL.Query()
	filters := txdomain.Filters{
		Type:          strings.ToLower(strings.TrimSpace(query.Get("type"))),
		CategoryID:    strings.TrimSpace(query.Get("category_id")),
		PaymentMethod: strings.ToLower(strings.TrimSpace(query.Get("payment_method"))),
		Search:        query.Get("search"),
	}

	if filters.Type != "" && filters.Type != txdomain.FilterAll && !txdomain.Type(filters.Type).Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "type must be all, income or expense")
		return txdomain.Filters{}, false
	}
	if filters.PaymentMethod != "" && filters.PaymentMethod != txdomain.FilterAll && !txdomain.PaymentMethod(filters.PaymentMethod).Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "payment_method must be all, cash or card")
		return txdomain.Filters{}, false
	}
	return filters, true
}

func writeTransactionError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, txdomain.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
	case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, txdomain.ErrInvalidType):
		writeError(w, http.StatusBadRequest, "invalid_request", "type must be income or expense")
	case errors.Is(err, txdomain.ErrInvalidPaymentMethod):
		writeError(w, http.StatusBadRequest, "invalid_request", "payment_method must be cash or card")
	case errors.Is(err, txdomain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
	case errors.Is(err, txdomain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_request", "date is required")
	case errors.Is(err, txdomain.ErrInvalidCategoryID):
		writeError(w, http.StatusBadRequest, "invalid_request", "category_id must be a uuid")
	default:
		return false
	}
	return true
}

func toTransactionResponses(items []txdomain.Transaction) []transactionResponse {
	response := make([]transactionResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTransactionResponse(item))
	}
	return response
}

func toTransactionResponse(tx txdomain.Transaction) transactionResponse {
	name := tx.CategoryNameSnapshot
	if name == "" {
		name = txdomain.OtherCategoryName
	}
	return transactionResponse{
		ID:            tx.ID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		CategoryID:    tx.CategoryID,
		CategoryName:  name,
		Date:          tx.Date,
		Note:          tx.Note,
		PaymentMethod: string(tx.PaymentMethod),
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}
