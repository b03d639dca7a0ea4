package bills

import (
	"errors"
	"net/http"
	"strings"
	"time"

	billsdomain "budgetbuddy-go/internal/domain/bills"
	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type billRequest struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   string          `json:"due_date"`
	Recurring string          `json:"recurring"`
}

type billResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	DueLabel    string          `json:"due_label"`
	Recurring   string          `json:"recurring"`
	PaidAt      *time.Time      `json:"paid_at"`
	LastPaidAt  *time.Time      `json:"last_paid_at"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	CreatedAt   time.Time       `json:"created_at"`
}

type groupedBillsResponse struct {
	Overdue  []billResponse `json:"overdue"`
	DueSoon  []billResponse `json:"due_soon"`
	Upcoming []billResponse `json:"upcoming"`
	Paid     []billResponse `json:"paid"`
}

func (h *Handlers) ListBills(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}
	_, now, ok := h.clock(w, r)
	if !ok {
		return
	}

	items, err := h.Bills.ListBills(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("bills.list: list bills failed", err, "user_id", user.ID)
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponses(items, now))
}

func (h *Handlers) GroupedBills(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}
	_, now, ok := h.clock(w, r)
	if !ok {
		return
	}

	groups, err := h.Bills.GroupedBills(r.Context(), user.ID, now)
	if err != nil {
		h.log.InternalError("bills.grouped: list bills failed", err, "user_id", user.ID)
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, groupedBillsResponse{
		Overdue:  toBillResponses(groups.Overdue, now),
		DueSoon:  toBillResponses(groups.DueSoon, now),
		Upcoming: toBillResponses(groups.Upcoming, now),
		Paid:     toBillResponses(groups.Paid, now),
	})
}

func (h *Handlers) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	dueDate, err := commonhandler.ParseDate(req.DueDate, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "due_date must be YYYY-MM-DD or RFC 3339")
		return
	}

	created, err := h.Bills.CreateBill(r.Context(), billsdomain.CreateBillInput{
		UserID:    user.ID,
		Name:      req.Name,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Recurring: billsdomain.Recurrence(strings.ToLower(strings.TrimSpace(req.Recurring))),
	})
	if err != nil {
		if writeBillError(w, err) {
			h.log.BusinessError("bills.create: rejected", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("bills.create: create bill failed", err, "user_id", user.ID)
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, toBillResponse(*created, now))
}

func (h *Handlers) UpdateBill(w http.ResponseWriter, r *http.Request) {
	billID, ok := billIDParam(w, r)
	if !ok {
		return
	}

	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}
	loc, now, ok := h.clock(w, r)
	if !ok {
		return
	}
	dueDate, err := commonhandler.ParseDate(req.DueDate, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "due_date must be YYYY-MM-DD or RFC 3339")
		return
	}

	updated, err := h.Bills.UpdateBill(r.Context(), billsdomain.UpdateBillInput{
		ID:        billID,
		UserID:    user.ID,
		Name:      req.Name,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Recurring: billsdomain.Recurrence(strings.ToLower(strings.TrimSpace(req.Recurring))),
	})
	if err != nil {
		if writeBillError(w, err) {
			h.log.BusinessError("bills.update: rejected", err, "user_id", user.ID, "bill_id", billID)
			return
		}
		h.log.InternalError("bills.update: update bill failed", err, "user_id", user.ID, "bill_id", billID)
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponse(*updated, now))
}

func (h *Handlers) DeleteBill(w http.ResponseWriter, r *http.Request) {
	billID, ok := billIDParam(w, r)
	if !ok {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	if err := h.Bills.DeleteBill(r.Context(), user.ID, billID); err != nil {
		if writeBillError(w, err) {
			h.log.BusinessError("bills.delete: rejected", err, "user_id", user.ID, "bill_id", billID)
			return
		}
		h.log.InternalError("bills.delete: delete bill failed", err, "user_id", user.ID, "bill_id", billID)
		commonhandler.WriteInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.togglePaid(w, r, true)
}

func (h *Handlers) MarkUnpaid(w http.ResponseWriter, r *http.Request) {
	h.togglePaid(w, r, false)
}

func (h *Handlers) togglePaid(w http.ResponseWriter, r *http.Request, paid bool) {
	op := "bills.unpay"
	if paid {
		op = "bills.pay"
	}

	billID, ok := billIDParam(w, r)
	if !ok {
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}
	_, now, ok := h.clock(w, r)
	if !ok {
		return
	}

	var (
		bill *billsdomain.Bill
		err  error
	)
	if paid {
		bill, err = h.Bills.MarkPaid(r.Context(), user.ID, billID, now)
	} else {
		bill, err = h.Bills.MarkUnpaid(r.Context(), user.ID, billID, now)
	}
	if err != nil {
		if writeBillError(w, err) {
			h.log.BusinessError(op+": rejected", err, "user_id", user.ID, "bill_id", billID)
			return
		}
		h.log.InternalError(op+": update bill failed", err, "user_id", user.ID, "bill_id", billID)
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toBillResponse(*bill, now))
}

func billIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	billID := strings.TrimSpace(chi.URLParam(r, "id"))
	if !commonhandler.ValidID(billID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "id must be a uuid")
		return "", false
	}
	return billID, true
}

func writeBillError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, billsdomain.ErrBillNotFound):
		writeError(w, http.StatusNotFound, "bill_not_found", "bill not found")
	case errors.Is(err, billsdomain.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
	case errors.Is(err, billsdomain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
	case errors.Is(err, billsdomain.ErrInvalidDueDate):
		writeError(w, http.StatusBadRequest, "invalid_request", "due_date is required")
	case errors.Is(err, billsdomain.ErrInvalidRecurrence):
		writeError(w, http.StatusBadRequest, "invalid_request", "recurring must be none or monthly")
	default:
		return false
	}
	return true
}

func toBillResponses(items []billsdomain.Bill, now time.Time) []billResponse {
	response := make([]billResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toBillResponse(item, now))
	}
	return response
}

func toBillResponse(bill billsdomain.Bill, now time.Time) billResponse {
	status := billsdomain.StatusOf(bill, now)
	return billResponse{
		ID:          bill.ID,
		Name:        bill.Name,
		Amount:      bill.Amount,
		DueDate:     bill.DueDate,
		DueLabel:    billsdomain.FormatDueDate(bill.DueDate, now),
		Recurring:   string(bill.Recurring),
		PaidAt:      bill.PaidAt,
		LastPaidAt:  bill.LastPaidAt,
		Status:      string(status),
		StatusLabel: status.Label(),
		CreatedAt:   bill.CreatedAt,
	}
}
