package transactions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetbuddy-go/internal/domain/calendar"
	"github.com/google/uuid"
)

type Service struct {
	repo       Repository
	categories CategoryNamer
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryNamer) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

// ListMonth loads the month window for monthKey in loc, newest first.
func (s *Service) ListMonth(ctx context.Context, userID, monthKey string, loc *time.Location) ([]Transaction, error) {
	start, end, err := calendar.Range(monthKey, loc)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions %s: %w", monthKey, err)
	}
	if items == nil {
		items = []Transaction{}
	}
	return items, nil
}

func (s *Service) ListByMonth(ctx context.Context, userID, monthKey string, loc *time.Location, filters Filters) ([]Transaction, error) {
	items, err := s.ListMonth(ctx, userID, monthKey, loc)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(items, filters), nil
}

// Sections returns the filtered month grouped by day, labelled relative to now.
func (s *Service) Sections(ctx context.Context, userID, monthKey string, filters Filters, now time.Time) ([]DayGroup, error) {
	items, err := s.ListByMonth(ctx, userID, monthKey, now.Location(), filters)
	if err != nil {
		return nil, err
	}
	return GroupByDay(items, now), nil
}

func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	if err := validate(input.Type, input.PaymentMethod, input.Amount.IsNegative(), input.Date); err != nil {
		return nil, err
	}

	categoryID, err := normalizeCategoryID(input.CategoryID)
	if err != nil {
		return nil, err
	}

	snapshot := ""
	if categoryID != nil {
		snapshot, err = s.categories.CategoryName(ctx, input.UserID, *categoryID)
		if err != nil {
			return nil, err
		}
	}

	tx := Transaction{
		ID:                   uuid.NewString(),
		UserID:               input.UserID,
		Type:                 input.Type,
		Amount:               input.Amount,
		CategoryID:           categoryID,
		CategoryNameSnapshot: snapshot,
		Date:                 input.Date,
		Note:                 normalizeNote(input.Note),
		PaymentMethod:        input.PaymentMethod,
	}

	if err := s.repo.CreateTransaction(ctx, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*Transaction, error) {
	if err := validate(input.Type, input.PaymentMethod, input.Amount.IsNegative(), input.Date); err != nil {
		return nil, err
	}

	categoryID, err := normalizeCategoryID(input.CategoryID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.GetTransactionByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	// The snapshot is only refreshed when the category itself changes, so
	// renames never rewrite history.
	if !sameCategory(tx.CategoryID, categoryID) {
		tx.CategoryNameSnapshot = ""
		if categoryID != nil {
			name, err := s.categories.CategoryName(ctx, input.UserID, *categoryID)
			if err != nil {
				return nil, err
			}
			tx.CategoryNameSnapshot = name
		}
	}

	tx.Type = input.Type
	tx.Amount = input.Amount
	tx.CategoryID = categoryID
	tx.Date = input.Date
	tx.Note = normalizeNote(input.Note)
	tx.PaymentMethod = input.PaymentMethod
	tx.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

func validate(txType Type, method PaymentMethod, negative bool, date time.Time) error {
	if !txType.Valid() {
		return ErrInvalidType
	}
	if !method.Valid() {
		return ErrInvalidPaymentMethod
	}
	if negative {
		return ErrInvalidAmount
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func normalizeCategoryID(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	id := strings.TrimSpace(*value)
	if id == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidCategoryID
	}
	return &id, nil
}

func normalizeNote(value *string) *string {
	if value == nil {
		return nil
	}
	note := strings.TrimSpace(*value)
	if note == "" {
		return nil
	}
	return &note
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
