package budgets

import (
	"context"
	"errors"
	"fmt"

	"budgetbuddy-go/internal/domain/calendar"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetBudget(ctx context.Context, userID, monthKey string) (*Budget, error) {
	if !calendar.Valid(monthKey) {
		return nil, fmt.Errorf("budget month %q: %w", monthKey, calendar.ErrInvalidFormat)
	}
	return s.repo.GetBudgetByMonth(ctx, userID, monthKey)
}

// DeleteBudget removes the month's budget. Transactions are untouched.
func (s *Service) DeleteBudget(ctx context.Context, userID, monthKey string) error {
	if !calendar.Valid(monthKey) {
		return fmt.Errorf("budget month %q: %w", monthKey, calendar.ErrInvalidFormat)
	}
	deleted, err := s.repo.DeleteBudgetByMonth(ctx, userID, monthKey)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

// UpsertBudget creates the month's budget or merges input into it.
func (s *Service) UpsertBudget(ctx context.Context, input UpsertBudgetInput) (*Budget, error) {
	if !calendar.Valid(input.MonthKey) {
		return nil, fmt.Errorf("budget month %q: %w", input.MonthKey, calendar.ErrInvalidFormat)
	}
	if input.OverallLimit != nil && input.OverallLimit.IsNegative() {
		return nil, ErrInvalidLimit
	}
	for _, limit := range input.CategoryLimits {
		if limit.IsNegative() {
			return nil, ErrInvalidLimit
		}
	}

	budget, err := s.repo.GetBudgetByMonth(ctx, input.UserID, input.MonthKey)
	if err != nil {
		if !errors.Is(err, ErrBudgetNotFound) {
			return nil, err
		}
		budget = &Budget{
			ID:           uuid.NewString(),
			UserID:       input.UserID,
			MonthKey:     input.MonthKey,
			OverallLimit: decimal.Zero,
		}
	}
	if budget.CategoryLimits == nil {
		budget.CategoryLimits = make(map[string]decimal.Decimal)
	}

	if input.OverallLimit != nil {
		budget.OverallLimit = *input.OverallLimit
	}
	for categoryID, limit := range input.CategoryLimits {
		if limit.IsZero() {
			delete(budget.CategoryLimits, categoryID)
			continue
		}
		budget.CategoryLimits[categoryID] = limit
	}

	if err := s.repo.SaveBudget(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}
