package bills

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) ListBills(ctx context.Context, userID string) ([]Bill, error) {
	items, err := s.repo.ListBills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	if items == nil {
		items = []Bill{}
	}
	return items, nil
}

func (s *Service) GroupedBills(ctx context.Context, userID string, now time.Time) (StatusGroups, error) {
	items, err := s.ListBills(ctx, userID)
	if err != nil {
		return StatusGroups{}, err
	}
	return GroupByStatus(items, now), nil
}

func (s *Service) CreateBill(ctx context.Context, input CreateBillInput) (*Bill, error) {
	name, recurring, err := validateBill(input.Name, input.Amount.IsNegative(), input.DueDate, input.Recurring)
	if err != nil {
		return nil, err
	}

	bill := Bill{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Name:      name,
		Amount:    input.Amount,
		DueDate:   input.DueDate,
		Recurring: recurring,
	}

	if err := s.repo.CreateBill(ctx, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *Service) UpdateBill(ctx context.Context, input UpdateBillInput) (*Bill, error) {
	name, recurring, err := validateBill(input.Name, input.Amount.IsNegative(), input.DueDate, input.Recurring)
	if err != nil {
		return nil, err
	}

	bill, err := s.repo.GetBillByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	bill.Name = name
	bill.Amount = input.Amount
	bill.DueDate = input.DueDate
	bill.Recurring = recurring
	bill.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) DeleteBill(ctx context.Context, userID, billID string) error {
	deleted, err := s.repo.DeleteBill(ctx, userID, billID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBillNotFound
	}
	return nil
}

// MarkPaid records a payment at now. now carries the user's location, which
// decides the calendar day a monthly bill rolls over to. A zero now means the
// current time in UTC.
func (s *Service) MarkPaid(ctx context.Context, userID, billID string, now time.Time) (*Bill, error) {
	bill, err := s.repo.GetBillByID(ctx, userID, billID)
	if err != nil {
		return nil, err
	}

	updated := MarkPaid(*bill, s.at(now))
	if err := s.repo.UpdateBill(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) MarkUnpaid(ctx context.Context, userID, billID string, now time.Time) (*Bill, error) {
	bill, err := s.repo.GetBillByID(ctx, userID, billID)
	if err != nil {
		return nil, err
	}

	updated := MarkUnpaid(*bill, s.at(now))
	if err := s.repo.UpdateBill(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) at(now time.Time) time.Time {
	if now.IsZero() {
		return s.now().UTC()
	}
	return now
}

func validateBill(name string, negative bool, dueDate time.Time, recurring Recurrence) (string, Recurrence, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", ErrInvalidName
	}
	if negative {
		return "", "", ErrInvalidAmount
	}
	if dueDate.IsZero() {
		return "", "", ErrInvalidDueDate
	}
	if recurring == "" {
		recurring = RecurrenceNone
	}
	if !recurring.Valid() {
		return "", "", ErrInvalidRecurrence
	}
	return name, recurring, nil
}
