package bills

import "context"

type Repository interface {
	// ListBills returns every bill of the user ordered by due date.
	ListBills(ctx context.Context, userID string) ([]Bill, error)
	GetBillByID(ctx context.Context, userID, billID string) (*Bill, error)
	CreateBill(ctx context.Context, bill *Bill) error
	UpdateBill(ctx context.Context, bill *Bill) error
	DeleteBill(ctx context.Context, userID, billID string) (bool, error)
}
