package budgets

import "errors"

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidLimit   = errors.New("limit must not be negative")
)
