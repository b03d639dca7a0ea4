package bills

import "errors"

var (
	ErrBillNotFound      = errors.New("bill not found")
	ErrInvalidName       = errors.New("bill name is required")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidDueDate    = errors.New("due date is required")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
)
