package transactions

import "errors"

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrInvalidDate          = errors.New("date is required")
	ErrInvalidCategoryID    = errors.New("invalid category id")
)
