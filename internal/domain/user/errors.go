package user

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidDisplayName  = errors.New("invalid display name")
)
