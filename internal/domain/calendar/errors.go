package calendar

import "errors"

var ErrInvalidFormat = errors.New("invalid month key format")
