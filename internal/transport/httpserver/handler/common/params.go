package common

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"budgetbuddy-go/internal/domain/calendar"
	"github.com/google/uuid"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// ParseLocation resolves an IANA zone name. Blank means fallback.
func ParseLocation(value string, fallback *time.Location) (*time.Location, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// TimezoneHeader lets clients send their zone once instead of on every query.
const TimezoneHeader = "X-Timezone"

// RequestLocation reads ?timezone=, then the X-Timezone header, then fallback.
func RequestLocation(r *http.Request, fallback *time.Location) (*time.Location, error) {
	value := r.URL.Query().Get("timezone")
	if strings.TrimSpace(value) == "" {
		value = r.Header.Get(TimezoneHeader)
	}
	return ParseLocation(value, fallback)
}

// ParseMonth validates a "YYYY-MM" key. Blank means the month of now.
func ParseMonth(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return calendar.Key(now), nil
	}
	if !calendar.Valid(value) {
		return "", calendar.ErrInvalidFormat
	}
	return value, nil
}

func ValidID(value string) bool {
	_, err := uuid.Parse(strings.TrimSpace(value))
	return err == nil
}

// ParseDate accepts RFC 3339 timestamps and plain dates. Plain dates are
// placed at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}
