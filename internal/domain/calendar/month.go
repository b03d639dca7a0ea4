package calendar

import (
	"fmt"
	"strconv"
	"time"
)

const monthKeyLayout = "2006-01"

// Key formats t's year and month as "YYYY-MM" in t's own location.
func Key(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Parse returns midnight on the first day of the month named by key.
// A nil loc means time.Local.
func Parse(key string, loc *time.Location) (time.Time, error) {
	year, month, err := splitKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, location(loc)), nil
}

// Range returns the first and the last instant of the month.
func Range(key string, loc *time.Location) (time.Time, time.Time, error) {
	year, month, err := splitKey(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := bounds(year, month, location(loc))
	return start, end, nil
}

func bounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// day 0 of the next month is the last day of this one
	end := time.Date(year, month+1, 0, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

func Previous(key string) (string, error) {
	return shift(key, -1)
}

func Next(key string) (string, error) {
	return shift(key, 1)
}

// Display renders the month as "December 2025".
func Display(key string) (string, error) {
	year, month, err := splitKey(key)
	if err != nil {
		return "", err
	}
	return displayName(year, month), nil
}

func displayName(year int, month time.Month) string {
	return fmt.Sprintf("%s %04d", month.String(), year)
}

// Month is a parsed month key with its neighbours and bounds.
type Month struct {
	Key      string
	Display  string
	Start    time.Time
	End      time.Time
	Previous string
	Next     string
}

// Describe parses key once and derives everything the month screens show.
func Describe(key string, loc *time.Location) (Month, error) {
	year, month, err := splitKey(key)
	if err != nil {
		return Month{}, err
	}
	start, end := bounds(year, month, location(loc))
	return Month{
		Key:      key,
		Display:  displayName(year, month),
		Start:    start,
		End:      end,
		Previous: shifted(year, month, -1),
		Next:     shifted(year, month, 1),
	}, nil
}

// Contains reports whether t (in its own location) falls in the month.
func Contains(key string, t time.Time) bool {
	return Key(t) == key
}

// Valid reports whether key is a well-formed month key.
func Valid(key string) bool {
	_, _, err := splitKey(key)
	return err == nil
}

func shift(key string, months int) (string, error) {
	year, month, err := splitKey(key)
	if err != nil {
		return "", err
	}
	return shifted(year, month, months), nil
}

func shifted(year int, month time.Month, months int) string {
	return Key(time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC))
}

func splitKey(key string) (int, time.Month, error) {
	if len(key) != len(monthKeyLayout) || key[4] != '-' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, key)
	}
	for i, ch := range key {
		if i == 4 {
			continue
		}
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, key)
		}
	}

	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, key)
	}
	month, err := strconv.Atoi(key[5:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, key)
	}
	return year, time.Month(month), nil
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
