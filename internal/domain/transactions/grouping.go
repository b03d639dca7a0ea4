package transactions

import (
	"sort"
	"strings"
	"time"

	"budgetbuddy-go/internal/domain/calendar"
)

const (
	LabelToday     = "TODAY"
	LabelYesterday = "YESTERDAY"

	dayLabelLayout = "Mon, Jan 2"
)

// GroupByDay buckets txs by calendar day in now's location, newest day
// first. Items keep their input order inside a bucket.
func GroupByDay(txs []Transaction, now time.Time) []DayGroup {
	loc := now.Location()
	index := make(map[string]int)
	groups := make([]DayGroup, 0)

	for _, tx := range txs {
		key := calendar.DayKey(tx.Date, loc)
		pos, ok := index[key]
		if !ok {
			day := calendar.StartOfDay(tx.Date, loc)
			pos = len(groups)
			index[key] = pos
			groups = append(groups, DayGroup{
				Label:   DayLabel(day, now),
				DateKey: key,
				Date:    day,
				Items:   make([]Transaction, 0, 1),
			})
		}
		groups[pos].Items = append(groups[pos].Items, tx)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})

	return groups
}

// DayLabel describes date relative to now: TODAY, YESTERDAY or e.g. "MON, DEC 15".
func DayLabel(date, now time.Time) string {
	loc := now.Location()
	day := calendar.StartOfDay(date, loc)
	today := calendar.StartOfDay(now, loc)

	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(calendar.AddDays(today, -1)):
		return LabelYesterday
	}
	return strings.ToUpper(day.Format(dayLabelLayout))
}

// ApplyFilters keeps transactions matching every active filter. The result
// is always a new slice.
func ApplyFilters(txs []Transaction, filters Filters) []Transaction {
	result := make([]Transaction, len(txs))
	copy(result, txs)

	if filters.Type != "" && filters.Type != FilterAll {
		result = keep(result, func(tx Transaction) bool {
			return string(tx.Type) == filters.Type
		})
	}
	if filters.CategoryID != "" {
		result = keep(result, func(tx Transaction) bool {
			return tx.CategoryID != nil && *tx.CategoryID == filters.CategoryID
		})
	}
	if filters.PaymentMethod != "" && filters.PaymentMethod != FilterAll {
		result = keep(result, func(tx Transaction) bool {
			return string(tx.PaymentMethod) == filters.PaymentMethod
		})
	}
	if strings.TrimSpace(filters.Search) != "" {
		query := strings.ToLower(filters.Search)
		result = keep(result, func(tx Transaction) bool {
			return matchesSearch(tx, query)
		})
	}

	return result
}

func matchesSearch(tx Transaction, query string) bool {
	if strings.Contains(strings.ToLower(tx.CategoryNameSnapshot), query) {
		return true
	}
	return tx.Note != nil && strings.Contains(strings.ToLower(*tx.Note), query)
}

func keep(txs []Transaction, pred func(Transaction) bool) []Transaction {
	result := txs[:0]
	for _, tx := range txs {
		if pred(tx) {
			result = append(result, tx)
		}
	}
	return result
}
