package bills

import (
	"sort"
	"time"

	"budgetbuddy-go/internal/domain/calendar"
)

type Status string

const (
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusDueSoon  Status = "dueSoon"
	StatusUpcoming Status = "upcoming"
)

// DueSoonWindowDays is how far ahead of today an unpaid bill counts as due soon.
const DueSoonWindowDays = 7

const dueDateLayout = "Jan 2"

func (s Status) Label() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusOverdue:
		return "Overdue"
	case StatusDueSoon:
		return "Due Soon"
	default:
		return "Upcoming"
	}
}

// StatusOf classifies bill at now. Day comparisons use now's location.
func StatusOf(bill Bill, now time.Time) Status {
	if bill.PaidAt != nil {
		return StatusPaid
	}

	loc := now.Location()
	today := calendar.StartOfDay(now, loc)
	due := calendar.StartOfDay(bill.DueDate, loc)

	if due.Before(today) {
		return StatusOverdue
	}
	if !due.After(calendar.AddDays(today, DueSoonWindowDays)) {
		return StatusDueSoon
	}
	return StatusUpcoming
}

// GroupByStatus partitions bills by StatusOf. The unpaid groups are sorted by
// due date ascending, Paid by payment time descending.
func GroupByStatus(bills []Bill, now time.Time) StatusGroups {
	groups := StatusGroups{
		Overdue:  make([]Bill, 0),
		DueSoon:  make([]Bill, 0),
		Upcoming: make([]Bill, 0),
		Paid:     make([]Bill, 0),
	}

	for _, bill := range bills {
		switch StatusOf(bill, now) {
		case StatusPaid:
			groups.Paid = append(groups.Paid, bill)
		case StatusOverdue:
			groups.Overdue = append(groups.Overdue, bill)
		case StatusDueSoon:
			groups.DueSoon = append(groups.DueSoon, bill)
		default:
			groups.Upcoming = append(groups.Upcoming, bill)
		}
	}

	sortByDueDate(groups.Overdue)
	sortByDueDate(groups.DueSoon)
	sortByDueDate(groups.Upcoming)
	sort.SliceStable(groups.Paid, func(i, j int) bool {
		return groups.Paid[i].PaidAt.After(*groups.Paid[j].PaidAt)
	})

	return groups
}

func sortByDueDate(bills []Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].DueDate.Before(bills[j].DueDate)
	})
}

// FormatDueDate renders "Due Today", "Due Tomorrow" or e.g. "Due Dec 28".
func FormatDueDate(dueDate, now time.Time) string {
	loc := now.Location()
	today := calendar.StartOfDay(now, loc)
	due := calendar.StartOfDay(dueDate, loc)

	switch {
	case due.Equal(today):
		return "Due Today"
	case due.Equal(calendar.AddDays(today, 1)):
		return "Due Tomorrow"
	}
	return "Due " + due.Format(dueDateLayout)
}

// NextMonthlyDueDate moves dueDate one calendar month ahead. Days that do not
// exist in the target month overflow into the following one, so Jan 31
// becomes Mar 3 (Mar 2 in leap years).
func NextMonthlyDueDate(dueDate time.Time) time.Time {
	return dueDate.AddDate(0, 1, 0)
}

// MarkPaid returns bill after a payment at now. Monthly bills roll over to
// the next cycle unpaid and remember the payment in LastPaidAt. The rollover
// happens in now's location so the due day-of-month is the one the user sees.
// Timestamps are stored in UTC.
func MarkPaid(bill Bill, now time.Time) Bill {
	paidAt := now.UTC()
	if bill.Recurring == RecurrenceMonthly {
		bill.DueDate = NextMonthlyDueDate(bill.DueDate.In(now.Location()))
		bill.PaidAt = nil
		bill.LastPaidAt = &paidAt
	} else {
		bill.PaidAt = &paidAt
	}
	bill.UpdatedAt = paidAt
	return bill
}

// MarkUnpaid clears PaidAt. An already advanced due date is left alone.
func MarkUnpaid(bill Bill, now time.Time) Bill {
	bill.PaidAt = nil
	bill.UpdatedAt = now.UTC()
	return bill
}
