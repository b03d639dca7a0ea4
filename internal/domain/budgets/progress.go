package budgets

import (
	"sort"

	"budgetbuddy-go/internal/domain/transactions"
	"github.com/shopspring/decimal"
)

type ProgressStatus string

const (
	ProgressGood     ProgressStatus = "good"
	ProgressWarning  ProgressStatus = "warning"
	ProgressExceeded ProgressStatus = "exceeded"
)

const (
	WarningThreshold  = 80.0
	ExceededThreshold = 100.0
)

type Progress struct {
	Spent             decimal.Decimal
	Limit             decimal.Decimal
	Percentage        float64
	ClampedPercentage float64
	Remaining         decimal.Decimal
	Over              decimal.Decimal
	Status            ProgressStatus
}

type CategoryProgressEntry struct {
	CategoryID   string
	CategoryName string
	Progress
}

// ComputeProgress measures spent against limit. Without a positive limit the
// percentage is 0 and the status stays good.
func ComputeProgress(spent, limit decimal.Decimal) Progress {
	p := Progress{
		Spent:     spent,
		Limit:     limit,
		Remaining: decimal.Max(limit.Sub(spent), decimal.Zero),
		Over:      decimal.Zero,
		Status:    ProgressGood,
	}
	if !limit.IsPositive() {
		return p
	}

	p.Percentage = spent.Mul(decimal.NewFromInt(100)).Div(limit).InexactFloat64()
	p.ClampedPercentage = p.Percentage
	if p.ClampedPercentage > 100 {
		p.ClampedPercentage = 100
	}
	if p.ClampedPercentage < 0 {
		p.ClampedPercentage = 0
	}

	switch {
	case p.Percentage >= ExceededThreshold:
		p.Status = ProgressExceeded
		p.Over = spent.Sub(limit)
	case p.Percentage >= WarningThreshold:
		p.Status = ProgressWarning
	}
	return p
}

// CategoryProgress reports every category limit of budget against the month's
// breakdown. Categories without spending count as zero. names fills in labels
// for categories missing from the breakdown. Entries are ordered by
// percentage, highest first.
func CategoryProgress(budget Budget, breakdown []transactions.CategoryBreakdownEntry, names map[string]string) []CategoryProgressEntry {
	spent := make(map[string]transactions.CategoryBreakdownEntry, len(breakdown))
	for _, entry := range breakdown {
		spent[entry.CategoryID] = entry
	}

	entries := make([]CategoryProgressEntry, 0, len(budget.CategoryLimits))
	for categoryID, limit := range budget.CategoryLimits {
		if !limit.IsPositive() {
			continue
		}

		amount := decimal.Zero
		name := names[categoryID]
		if entry, ok := spent[categoryID]; ok {
			amount = entry.Amount
			if name == "" {
				name = entry.CategoryName
			}
		}

		entries = append(entries, CategoryProgressEntry{
			CategoryID:   categoryID,
			CategoryName: name,
			Progress:     ComputeProgress(amount, limit),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].CategoryID < entries[j].CategoryID
	})

	return entries
}
