package analytics

import (
	"time"

	"budgetbuddy-go/internal/domain/budgets"
	"budgetbuddy-go/internal/domain/transactions"
	"github.com/shopspring/decimal"
)

type TopCategoriesConfig struct {
	Enabled       bool
	ResponseCount int
	CacheTTL      time.Duration
}

type TopCategoriesStatus string

const (
	TopCategoriesStatusOK       TopCategoriesStatus = "OK"
	TopCategoriesStatusDisabled TopCategoriesStatus = "TOP_CATEGORIES_DISABLED"
)

type TopCategoriesResult struct {
	Status TopCategoriesStatus
	Items  []transactions.CategoryBreakdownEntry
}

// Overview is everything the monthly budget view shows at once.
type Overview struct {
	MonthKey         string
	Totals           transactions.MonthlyTotals
	Budget           *budgets.Budget
	Progress         budgets.Progress
	TopCategories    []transactions.CategoryBreakdownEntry
	CategoryProgress []budgets.CategoryProgressEntry
}

type PeriodSummary struct {
	MonthKey string
	Totals   transactions.MonthlyTotals
	Count    int
}

type DeltaResult struct {
	Amount  decimal.Decimal
	Percent float64
}

// CompareResult compares the expense of a month with the month before.
type CompareResult struct {
	Current  PeriodSummary
	Previous PeriodSummary
	Delta    DeltaResult
}
