package transactions

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ComputeMonthlyTotals sums income and expense amounts. The caller is
// expected to have narrowed txs to a single month already.
func ComputeMonthlyTotals(txs []Transaction) MonthlyTotals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			income = income.Add(tx.Amount)
		case TypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	return MonthlyTotals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}
}

// SpentByCategory groups expenses by category, largest first. Ties keep the
// order in which categories were first seen.
func SpentByCategory(txs []Transaction) []CategoryBreakdownEntry {
	index := make(map[string]int)
	entries := make([]CategoryBreakdownEntry, 0)
	total := decimal.Zero

	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}

		categoryID := OtherCategoryID
		if tx.CategoryID != nil && *tx.CategoryID != "" {
			categoryID = *tx.CategoryID
		}

		pos, ok := index[categoryID]
		if !ok {
			name := tx.CategoryNameSnapshot
			if name == "" {
				name = OtherCategoryName
			}
			pos = len(entries)
			index[categoryID] = pos
			entries = append(entries, CategoryBreakdownEntry{
				CategoryID:   categoryID,
				CategoryName: name,
				Amount:       decimal.Zero,
			})
		}

		entries[pos].Amount = entries[pos].Amount.Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	hundred := decimal.NewFromInt(100)
	for i := range entries {
		if total.IsPositive() {
			entries[i].Percentage = entries[i].Amount.Mul(hundred).Div(total).InexactFloat64()
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})

	return entries
}

func TopCategories(txs []Transaction, n int) []CategoryBreakdownEntry {
	entries := SpentByCategory(txs)
	if n <= 0 {
		return []CategoryBreakdownEntry{}
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
