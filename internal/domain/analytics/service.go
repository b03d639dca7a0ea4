package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"budgetbuddy-go/internal/domain/budgets"
	"budgetbuddy-go/internal/domain/calendar"
	"budgetbuddy-go/internal/domain/transactions"
	"budgetbuddy-go/internal/repository/inmemory"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	transactions        TransactionSource
	budgets             BudgetSource
	categories          CategoryNames
	topCategoriesConfig TopCategoriesConfig
	topCategoriesCache  *inmemory.TTLStore[TopCategoriesResult]
	now                 func() time.Time

	// generations counts invalidations per user. A load only fills the
	// cache when no invalidation happened while it ran.
	genMu       sync.Mutex
	generations map[string]uint64
}

func NewService(txs TransactionSource, budgetSource BudgetSource, categories CategoryNames) *Service {
	return NewServiceWithTopCategoriesConfig(txs, budgetSource, categories, TopCategoriesConfig{
		Enabled:       true,
		ResponseCount: defaultTopCategoriesResponseCount,
		CacheTTL:      defaultTopCategoriesCacheTTL,
	})
}

func NewServiceWithTopCategoriesConfig(txs TransactionSource, budgetSource BudgetSource, categories CategoryNames, cfg TopCategoriesConfig) *Service {
	cfg = normalizeTopCategoriesConfig(cfg)

	s := &Service{
		transactions:        txs,
		budgets:             budgetSource,
		categories:          categories,
		topCategoriesConfig: cfg,
		now:                 time.Now,
		generations:         make(map[string]uint64),
	}
	s.topCategoriesCache = inmemory.NewTTLStoreWithClock(cloneTopCategoriesResult, func() time.Time { return s.now() })
	return s
}

func (s *Service) MonthlyTotals(ctx context.Context, userID, monthKey string, loc *time.Location) (transactions.MonthlyTotals, error) {
	items, err := s.transactions.ListMonth(ctx, userID, monthKey, loc)
	if err != nil {
		return transactions.MonthlyTotals{}, err
	}
	return transactions.ComputeMonthlyTotals(items), nil
}

func (s *Service) SpentByCategory(ctx context.Context, userID, monthKey string, loc *time.Location) ([]transactions.CategoryBreakdownEntry, error) {
	items, err := s.transactions.ListMonth(ctx, userID, monthKey, loc)
	if err != nil {
		return nil, err
	}
	return transactions.SpentByCategory(items), nil
}

// TopCategories returns the n largest expense categories of the month. n <= 0
// uses the configured response count.
func (s *Service) TopCategories(ctx context.Context, userID, monthKey string, loc *time.Location, n int) (TopCategoriesResult, error) {
	if !s.topCategoriesConfig.Enabled {
		return TopCategoriesResult{
			Status: TopCategoriesStatusDisabled,
			Items:  []transactions.CategoryBreakdownEntry{},
		}, nil
	}
	if n <= 0 {
		n = s.topCategoriesConfig.ResponseCount
	}

	if s.topCategoriesConfig.CacheTTL <= 0 {
		return s.loadTopCategories(ctx, userID, monthKey, loc, n)
	}

	cacheKey := topCategoriesCacheKey(userID, monthKey, loc, n)
	if result, ok := s.topCategoriesCache.Get(cacheKey); ok {
		return result, nil
	}

	generation := s.generation(userID)
	result, err := s.loadTopCategories(ctx, userID, monthKey, loc, n)
	if err != nil {
		return TopCategoriesResult{}, err
	}

	s.genMu.Lock()
	if s.generations[userID] == generation {
		s.topCategoriesCache.Set(cacheKey, result, s.topCategoriesConfig.CacheTTL)
	}
	s.genMu.Unlock()
	return result, nil
}

// Invalidate drops cached results of the user after a transaction write.
// Loads already in flight will not cache what they read.
func (s *Service) Invalidate(userID string) {
	s.genMu.Lock()
	s.generations[userID]++
	s.topCategoriesCache.DeletePrefix(userID + "|")
	s.genMu.Unlock()
}

func (s *Service) generation(userID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[userID]
}

func (s *Service) loadTopCategories(ctx context.Context, userID, monthKey string, loc *time.Location, n int) (TopCategoriesResult, error) {
	items, err := s.transactions.ListMonth(ctx, userID, monthKey, loc)
	if err != nil {
		return TopCategoriesResult{}, err
	}
	return TopCategoriesResult{
		Status: TopCategoriesStatusOK,
		Items:  transactions.TopCategories(items, n),
	}, nil
}

// Overview loads budget, transactions and category names concurrently and
// derives totals and progress for the month.
func (s *Service) Overview(ctx context.Context, userID, monthKey string, loc *time.Location) (Overview, error) {
	if !calendar.Valid(monthKey) {
		return Overview{}, fmt.Errorf("overview month %q: %w", monthKey, calendar.ErrInvalidFormat)
	}

	var (
		budget *budgets.Budget
		items  []transactions.Transaction
		names  map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.budgets.GetBudget(gctx, userID, monthKey)
		if err != nil {
			if errors.Is(err, budgets.ErrBudgetNotFound) {
				return nil
			}
			return fmt.Errorf("get budget: %w", err)
		}
		budget = found
		return nil
	})
	g.Go(func() error {
		found, err := s.transactions.ListMonth(gctx, userID, monthKey, loc)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		items = found
		return nil
	})
	g.Go(func() error {
		found, err := s.categories.Names(gctx, userID)
		if err != nil {
			return fmt.Errorf("category names: %w", err)
		}
		names = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	totals := transactions.ComputeMonthlyTotals(items)
	breakdown := transactions.SpentByCategory(items)
	topCount := s.topCategoriesConfig.ResponseCount

	overview := Overview{
		MonthKey:         monthKey,
		Totals:           totals,
		Budget:           budget,
		Progress:         budgets.ComputeProgress(totals.Expense, decimal.Zero),
		TopCategories:    transactions.TopCategories(items, topCount),
		CategoryProgress: []budgets.CategoryProgressEntry{},
	}
	if budget != nil {
		overview.Progress = budgets.ComputeProgress(totals.Expense, budget.OverallLimit)
		overview.CategoryProgress = budgets.CategoryProgress(*budget, breakdown, names)
	}

	return overview, nil
}

// Compare sets the month's expense against the previous month.
func (s *Service) Compare(ctx context.Context, userID, monthKey string, loc *time.Location) (CompareResult, error) {
	previousKey, err := calendar.Previous(monthKey)
	if err != nil {
		return CompareResult{}, err
	}

	var current, previous []transactions.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.transactions.ListMonth(gctx, userID, monthKey, loc)
		current = found
		return err
	})
	g.Go(func() error {
		found, err := s.transactions.ListMonth(gctx, userID, previousKey, loc)
		previous = found
		return err
	})
	if err := g.Wait(); err != nil {
		return CompareResult{}, err
	}

	currentTotals := transactions.ComputeMonthlyTotals(current)
	previousTotals := transactions.ComputeMonthlyTotals(previous)

	deltaAmount := currentTotals.Expense.Sub(previousTotals.Expense)
	deltaPercent := 0.0
	if !previousTotals.Expense.IsZero() {
		deltaPercent = deltaAmount.Mul(decimal.NewFromInt(100)).Div(previousTotals.Expense).InexactFloat64()
	}

	return CompareResult{
		Current: PeriodSummary{
			MonthKey: monthKey,
			Totals:   currentTotals,
			Count:    len(current),
		},
		Previous: PeriodSummary{
			MonthKey: previousKey,
			Totals:   previousTotals,
			Count:    len(previous),
		},
		Delta: DeltaResult{
			Amount:  deltaAmount,
			Percent: deltaPercent,
		},
	}, nil
}

const (
	defaultTopCategoriesResponseCount = 5
	defaultTopCategoriesCacheTTL      = time.Minute
)

func normalizeTopCategoriesConfig(cfg TopCategoriesConfig) TopCategoriesConfig {
	if cfg.ResponseCount <= 0 {
		cfg.ResponseCount = defaultTopCategoriesResponseCount
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	return cfg
}

func topCategoriesCacheKey(userID, monthKey string, loc *time.Location, n int) string {
	zone := "Local"
	if loc != nil {
		zone = loc.String()
	}
	return fmt.Sprintf("%s|%s|%s|%d", userID, monthKey, zone, n)
}

func cloneTopCategoriesResult(result TopCategoriesResult) TopCategoriesResult {
	return TopCategoriesResult{
		Status: result.Status,
		Items:  cloneBreakdown(result.Items),
	}
}

func cloneBreakdown(rows []transactions.CategoryBreakdownEntry) []transactions.CategoryBreakdownEntry {
	if rows == nil {
		return nil
	}
	cloned := make([]transactions.CategoryBreakdownEntry, len(rows))
	copy(cloned, rows)
	return cloned
}
