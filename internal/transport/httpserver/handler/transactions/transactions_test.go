package transactions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	analyticsdomain "budgetbuddy-go/internal/domain/analytics"
	budgetsdomain "budgetbuddy-go/internal/domain/budgets"
	categoriesdomain "budgetbuddy-go/internal/domain/categories"
	txdomain "budgetbuddy-go/internal/domain/transactions"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"budgetbuddy-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "11111111-1111-4111-8111-111111111111"

var fixedNow = time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)

type memoryTransactions struct {
	items map[string]txdomain.Transaction
}

func (m *memoryTransactions) ListByRange(ctx context.Context, userID string, from, to time.Time) ([]txdomain.Transaction, error) {
	var result []txdomain.Transaction
	for _, item := range m.items {
		if item.UserID != userID || item.Date.Before(from) || item.Date.After(to) {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (m *memoryTransactions) GetTransactionByID(ctx context.Context, userID, transactionID string) (*txdomain.Transaction, error) {
	item, ok := m.items[transactionID]
	if !ok || item.UserID != userID {
		return nil, txdomain.ErrTransactionNotFound
	}
	return &item, nil
}

func (m *memoryTransactions) CreateTransaction(ctx context.Context, tx *txdomain.Transaction) error {
	m.items[tx.ID] = *tx
	return nil
}

func (m *memoryTransactions) UpdateTransaction(ctx context.Context, tx *txdomain.Transaction) error {
	m.items[tx.ID] = *tx
	return nil
}

func (m *memoryTransactions) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	item, ok := m.items[transactionID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(m.items, transactionID)
	return true, nil
}

type memoryCategories struct {
	items map[string]categoriesdomain.Category
}

func (m *memoryCategories) ListCategories(ctx context.Context, userID string) ([]categoriesdomain.Category, error) {
	var result []categoriesdomain.Category
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memoryCategories) GetCategoryByID(ctx context.Context, userID, categoryID string) (*categoriesdomain.Category, error) {
	item, ok := m.items[categoryID]
	if !ok || item.UserID != userID {
		return nil, categoriesdomain.ErrCategoryNotFound
	}
	return &item, nil
}

func (m *memoryCategories) CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.UserID == userID && item.ID != excludeID && strings.EqualFold(item.Name, name) {
			count++
		}
	}
	return count, nil
}

func (m *memoryCategories) CreateCategories(ctx context.Context, categories []categoriesdomain.Category) error {
	for _, category := range categories {
		m.items[category.ID] = category
	}
	return nil
}

func (m *memoryCategories) UpdateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	m.items[category.ID] = *category
	return nil
}

func (m *memoryCategories) DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	item, ok := m.items[categoryID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(m.items, categoryID)
	return true, nil
}

type memoryBudgets struct {
	items map[string]budgetsdomain.Budget
}

func (m *memoryBudgets) GetBudgetByMonth(ctx context.Context, userID, monthKey string) (*budgetsdomain.Budget, error) {
	item, ok := m.items[userID+"|"+monthKey]
	if !ok {
		return nil, budgetsdomain.ErrBudgetNotFound
	}
	return &item, nil
}

func (m *memoryBudgets) SaveBudget(ctx context.Context, budget *budgetsdomain.Budget) error {
	m.items[budget.UserID+"|"+budget.MonthKey] = *budget
	return nil
}

func (m *memoryBudgets) DeleteBudgetByMonth(ctx context.Context, userID, monthKey string) (bool, error) {
	key := userID + "|" + monthKey
	if _, ok := m.items[key]; !ok {
		return false, nil
	}
	delete(m.items, key)
	return true, nil
}

type fixture struct {
	router       http.Handler
	transactions *memoryTransactions
	categories   *memoryCategories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	txRepo := &memoryTransactions{items: make(map[string]txdomain.Transaction)}
	categoryRepo := &memoryCategories{items: make(map[string]categoriesdomain.Category)}
	budgetRepo := &memoryBudgets{items: make(map[string]budgetsdomain.Budget)}

	categoryService := categoriesdomain.NewService(categoryRepo)
	txService := txdomain.NewService(txRepo, categoryService)
	budgetService := budgetsdomain.NewService(budgetRepo)
	analyticsService := analyticsdomain.NewServiceWithTopCategoriesConfig(txService, budgetService, categoryService, analyticsdomain.TopCategoriesConfig{
		Enabled:       true,
		ResponseCount: 3,
	})

	h := New(txService, categoryService, analyticsService, budgetService, time.UTC, logger.NewNop())
	h.now = func() time.Time { return fixedNow }

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithUser(req.Context(), middleware.User{ID: testUserID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/transactions", h.ListTransactions)
	r.Get("/transactions/sections", h.ListSections)
	r.Post("/transactions", h.CreateTransaction)
	r.Put("/transactions/{id}", h.UpdateTransaction)
	r.Delete("/transactions/{id}", h.DeleteTransaction)
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Patch("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)
	r.Get("/analytics/totals", h.AnalyticsTotals)
	r.Get("/analytics/by-category", h.AnalyticsByCategory)
	r.Get("/analytics/top-categories", h.TopCategories)
	r.Get("/analytics/overview", h.Overview)
	r.Get("/analytics/compare", h.Compare)
	r.Get("/budgets/{month}", h.GetBudget)
	r.Put("/budgets/{month}", h.UpsertBudget)
	r.Delete("/budgets/{month}", h.DeleteBudget)

	return &fixture{router: r, transactions: txRepo, categories: categoryRepo}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) createCategory(t *testing.T, name string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/categories", `{"name":"`+name+`","icon":"cart"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created categoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func (f *fixture) createTransaction(t *testing.T, body string) transactionResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/transactions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestCreateTransactionSnapshotsCategoryName(t *testing.T) {
	f := newFixture(t)
	foodID := f.createCategory(t, "Food")

	created := f.createTransaction(t, `{"type":"expense","amount":"12.50","category_id":"`+foodID+`","date":"2025-12-19","note":"  lunch ","payment_method":"card"}`)
	assert.Equal(t, "Food", created.CategoryName)
	require.NotNil(t, created.Note)
	assert.Equal(t, "lunch", *created.Note)

	rec := f.do(t, http.MethodPatch, "/categories/"+foodID, `{"name":"Groceries"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored := f.transactions.items[created.ID]
	assert.Equal(t, "Food", stored.CategoryNameSnapshot)
}

func TestCreateTransactionWithoutCategoryShowsOther(t *testing.T) {
	f := newFixture(t)

	created := f.createTransaction(t, `{"type":"expense","amount":"3","date":"2025-12-19","payment_method":"cash"}`)
	assert.Nil(t, created.CategoryID)
	assert.Equal(t, "Other", created.CategoryName)
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		body string
		want int
		code string
	}{
		{name: "bad type", body: `{"type":"gift","amount":"1","date":"2025-12-19","payment_method":"cash"}`, want: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad payment method", body: `{"type":"expense","amount":"1","date":"2025-12-19","payment_method":"crypto"}`, want: http.StatusBadRequest, code: "invalid_request"},
		{name: "negative amount", body: `{"type":"expense","amount":"-1","date":"2025-12-19","payment_method":"cash"}`, want: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad date", body: `{"type":"expense","amount":"1","date":"yesterday","payment_method":"cash"}`, want: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad category id", body: `{"type":"expense","amount":"1","date":"2025-12-19","payment_method":"cash","category_id":"food"}`, want: http.StatusBadRequest, code: "invalid_request"},
		{name: "unknown category", body: `{"type":"expense","amount":"1","date":"2025-12-19","payment_method":"cash","category_id":"99999999-9999-4999-8999-999999999999"}`, want: http.StatusNotFound, code: "category_not_found"},
		{name: "bad json", body: `{"type":`, want: http.StatusBadRequest, code: "invalid_json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/transactions", tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tc.code)
		})
	}
	assert.Empty(t, f.transactions.items)
}

func TestListTransactionsFiltersByMonthAndQuery(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, `{"type":"income","amount":"3000","date":"2025-12-01","note":"Salary","payment_method":"card"}`)
	f.createTransaction(t, `{"type":"expense","amount":"40","date":"2025-12-18","note":"Coffee beans","payment_method":"cash"}`)
	f.createTransaction(t, `{"type":"expense","amount":"15","date":"2025-11-30","payment_method":"cash"}`)

	rec := f.do(t, http.MethodGet, "/transactions?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all transactionListResponse
	decodeBody(t, rec, &all)
	assert.Equal(t, "2025-12", all.Month)
	assert.Equal(t, 2, all.Count)

	rec = f.do(t, http.MethodGet, "/transactions?month=2025-12&type=expense&payment_method=cash&search=coffee", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered transactionListResponse
	decodeBody(t, rec, &filtered)
	require.Equal(t, 1, filtered.Count)
	assert.Equal(t, "expense", filtered.Items[0].Type)

	rec = f.do(t, http.MethodGet, "/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var current transactionListResponse
	decodeBody(t, rec, &current)
	assert.Equal(t, "2025-12", current.Month)
}

func TestListTransactionsRejectsBadParams(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{
		"/transactions?month=2025-13",
		"/transactions?month=202512",
		"/transactions?type=transfer",
		"/transactions?payment_method=cheque",
		"/transactions?timezone=Nowhere/Land",
	} {
		rec := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListSectionsLabelsDays(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, `{"type":"expense","amount":"5","date":"2025-12-20","payment_method":"cash"}`)
	f.createTransaction(t, `{"type":"expense","amount":"6","date":"2025-12-19","payment_method":"cash"}`)
	f.createTransaction(t, `{"type":"expense","amount":"7","date":"2025-12-15","payment_method":"cash"}`)

	rec := f.do(t, http.MethodGet, "/transactions/sections?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got sectionsResponse
	decodeBody(t, rec, &got)
	require.Len(t, got.Sections, 3)
	assert.Equal(t, "TODAY", got.Sections[0].Label)
	assert.Equal(t, "YESTERDAY", got.Sections[1].Label)
	assert.Equal(t, "MON, DEC 15", got.Sections[2].Label)
	assert.Equal(t, "2025-12-15", got.Sections[2].DateKey)
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	created := f.createTransaction(t, `{"type":"expense","amount":"5","date":"2025-12-20","payment_method":"cash"}`)

	rec := f.do(t, http.MethodPut, "/transactions/"+created.ID, `{"type":"income","amount":"7.25","date":"2025-12-20","payment_method":"card"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated transactionResponse
	decodeBody(t, rec, &updated)
	assert.Equal(t, "income", updated.Type)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("7.25")))

	rec = f.do(t, http.MethodDelete, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/transactions/nope", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryRules(t *testing.T) {
	f := newFixture(t)
	f.createCategory(t, "Food")

	rec := f.do(t, http.MethodPost, "/categories", `{"name":"food"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "category_name_taken")

	rec = f.do(t, http.MethodPost, "/categories", `{"name":"Pets","color":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/categories", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	defaultID := "d0000000-0000-4000-8000-000000000001"
	f.categories.items[defaultID] = categoriesdomain.Category{ID: defaultID, UserID: testUserID, Name: "Bills", Icon: "receipt", IsDefault: true}
	rec = f.do(t, http.MethodDelete, "/categories/"+defaultID, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "category_is_default")

	rec = f.do(t, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []categoryResponse
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 2)
	assert.Equal(t, "Bills", listed[0].Name)
}

func TestUpdateCategoryColorCanBeCleared(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/categories", `{"name":"Fun","color":"#AABBCC"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created categoryResponse
	decodeBody(t, rec, &created)
	require.NotNil(t, created.Color)
	assert.Equal(t, "#aabbcc", *created.Color)

	rec = f.do(t, http.MethodPatch, "/categories/"+created.ID, `{"color":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated categoryResponse
	decodeBody(t, rec, &updated)
	assert.Nil(t, updated.Color)
	assert.Equal(t, "Fun", updated.Name)

	rec = f.do(t, http.MethodPatch, "/categories/"+created.ID, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, "/categories/"+created.ID, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsTotalsAndBreakdown(t *testing.T) {
	f := newFixture(t)
	foodID := f.createCategory(t, "Food")
	f.createTransaction(t, `{"type":"income","amount":"3000","date":"2025-12-01","payment_method":"card"}`)
	f.createTransaction(t, `{"type":"expense","amount":"120.50","category_id":"`+foodID+`","date":"2025-12-05","payment_method":"card"}`)
	f.createTransaction(t, `{"type":"expense","amount":"40","date":"2025-12-06","payment_method":"cash"}`)

	rec := f.do(t, http.MethodGet, "/analytics/totals?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var totals totalsResponse
	decodeBody(t, rec, &totals)
	assert.True(t, totals.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, totals.Expense.Equal(decimal.RequireFromString("160.5")))
	assert.True(t, totals.Net.Equal(decimal.RequireFromString("2839.5")))

	rec = f.do(t, http.MethodGet, "/analytics/by-category?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var breakdown breakdownResponse
	decodeBody(t, rec, &breakdown)
	require.Len(t, breakdown.Items, 2)
	assert.Equal(t, "Food", breakdown.Items[0].CategoryName)
	assert.Equal(t, "other", breakdown.Items[1].CategoryID)
	assert.Equal(t, "Other", breakdown.Items[1].CategoryName)
}

func TestTopCategoriesLimit(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C", "D"} {
		id := f.createCategory(t, name)
		f.createTransaction(t, `{"type":"expense","amount":"10","category_id":"`+id+`","date":"2025-12-05","payment_method":"card"}`)
	}

	rec := f.do(t, http.MethodGet, "/analytics/top-categories?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var defaults topCategoriesResponse
	decodeBody(t, rec, &defaults)
	assert.Equal(t, "OK", defaults.Status)
	assert.Len(t, defaults.Items, 3)

	rec = f.do(t, http.MethodGet, "/analytics/top-categories?month=2025-12&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var limited topCategoriesResponse
	decodeBody(t, rec, &limited)
	assert.Len(t, limited.Items, 2)

	rec = f.do(t, http.MethodGet, "/analytics/top-categories?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTopCategoriesSeesNewTransactions(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/analytics/top-categories?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var before topCategoriesResponse
	decodeBody(t, rec, &before)
	assert.Empty(t, before.Items)

	f.createTransaction(t, `{"type":"expense","amount":"10","date":"2025-12-05","payment_method":"card"}`)

	rec = f.do(t, http.MethodGet, "/analytics/top-categories?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var after topCategoriesResponse
	decodeBody(t, rec, &after)
	assert.Len(t, after.Items, 1)
}

func TestBudgetUpsertAndOverview(t *testing.T) {
	f := newFixture(t)
	foodID := f.createCategory(t, "Food")
	f.createTransaction(t, `{"type":"expense","amount":"120","category_id":"`+foodID+`","date":"2025-12-05","payment_method":"card"}`)
	f.createTransaction(t, `{"type":"expense","amount":"50","date":"2025-12-06","payment_method":"cash"}`)

	rec := f.do(t, http.MethodGet, "/budgets/2025-12", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/analytics/overview?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty overviewResponse
	decodeBody(t, rec, &empty)
	assert.Nil(t, empty.Budget)
	assert.Equal(t, "good", empty.Progress.Status)
	assert.Empty(t, empty.CategoryProgress)

	rec = f.do(t, http.MethodPut, "/budgets/2025-12", `{"overall_limit":"200","category_limits":{"`+foodID+`":"100"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var budget budgetResponse
	decodeBody(t, rec, &budget)
	assert.Equal(t, "2025-12", budget.Month)
	assert.True(t, budget.OverallLimit.Equal(decimal.NewFromInt(200)))

	rec = f.do(t, http.MethodGet, "/analytics/overview?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview overviewResponse
	decodeBody(t, rec, &overview)
	require.NotNil(t, overview.Budget)
	assert.Equal(t, "December 2025", overview.Display)
	assert.Equal(t, "warning", overview.Progress.Status)
	assert.InDelta(t, 85.0, overview.Progress.Percentage, 0.001)
	require.Len(t, overview.CategoryProgress, 1)
	assert.Equal(t, "Food", overview.CategoryProgress[0].CategoryName)
	assert.Equal(t, "exceeded", overview.CategoryProgress[0].Status)
	assert.True(t, overview.CategoryProgress[0].Over.Equal(decimal.NewFromInt(20)))

	rec = f.do(t, http.MethodPut, "/budgets/2025-12", `{"category_limits":{"`+foodID+`":"0"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared budgetResponse
	decodeBody(t, rec, &cleared)
	assert.Empty(t, cleared.CategoryLimits)
	assert.True(t, cleared.OverallLimit.Equal(decimal.NewFromInt(200)))
}

func TestUpsertBudgetValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/budgets/2025-13", `{"overall_limit":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_month")

	rec = f.do(t, http.MethodPut, "/budgets/2025-12", `{"overall_limit":"-5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/budgets/2025-12", `{"category_limits":{"food":"5"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/budgets/2025-12", `{"category_limits":{"other":"5"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteBudget(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodDelete, "/budgets/2025-12", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/budgets/2025-12", `{"overall_limit":"200"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/budgets/2025-12", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/budgets/2025-12", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/analytics/overview?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview overviewResponse
	decodeBody(t, rec, &overview)
	assert.Nil(t, overview.Budget)

	rec = f.do(t, http.MethodDelete, "/budgets/2025-13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_month")
}

func TestCompareAgainstPreviousMonth(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, `{"type":"expense","amount":"100","date":"2025-11-10","payment_method":"cash"}`)
	f.createTransaction(t, `{"type":"expense","amount":"150","date":"2025-12-10","payment_method":"cash"}`)

	rec := f.do(t, http.MethodGet, "/analytics/compare?month=2025-12", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got compareResponse
	decodeBody(t, rec, &got)
	assert.Equal(t, "2025-11", got.Previous.Month)
	assert.Equal(t, 1, got.Current.Count)
	assert.True(t, got.Delta.Amount.Equal(decimal.NewFromInt(50)))
	assert.InDelta(t, 50.0, got.Delta.Percent, 0.001)
}
