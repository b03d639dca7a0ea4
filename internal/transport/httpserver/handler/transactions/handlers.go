package transactions

import (
	"time"

	analyticsdomain "budgetbuddy-go/internal/domain/analytics"
	budgetsdomain "budgetbuddy-go/internal/domain/budgets"
	categoriesdomain "budgetbuddy-go/internal/domain/categories"
	txdomain "budgetbuddy-go/internal/domain/transactions"
	"budgetbuddy-go/pkg/logger"
)

type Handlers struct {
	Transactions *txdomain.Service
	Categories   *categoriesdomain.Service
	Analytics    *analyticsdomain.Service
	Budgets      *budgetsdomain.Service
	location     *time.Location
	now          func() time.Time
	log          logger.Logger
}

func New(transactions *txdomain.Service, categories *categoriesdomain.Service, analytics *analyticsdomain.Service, budgets *budgetsdomain.Service, location *time.Location, log logger.Logger) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		Transactions: transactions,
		Categories:   categories,
		Analytics:    analytics,
		Budgets:      budgets,
		location:     location,
		now:          time.Now,
		log:          log,
	}
}
