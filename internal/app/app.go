package app

import (
	"context"
	"net/http"

	"budgetbuddy-go/internal/config"
	"budgetbuddy-go/internal/currency"
	"budgetbuddy-go/internal/db"
	analyticsdomain "budgetbuddy-go/internal/domain/analytics"
	billsdomain "budgetbuddy-go/internal/domain/bills"
	budgetsdomain "budgetbuddy-go/internal/domain/budgets"
	categoriesdomain "budgetbuddy-go/internal/domain/categories"
	txdomain "budgetbuddy-go/internal/domain/transactions"
	userdomain "budgetbuddy-go/internal/domain/user"
	"budgetbuddy-go/internal/repository/inmemory"
	billsrepo "budgetbuddy-go/internal/repository/postgres/bills"
	budgetsrepo "budgetbuddy-go/internal/repository/postgres/budgets"
	categoriesrepo "budgetbuddy-go/internal/repository/postgres/categories"
	txrepo "budgetbuddy-go/internal/repository/postgres/transactions"
	userrepo "budgetbuddy-go/internal/repository/postgres/user"
	"budgetbuddy-go/internal/transport/httpserver"
	"budgetbuddy-go/internal/transport/httpserver/handler"
	billshandler "budgetbuddy-go/internal/transport/httpserver/handler/bills"
	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
	transactionshandler "budgetbuddy-go/internal/transport/httpserver/handler/transactions"
	"budgetbuddy-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	categories *categoriesdomain.Service
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	location := cfg.Location()

	categories := categoriesdomain.NewServiceWithCache(
		categoriesrepo.NewPostgres(dbConn),
		inmemory.NewCategoriesCache(),
		cfg.Categories.CacheTTL,
	)
	transactions := txdomain.NewService(txrepo.NewPostgres(dbConn), categories)
	bills := billsdomain.NewService(billsrepo.NewPostgres(dbConn))
	budgets := budgetsdomain.NewService(budgetsrepo.NewPostgres(dbConn))
	analytics := analyticsdomain.NewServiceWithTopCategoriesConfig(transactions, budgets, categories, analyticsdomain.TopCategoriesConfig{
		Enabled:       cfg.TopCategories.Enabled,
		ResponseCount: cfg.TopCategories.ResponseCount,
		CacheTTL:      cfg.TopCategories.CacheTTL,
	})
	profiles := userdomain.NewService(userrepo.NewPostgres(dbConn), categories)
	rates := currency.NewRatesClient(currency.RatesConfig{
		URL:     cfg.Currency.RatesURL,
		TTL:     cfg.Currency.RatesTTL,
		Timeout: cfg.Currency.HTTPTimeout,
	}, log)

	log.Info("app: initializing router", "timezone", location.String())
	common := commonhandler.New(profiles, rates, location, log)
	common.AddHealthCheck("database", func(ctx context.Context) error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	handlers := handler.New(
		common,
		transactionshandler.New(transactions, categories, analytics, budgets, location, log),
		billshandler.New(bills, location, log),
	)
	router := httpserver.NewRouter(cfg, handlers, profiles, log)

	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
		categories: categories,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// SeedCategories creates any missing default categories for userID.
func (a *App) SeedCategories(ctx context.Context, userID string) (int, error) {
	return a.categories.EnsureDefaults(ctx, userID)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
