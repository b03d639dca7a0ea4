package httpserver

import (
	"net/http"

	"budgetbuddy-go/internal/config"
	"budgetbuddy-go/internal/transport/httpserver/handler"
	authmw "budgetbuddy-go/internal/transport/httpserver/middleware"
	"budgetbuddy-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(authmw.NewCORSPolicy(cfg.CORSAllowedOrigins).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)
			r.Get("/profile", handlers.Common.GetProfile)
			r.Patch("/profile", handlers.Common.UpdateProfile)
			r.Get("/currencies", handlers.Common.ListCurrencies)
			r.Get("/currencies/rates", handlers.Common.GetRates)
			r.Get("/months/{month}", handlers.Common.GetMonth)

			r.Get("/transactions", handlers.Transactions.ListTransactions)
			r.Get("/transactions/sections", handlers.Transactions.ListSections)
			r.Post("/transactions", handlers.Transactions.CreateTransaction)
			r.Put("/transactions/{id}", handlers.Transactions.UpdateTransaction)
			r.Delete("/transactions/{id}", handlers.Transactions.DeleteTransaction)

			r.Get("/categories", handlers.Transactions.ListCategories)
			r.Post("/categories", handlers.Transactions.CreateCategory)
			r.Patch("/categories/{id}", handlers.Transactions.UpdateCategory)
			r.Delete("/categories/{id}", handlers.Transactions.DeleteCategory)

			r.Get("/budgets/{month}", handlers.Transactions.GetBudget)
			r.Put("/budgets/{month}", handlers.Transactions.UpsertBudget)
			r.Delete("/budgets/{month}", handlers.Transactions.DeleteBudget)

			r.Get("/analytics/totals", handlers.Transactions.AnalyticsTotals)
			r.Get("/analytics/by-category", handlers.Transactions.AnalyticsByCategory)
			r.Get("/analytics/top-categories", handlers.Transactions.TopCategories)
			r.Get("/analytics/overview", handlers.Transactions.Overview)
			r.Get("/analytics/compare", handlers.Transactions.Compare)

			r.Get("/bills", handlers.Bills.ListBills)
			r.Get("/bills/grouped", handlers.Bills.GroupedBills)
			r.Post("/bills", handlers.Bills.CreateBill)
			r.Put("/bills/{id}", handlers.Bills.UpdateBill)
			r.Delete("/bills/{id}", handlers.Bills.DeleteBill)
			r.Post("/bills/{id}/pay", handlers.Bills.MarkPaid)
			r.Post("/bills/{id}/unpay", handlers.Bills.MarkUnpaid)
		})
	})

	return r
}
