package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/joeymizrahi/personal-finance-app/internal/api/handlers"
	"github.com/joeymizrahi/personal-finance-app/internal/api/middleware"
	"github.com/joeymizrahi/personal-finance-app/internal/config"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(svc handlers.LedgerService, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	}))

	ledgerHandler := handlers.NewLedgerHandler(svc, log)

	r.Get("/", ledgerHandler.Index)
	r.Post("/log_transaction", ledgerHandler.LogTransaction)
	r.Post("/log_investment", ledgerHandler.LogInvestment)
	r.Get("/api/categories/{transactionType}", ledgerHandler.Categories)
	r.Get("/health", handlers.Health)

	return r
}
