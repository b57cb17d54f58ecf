package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeymizrahi/personal-finance-app/internal/api"
	"github.com/joeymizrahi/personal-finance-app/internal/config"
	"github.com/joeymizrahi/personal-finance-app/internal/ledger"
	"github.com/joeymizrahi/personal-finance-app/internal/logger"
	"github.com/joeymizrahi/personal-finance-app/internal/notion"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if !cfg.Notion.SSLVerify {
		log.Warn().Msg("TLS certificate verification is disabled")
	}

	notionClient := notion.New(cfg.Notion.APIKey, cfg.Notion.SSLVerify)
	ledgerService := ledger.NewService(notionClient, cfg, log)
	router := api.NewRouter(ledgerService, cfg, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
