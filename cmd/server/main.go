package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/bcb"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/cache"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/scheduler"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
	log.Println("Server exited")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Printf("Investment database ready at %s", cfg.Database.Path)

	tokens, err := auth.NewTokenManager(cfg.Auth.TokenKey, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	indices := service.NewIndicesService(
		bcb.NewSGSClient(cfg.Indices.BaseURL),
		cache.NewTTL[[]bcb.Observation](cfg.Indices.CacheTTL),
	)
	investments := service.NewInvestmentService(
		repository.NewInvestmentRepository(db),
		indices,
		valuation.NewFormatter(cfg.Display.Currency),
	)
	services := api.Services{
		System:     service.NewSystemService(db),
		Auth:       service.NewAuthService(repository.NewUserRepository(db), tokens, cfg.Auth.BcryptCost),
		Investment: investments,
		Chart:      service.NewChartService(investments),
		Indices:    indices,
	}

	jobs := scheduler.New(5 * time.Minute)
	if cfg.Indices.RefreshSchedule != "" {
		if err := jobs.Add("indices-refresh", cfg.Indices.RefreshSchedule, indices.Refresh); err != nil {
			return fmt.Errorf("schedule index refresh: %w", err)
		}
	}
	jobs.Start()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(services, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // chart rendering
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Investment tracker %s listening on %s", version.Version, cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		jobs.Stop(context.Background())
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	jobs.Stop(ctx)
	return nil
}
