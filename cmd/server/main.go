package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/dealerops/rental-engine/internal/auth"
	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/handler"
	"github.com/dealerops/rental-engine/internal/logger"
	"github.com/dealerops/rental-engine/internal/repository"
	"github.com/dealerops/rental-engine/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.Server.Env, cfg.Logging.Level)

	db, err := initDB(cfg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Repositories
	txManager := repository.NewTxManager(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	dealerRepo := repository.NewDealerRepository(db)

	// Services
	authService := service.NewAuthService(dealerRepo, tokens, logg)
	customerService := service.NewCustomerService(customerRepo, rentalRepo, ledgerRepo, cfg, logg)
	equipmentService := service.NewEquipmentService(equipmentRepo, rentalRepo, cfg, logg)
	rentalService := service.NewRentalService(txManager, rentalRepo, equipmentRepo, customerRepo, ledgerRepo, cfg, logg)
	paymentService := service.NewPaymentService(txManager, ledgerRepo, rentalRepo, customerRepo, cfg, logg)
	alertService := service.NewAlertService(alertRepo, rentalRepo, ledgerRepo, equipmentRepo, cfg, logg)
	dashboardService := service.NewDashboardService(equipmentRepo, rentalRepo, ledgerRepo, customerRepo, redisClient, cfg, logg)
	searchService := service.NewSearchService(customerRepo, equipmentRepo, rentalRepo, cfg, logg)

	router := handler.NewRouter(handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Equipment: handler.NewEquipmentHandler(equipmentService),
		Rental:    handler.NewRentalHandler(rentalService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Alert:     handler.NewAlertHandler(alertService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Search:    handler.NewSearchHandler(searchService),
		Settings:  handler.NewSettingsHandler(authService),
		Health:    handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout),
	}, tokens, logg)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logg.Info().Msg("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
