package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/jobs"
	"github.com/dealerops/rental-engine/internal/logger"
	"github.com/dealerops/rental-engine/internal/notifier"
	"github.com/dealerops/rental-engine/internal/repository"
	"github.com/dealerops/rental-engine/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.Server.Env, cfg.Logging.Level)
	logg.Info().Msg("starting rental scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	txManager := repository.NewTxManager(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	dealerRepo := repository.NewDealerRepository(db)

	alertService := service.NewAlertService(alertRepo, rentalRepo, ledgerRepo, equipmentRepo, cfg, logg)
	paymentService := service.NewPaymentService(txManager, ledgerRepo, rentalRepo, customerRepo, cfg, logg)

	var email notifier.EmailSender
	if cfg.Email.SendgridAPIKey != "" {
		email = notifier.NewSendGridSender(cfg.Email.SendgridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	} else {
		email = notifier.NewNoopSender(logg)
	}

	runner := jobs.NewRunner(dealerRepo, customerRepo, alertService, paymentService, email, logg)

	c := cron.New(cron.WithSeconds())

	mustSchedule(c, cfg.Scheduler.AlertSweepSpec, func() { runner.AlertSweep(context.Background()) })
	mustSchedule(c, cfg.Scheduler.ReminderSpec, func() { runner.PaymentReminders(context.Background()) })
	mustSchedule(c, cfg.Scheduler.ReconciliationSpec, func() { runner.BalanceReconciliation(context.Background()) })

	c.Start()
	logg.Info().
		Str("alert_sweep", cfg.Scheduler.AlertSweepSpec).
		Str("reminders", cfg.Scheduler.ReminderSpec).
		Str("reconciliation", cfg.Scheduler.ReconciliationSpec).
		Msg("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down scheduler")
	<-c.Stop().Done()
	logg.Info().Msg("scheduler stopped")
}

func mustSchedule(c *cron.Cron, spec string, fn func()) {
	if _, err := c.AddFunc(spec, fn); err != nil {
		log.Fatalf("Error scheduling job %q: %v", spec, err)
	}
}
