package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/notifier"
	"github.com/dealerops/rental-engine/internal/repository"
	"github.com/dealerops/rental-engine/internal/service"
)

// Runner hosts the scheduled background jobs. Each job walks the
// active dealers and runs against one dealer at a time, so a failure
// for one tenant does not stop the sweep.
type Runner struct {
	dealerRepo     repository.DealerRepository
	customerRepo   repository.CustomerRepository
	alertService   *service.AlertService
	paymentService *service.PaymentService
	email          notifier.EmailSender
	log            zerolog.Logger
}

func NewRunner(
	dealerRepo repository.DealerRepository,
	customerRepo repository.CustomerRepository,
	alertService *service.AlertService,
	paymentService *service.PaymentService,
	email notifier.EmailSender,
	log zerolog.Logger,
) *Runner {
	return &Runner{
		dealerRepo:     dealerRepo,
		customerRepo:   customerRepo,
		alertService:   alertService,
		paymentService: paymentService,
		email:          email,
		log:            log,
	}
}

// AlertSweep raises overdue-rental, payment-due and maintenance-due
// alerts for every active dealer.
func (r *Runner) AlertSweep(ctx context.Context) {
	now := time.Now()

	dealers, err := r.dealerRepo.ListActive(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("alert sweep: listing dealers failed")
		return
	}

	total := 0
	for _, dealer := range dealers {
		created, err := r.alertService.Sweep(ctx, dealer.ID, now)
		if err != nil {
			r.log.Error().Err(err).Str("dealer", dealer.Email).Msg("alert sweep failed for dealer")
			continue
		}
		total += created
	}

	r.log.Info().Int("dealers", len(dealers)).Int("alerts_raised", total).Msg("alert sweep finished")
}

// PaymentReminders emails every customer carrying an outstanding
// balance. Customers without an email address are skipped.
func (r *Runner) PaymentReminders(ctx context.Context) {
	dealers, err := r.dealerRepo.ListActive(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("payment reminders: listing dealers failed")
		return
	}

	sent := 0
	for _, dealer := range dealers {
		customers, err := r.customerRepo.ListWithOutstanding(ctx, dealer.ID)
		if err != nil {
			r.log.Error().Err(err).Str("dealer", dealer.Email).Msg("payment reminders failed for dealer")
			continue
		}

		for _, customer := range customers {
			if customer.Email == nil {
				continue
			}

			subject := fmt.Sprintf("Payment reminder from %s", dealer.BusinessName)
			plain := fmt.Sprintf("Hello %s,\n\nYour account with %s has an outstanding balance of %s. Please arrange payment at your earliest convenience.",
				customer.Name, dealer.BusinessName, customer.TotalOutstandingDue.StringFixed(2))
			html := fmt.Sprintf("<p>Hello %s,</p><p>Your account with <strong>%s</strong> has an outstanding balance of <strong>%s</strong>. Please arrange payment at your earliest convenience.</p>",
				customer.Name, dealer.BusinessName, customer.TotalOutstandingDue.StringFixed(2))

			if err := r.email.Send(*customer.Email, customer.Name, subject, plain, html); err != nil {
				r.log.Error().Err(err).Str("customer_id", customer.CustomerID).Msg("reminder email failed")
				continue
			}
			sent++
		}
	}

	r.log.Info().Int("reminders_sent", sent).Msg("payment reminders finished")
}

// BalanceReconciliation recomputes every customer's cached outstanding
// total from the ledger and corrects any drift.
func (r *Runner) BalanceReconciliation(ctx context.Context) {
	dealers, err := r.dealerRepo.ListActive(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("reconciliation: listing dealers failed")
		return
	}

	fixed := 0
	for _, dealer := range dealers {
		n, err := r.paymentService.ReconcileOutstanding(ctx, dealer.ID)
		fixed += n
		if err != nil {
			r.log.Error().Err(err).Str("dealer", dealer.Email).Msg("reconciliation failed for dealer")
		}
	}

	r.log.Info().Int("dealers", len(dealers)).Int("corrected", fixed).Msg("balance reconciliation finished")
}
