package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
)

// DashboardService aggregates fleet, rental and payment stats for one
// dealer, cached in redis with a short TTL. Cache failures degrade to
// a direct database read.
type DashboardService struct {
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
	ledgerRepo    repository.LedgerRepository
	customerRepo  repository.CustomerRepository
	redis         *redis.Client
	config        *config.Config
	log           zerolog.Logger
}

func NewDashboardService(
	equipmentRepo repository.EquipmentRepository,
	rentalRepo repository.RentalRepository,
	ledgerRepo repository.LedgerRepository,
	customerRepo repository.CustomerRepository,
	redisClient *redis.Client,
	config *config.Config,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
		ledgerRepo:    ledgerRepo,
		customerRepo:  customerRepo,
		redis:         redisClient,
		config:        config,
		log:           log,
	}
}

func dashboardCacheKey(dealerID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s", dealerID)
}

// GetStats returns the dashboard aggregate, from cache when fresh.
func (s *DashboardService) GetStats(ctx context.Context, dealerID uuid.UUID) (*domain.DashboardStats, error) {
	key := dashboardCacheKey(dealerID)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key).Result()
		if err == nil {
			var stats domain.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.log.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	stats, err := s.computeStats(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, key, payload, s.config.Business.DashboardCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}

	return stats, nil
}

// Invalidate drops the cached aggregate for the dealer.
func (s *DashboardService) Invalidate(ctx context.Context, dealerID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, dashboardCacheKey(dealerID)).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (s *DashboardService) computeStats(ctx context.Context, dealerID uuid.UUID) (*domain.DashboardStats, error) {
	byAvailability, err := s.equipmentRepo.CountByAvailability(ctx, dealerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	byStatus, err := s.rentalRepo.CountByStatus(ctx, dealerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	paid, outstanding, count, err := s.ledgerRepo.Totals(ctx, dealerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	customers, err := s.customerRepo.CountActive(ctx, dealerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	equipment := domain.EquipmentStats{
		Available:        byAvailability[domain.AvailabilityAvailable],
		Reserved:         byAvailability[domain.AvailabilityReserved],
		Rented:           byAvailability[domain.AvailabilityRented],
		UnderMaintenance: byAvailability[domain.AvailabilityUnderMaintenance],
	}
	equipment.Total = equipment.Available + equipment.Reserved + equipment.Rented + equipment.UnderMaintenance

	return &domain.DashboardStats{
		Equipment: equipment,
		Rentals: domain.RentalStats{
			Active:    byStatus[domain.RentalStatusActive],
			Completed: byStatus[domain.RentalStatusCompleted],
			Overdue:   byStatus[domain.RentalStatusOverdue],
			Cancelled: byStatus[domain.RentalStatusCancelled],
		},
		Payments: domain.PaymentStats{
			TotalPaid:        paid,
			TotalOutstanding: outstanding,
			TotalPayments:    count,
		},
		Customers:   customers,
		LastUpdated: time.Now(),
	}, nil
}
