package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
)

const (
	suggestionsPerEntity = 5
	suggestionsTotal     = 15
)

// SearchService answers global search across customers, equipment and
// rentals, scoped to one dealer.
type SearchService struct {
	customerRepo  repository.CustomerRepository
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
	config        *config.Config
	log           zerolog.Logger
}

func NewSearchService(
	customerRepo repository.CustomerRepository,
	equipmentRepo repository.EquipmentRepository,
	rentalRepo repository.RentalRepository,
	cfg *config.Config,
	log zerolog.Logger,
) *SearchService {
	return &SearchService{
		customerRepo:  customerRepo,
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
		config:        cfg,
		log:           log,
	}
}

// Search runs the query against every entity, or just the one named
// by entity. Each entity contributes at most limit rows.
func (s *SearchService) Search(ctx context.Context, dealerID uuid.UUID, query, entity string, limit int) (*domain.SearchResults, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, customError.WrapValidation("Search query must be at least 2 characters long")
	}

	if limit < 1 {
		limit = s.config.Business.DefaultPageLimit
	}
	if limit > s.config.Business.MaxPageLimit {
		limit = s.config.Business.MaxPageLimit
	}

	results := &domain.SearchResults{
		Query:     query,
		Customers: []*domain.Customer{},
		Equipment: []*domain.Equipment{},
		Rentals:   []*domain.Rental{},
	}

	if entity == "" || entity == domain.SearchEntityCustomers {
		customers, _, err := s.customerRepo.List(ctx, dealerID, domain.CustomerFilter{Search: query, Page: 1, Limit: limit})
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		results.Customers = customers
	}

	if entity == "" || entity == domain.SearchEntityEquipment {
		equipment, _, err := s.equipmentRepo.List(ctx, dealerID, domain.EquipmentFilter{Search: query, Page: 1, Limit: limit})
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		results.Equipment = equipment
	}

	if entity == "" || entity == domain.SearchEntityRentals {
		rentals, _, err := s.rentalRepo.List(ctx, dealerID, domain.RentalFilter{Search: query, Page: 1, Limit: limit})
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		results.Rentals = rentals
	}

	results.TotalResults = len(results.Customers) + len(results.Equipment) + len(results.Rentals)

	return results, nil
}

// Suggest returns typeahead entries for the query. An empty query
// yields an empty list rather than an error.
func (s *SearchService) Suggest(ctx context.Context, dealerID uuid.UUID, query string) ([]domain.SearchSuggestion, error) {
	query = strings.TrimSpace(query)
	suggestions := []domain.SearchSuggestion{}
	if query == "" {
		return suggestions, nil
	}

	customers, _, err := s.customerRepo.List(ctx, dealerID, domain.CustomerFilter{Search: query, Page: 1, Limit: suggestionsPerEntity})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	for _, customer := range customers {
		suggestions = append(suggestions, domain.SearchSuggestion{
			Type:     "customer",
			ID:       customer.ID,
			Text:     customer.Name + " (" + customer.CustomerID + ")",
			Category: "Customers",
		})
	}

	equipment, _, err := s.equipmentRepo.List(ctx, dealerID, domain.EquipmentFilter{Search: query, Page: 1, Limit: suggestionsPerEntity})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	for _, eq := range equipment {
		suggestions = append(suggestions, domain.SearchSuggestion{
			Type:     "equipment",
			ID:       eq.ID,
			Text:     eq.EquipmentID + " - " + eq.Name + " " + eq.Model,
			Category: "Equipment",
		})
	}

	rentals, _, err := s.rentalRepo.List(ctx, dealerID, domain.RentalFilter{Search: query, Page: 1, Limit: suggestionsPerEntity})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	for _, rental := range rentals {
		text := rental.RentalID
		if rental.CustomerName != nil {
			text += " - " + *rental.CustomerName
		}
		suggestions = append(suggestions, domain.SearchSuggestion{
			Type:     "rental",
			ID:       rental.ID,
			Text:     text,
			Category: "Rentals",
		})
	}

	if len(suggestions) > suggestionsTotal {
		suggestions = suggestions[:suggestionsTotal]
	}

	return suggestions, nil
}
