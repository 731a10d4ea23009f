package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dealerops/rental-engine/internal/domain"
	searchService "github.com/dealerops/rental-engine/internal/service"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/tests/mocks"
)

type searchMocks struct {
	customers *mocks.MockCustomerRepository
	equipment *mocks.MockEquipmentRepository
	rentals   *mocks.MockRentalRepository
}

func newSearchService() (*searchService.SearchService, *searchMocks) {
	m := &searchMocks{
		customers: new(mocks.MockCustomerRepository),
		equipment: new(mocks.MockEquipmentRepository),
		rentals:   new(mocks.MockRentalRepository),
	}
	svc := searchService.NewSearchService(m.customers, m.equipment, m.rentals, testConfig(), zerolog.Nop())
	return svc, m
}

func TestGlobalSearch(t *testing.T) {
	dealerID := uuid.New()

	t.Run("Success - searches every entity with the default limit", func(t *testing.T) {
		svc, m := newSearchService()

		m.customers.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.CustomerFilter) bool {
			return f.Search == "acme" && f.Page == 1 && f.Limit == 10
		})).Return([]*domain.Customer{{ID: uuid.New(), Name: "Acme Construction"}}, 1, nil)
		m.equipment.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.EquipmentFilter) bool {
			return f.Search == "acme" && f.Page == 1 && f.Limit == 10
		})).Return([]*domain.Equipment{}, 0, nil)
		m.rentals.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.RentalFilter) bool {
			return f.Search == "acme" && f.Page == 1 && f.Limit == 10
		})).Return([]*domain.Rental{{ID: uuid.New(), RentalID: "RNT-ACME-1"}}, 1, nil)

		results, err := svc.Search(context.Background(), dealerID, "acme", "", 0)

		assert.NoError(t, err)
		assert.Equal(t, "acme", results.Query)
		assert.Equal(t, 2, results.TotalResults)
		assert.Len(t, results.Customers, 1)
		assert.Empty(t, results.Equipment)
		assert.Len(t, results.Rentals, 1)
	})

	t.Run("Success - entity filter narrows to one repository", func(t *testing.T) {
		svc, m := newSearchService()

		m.customers.On("List", mock.Anything, dealerID, mock.Anything).
			Return([]*domain.Customer{{ID: uuid.New(), Name: "Acme Construction"}}, 1, nil)

		results, err := svc.Search(context.Background(), dealerID, "acme", domain.SearchEntityCustomers, 25)

		assert.NoError(t, err)
		assert.Equal(t, 1, results.TotalResults)
		m.equipment.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
		m.rentals.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - query shorter than two characters", func(t *testing.T) {
		svc, m := newSearchService()

		results, err := svc.Search(context.Background(), dealerID, " a ", "", 0)

		assert.Error(t, err)
		assert.Nil(t, results)
		assert.True(t, customError.IsValidation(err))
		m.customers.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSearchSuggestions(t *testing.T) {
	dealerID := uuid.New()

	t.Run("Success - builds typed entries from each repository", func(t *testing.T) {
		svc, m := newSearchService()
		customerName := "Acme Construction"

		m.customers.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.CustomerFilter) bool {
			return f.Search == "acm" && f.Limit == 5
		})).Return([]*domain.Customer{{ID: uuid.New(), CustomerID: "CUS-1", Name: customerName}}, 1, nil)
		m.equipment.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.EquipmentFilter) bool {
			return f.Search == "acm" && f.Limit == 5
		})).Return([]*domain.Equipment{{ID: uuid.New(), EquipmentID: "EQP-1", Name: "Excavator", Model: "CAT 320"}}, 1, nil)
		m.rentals.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.RentalFilter) bool {
			return f.Search == "acm" && f.Limit == 5
		})).Return([]*domain.Rental{{ID: uuid.New(), RentalID: "RNT-1", CustomerName: &customerName}}, 1, nil)

		suggestions, err := svc.Suggest(context.Background(), dealerID, "acm")

		assert.NoError(t, err)
		assert.Len(t, suggestions, 3)
		assert.Equal(t, "customer", suggestions[0].Type)
		assert.Equal(t, "Acme Construction (CUS-1)", suggestions[0].Text)
		assert.Equal(t, "EQP-1 - Excavator CAT 320", suggestions[1].Text)
		assert.Equal(t, "RNT-1 - Acme Construction", suggestions[2].Text)
	})

	t.Run("Success - empty query yields no suggestions and no queries", func(t *testing.T) {
		svc, m := newSearchService()

		suggestions, err := svc.Suggest(context.Background(), dealerID, "   ")

		assert.NoError(t, err)
		assert.Empty(t, suggestions)
		m.customers.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}
