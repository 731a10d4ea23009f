package domain

import "github.com/google/uuid"

const (
	SearchEntityCustomers = "customers"
	SearchEntityEquipment = "equipment"
	SearchEntityRentals   = "rentals"
)

// SearchResults carries one global search response across the three
// searchable entities.
type SearchResults struct {
	Query        string       `json:"query"`
	TotalResults int          `json:"total_results"`
	Customers    []*Customer  `json:"customers"`
	Equipment    []*Equipment `json:"equipment"`
	Rentals      []*Rental    `json:"rentals"`
}

// SearchSuggestion is a typeahead entry pointing at a single record.
type SearchSuggestion struct {
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Category string    `json:"category"`
}
