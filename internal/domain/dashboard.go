package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStats struct {
	Total            int `json:"total"`
	Available        int `json:"available"`
	Reserved         int `json:"reserved"`
	Rented           int `json:"rented"`
	UnderMaintenance int `json:"under_maintenance"`
}

type RentalStats struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Cancelled int `json:"cancelled"`
}

type PaymentStats struct {
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	TotalPayments    int             `json:"total_payments"`
}

// DashboardStats is the aggregate view served to the dealer dashboard,
// cached in redis with a short TTL.
type DashboardStats struct {
	Equipment   EquipmentStats `json:"equipment"`
	Rentals     RentalStats    `json:"rentals"`
	Payments    PaymentStats   `json:"payments"`
	Customers   int            `json:"customers"`
	LastUpdated time.Time      `json:"last_updated"`
}
