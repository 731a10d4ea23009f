package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlertTypeOverdueRental  = "overdue_rental"
	AlertTypePaymentDue     = "payment_due"
	AlertTypeMaintenanceDue = "maintenance_due"
)

const (
	AlertPriorityLow      = "low"
	AlertPriorityMedium   = "medium"
	AlertPriorityHigh     = "high"
	AlertPriorityCritical = "critical"
)

const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

// Alert is raised by the scheduler sweep against a rental, ledger entry
// or piece of equipment. At most one active alert exists per
// (type, entity) pair.
type Alert struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	DealerID   uuid.UUID  `json:"dealer_id" db:"dealer_id"`
	AlertID    string     `json:"alert_id" db:"alert_id"`
	Type       string     `json:"type" db:"type"`
	Priority   string     `json:"priority" db:"priority"`
	Title      string     `json:"title" db:"title"`
	Message    string     `json:"message" db:"message"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id" db:"entity_id"`
	Status     string     `json:"status" db:"status"`
	DueDate    *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

type AlertFilter struct {
	Status   string
	Type     string
	Priority string
	Page     int
	Limit    int
}
