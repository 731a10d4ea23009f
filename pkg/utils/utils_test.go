package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateDisplayID(t *testing.T) {
	dealerID := uuid.New()

	id := GenerateDisplayID("RNT", dealerID)

	parts := strings.Split(id, "-")
	assert.Len(t, parts, 4)
	assert.Equal(t, "RNT", parts[0])
	assert.Len(t, parts[1], 4)
	assert.Equal(t, strings.ToUpper(parts[1]), parts[1])
	assert.Len(t, parts[3], 6)
}

func TestGenerateDisplayID_Prefixes(t *testing.T) {
	dealerID := uuid.New()

	tests := []struct {
		name   string
		gen    func(uuid.UUID) string
		prefix string
	}{
		{"customer", GenerateCustomerID, "CUS-"},
		{"equipment", GenerateEquipmentID, "EQP-"},
		{"rental", GenerateRentalID, "RNT-"},
		{"payment", GeneratePaymentID, "PAY-"},
		{"alert", GenerateAlertID, "ALT-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.gen(dealerID), tt.prefix))
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dueDate  time.Time
		expected int
	}{
		{"ten days overdue", now.AddDate(0, 0, -10), 10},
		{"due today", now, 0},
		{"due tomorrow", now.AddDate(0, 0, 1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysOverdue(tt.dueDate, now))
		})
	}
}

func TestIsDateOverdue(t *testing.T) {
	assert.True(t, IsDateOverdue(time.Now().Add(-time.Hour)))
	assert.False(t, IsDateOverdue(time.Now().Add(time.Hour)))
}

func TestDecimalFromString(t *testing.T) {
	d, err := DecimalFromString("1234.56")
	assert.NoError(t, err)
	assert.Equal(t, "1234.56", d.String())

	_, err = DecimalFromString("not-a-number")
	assert.Error(t, err)
}
