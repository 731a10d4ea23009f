package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerateDisplayID builds a human-facing id like RNT-3F2A-lq8x1z-A4C9:
// prefix, the tail of the dealer id, a base36 timestamp and a random
// suffix. Uniqueness is enforced by the database column, not here.
func GenerateDisplayID(prefix string, dealerID uuid.UUID) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	random := strings.ToUpper(hex.EncodeToString(buf))

	raw := strings.ReplaceAll(dealerID.String(), "-", "")
	dealerTail := strings.ToUpper(raw[len(raw)-4:])

	return fmt.Sprintf("%s-%s-%s-%s", prefix, dealerTail, ts, random)
}

func GenerateCustomerID(dealerID uuid.UUID) string {
	return GenerateDisplayID("CUS", dealerID)
}

func GenerateEquipmentID(dealerID uuid.UUID) string {
	return GenerateDisplayID("EQP", dealerID)
}

func GenerateRentalID(dealerID uuid.UUID) string {
	return GenerateDisplayID("RNT", dealerID)
}

func GeneratePaymentID(dealerID uuid.UUID) string {
	return GenerateDisplayID("PAY", dealerID)
}

func GenerateAlertID(dealerID uuid.UUID) string {
	return GenerateDisplayID("ALT", dealerID)
}

// DaysOverdue returns how many whole days past due the given date is as
// of now; zero or negative means not yet due.
func DaysOverdue(dueDate time.Time, now time.Time) int {
	return int(now.Sub(dueDate).Hours() / 24)
}

// IsDateOverdue checks if a date is overdue (past current date)
func IsDateOverdue(dueDate time.Time) bool {
	return time.Now().After(dueDate)
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
