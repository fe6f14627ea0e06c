package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps creation and update fields with the same user and time.
func NewAuditFields(userID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// BalanceTolerance is the largest debit/credit difference still treated as balanced,
// and the outstanding amount below which a document counts as settled.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// Inception is the start date used for "since inception" balance queries.
var Inception = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// MoneyPlaces is the number of decimal places amounts are rounded to when persisted.
const MoneyPlaces int32 = 2
