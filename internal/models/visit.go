package models

import (
	"time"
)

// Visit is one validated restaurant visit. Rows are append-only; a visit is
// never updated or deleted after insertion.
type Visit struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                     // primary key
	UserID           uint      `gorm:"not null;index:idx_visit_pair" json:"user_id"`             // customer account
	RestaurantID     uint      `gorm:"not null;index:idx_visit_pair;uniqueIndex:idx_visit_idem" json:"restaurant_id"` // venue
	Amount           *Money    `gorm:"type:decimal(12,2)" json:"amount"`                         // bill amount, nil when not provided
	PointsEarned     int       `gorm:"not null;default:0" json:"points_earned"`                  // accrual outcome
	StampsEarned     int       `gorm:"not null;default:0" json:"stamps_earned"`                  // accrual outcome
	ValidationMethod string    `gorm:"not null" json:"validation_method"`                        // code / nfc
	ValidationCode   string    `gorm:"default:''" json:"-"`                                      // code presented at validation
	IdempotencyKey   *string   `gorm:"uniqueIndex:idx_visit_idem" json:"idempotency_key"`        // optional caller dedup key
	VisitedAt        time.Time `gorm:"index" json:"visited_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName sets the table name.
func (Visit) TableName() string {
	return "visits"
}
