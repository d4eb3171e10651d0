package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is the per-restaurant aggregated view of one user, recomputed
// after every validated visit. Unique per (user, restaurant).
type Customer struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // primary key
	UserID        uint           `gorm:"not null;uniqueIndex:idx_customer_pair" json:"user_id"`       // customer account
	RestaurantID  uint           `gorm:"not null;uniqueIndex:idx_customer_pair" json:"restaurant_id"` // venue
	LastVisit     *time.Time     `gorm:"index" json:"last_visit"`                                     // most recent visit, nil before the first
	TotalVisits   int64          `gorm:"not null;default:0" json:"total_visits"`                      // lifetime visit count
	VisitsPerMonth int64         `gorm:"not null;default:0" json:"visits_per_month"`                  // kept equal to total_visits
	TotalRevenue  Money          `gorm:"type:decimal(14,2);not null;default:0" json:"total_revenue"`  // lifetime spend
	AverageTicket Money          `gorm:"type:decimal(12,2);not null;default:0" json:"average_ticket"` // total_revenue / total_visits
	LoyaltyScore  int            `gorm:"not null;default:0;index" json:"loyalty_score"`               // 0..100
	Status        string         `gorm:"default:'Nouveau';index" json:"status"`                       // score segment label
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}
