package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership is a customer's loyalty balance at one restaurant.
// Unique per (user, restaurant).
type Membership struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                         // primary key
	UserID            uint           `gorm:"not null;uniqueIndex:idx_membership_pair" json:"user_id"`      // customer account
	RestaurantID      uint           `gorm:"not null;uniqueIndex:idx_membership_pair" json:"restaurant_id"` // venue
	Points            int64          `gorm:"not null;default:0" json:"points"`                             // accrued points balance
	Stamps            int64          `gorm:"not null;default:0" json:"stamps"`                             // accrued stamp count
	Tier              string         `gorm:"default:'Bronze'" json:"tier"`                                 // current tier label
	NextTierThreshold int64          `gorm:"not null;default:0" json:"next_tier_threshold"`                // points needed for the next tier, 0 at the top
	JoinedAt          time.Time      `json:"joined_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Membership) TableName() string {
	return "memberships"
}
