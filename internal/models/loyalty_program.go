package models

import (
	"time"

	"gorm.io/gorm"
)

// LoyaltyProgram configures how a restaurant rewards visits.
// One program per restaurant.
type LoyaltyProgram struct {
	ID             uint           `gorm:"primarykey" json:"id"`                        // primary key
	RestaurantID   uint           `gorm:"uniqueIndex;not null" json:"restaurant_id"`   // owning restaurant
	Type           string         `gorm:"not null" json:"type"`                        // points / stamps / spending / missions
	SpendingRatio  float64        `gorm:"not null;default:1" json:"spending_ratio"`    // points per currency unit
	WelcomeBonus   int            `gorm:"not null;default:0" json:"welcome_bonus"`     // points granted on enrollment
	TargetCount    int            `gorm:"not null;default:0" json:"target_count"`      // stamps needed for the reward
	TargetSpending float64        `gorm:"not null;default:0" json:"target_spending"`   // spending goal for the reward
	RewardLabel    string         `gorm:"default:''" json:"reward_label"`              // what the customer gets
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (LoyaltyProgram) TableName() string {
	return "loyalty_programs"
}
