package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign is a marketing message targeted at a customer segment.
// Delivery stops at audience resolution; no channel integration here.
type Campaign struct {
	ID               uint           `gorm:"primarykey" json:"id"`                      // primary key
	RestaurantID     uint           `gorm:"not null;index" json:"restaurant_id"`       // owning restaurant
	Title            string         `gorm:"not null" json:"title"`                     // internal name
	Message          string         `gorm:"type:text" json:"message"`                  // body shown to customers
	TargetSegment    string         `gorm:"not null" json:"target_segment"`            // segment label the campaign targets
	FlashPromotionID *uint          `gorm:"index" json:"flash_promotion_id"`           // optional linked promotion
	Status           string         `gorm:"default:'draft';index" json:"status"`       // draft / dispatching / sent
	RecipientCount   int64          `gorm:"not null;default:0" json:"recipient_count"` // resolved audience size
	SentAt           *time.Time     `json:"sent_at"`                                   // dispatch completion time
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Campaign) TableName() string {
	return "campaigns"
}
