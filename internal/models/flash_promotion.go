package models

import (
	"time"

	"gorm.io/gorm"
)

// FlashPromotion is a limited-quantity, time-boxed offer on a menu item.
type FlashPromotion struct {
	ID           uint           `gorm:"primarykey" json:"id"`                  // primary key
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`   // owning restaurant
	MenuItemID   *uint          `gorm:"index" json:"menu_item_id"`             // optional discounted item
	Title        string         `gorm:"not null" json:"title"`                 // offer headline
	Description  string         `gorm:"type:text" json:"description"`
	Quantity     int64          `gorm:"not null;default:0" json:"quantity"`    // total claimable units
	Remaining    int64          `gorm:"not null;default:0" json:"remaining"`   // units left, decremented atomically
	StartsAt     time.Time      `gorm:"index" json:"starts_at"`                // window open
	EndsAt       time.Time      `gorm:"index" json:"ends_at"`                  // window close
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (FlashPromotion) TableName() string {
	return "flash_promotions"
}

// ActiveAt reports whether the promotion window covers the given time.
func (p FlashPromotion) ActiveAt(t time.Time) bool {
	return !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}
