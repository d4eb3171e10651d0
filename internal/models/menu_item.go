package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is one dish on a restaurant's menu.
type MenuItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                     // primary key
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`      // owning restaurant
	Name         string         `gorm:"not null" json:"name"`                     // dish name
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"default:'';index" json:"category"`         // entrée / plat / dessert / boisson
	Price        Money          `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Available    bool           `gorm:"not null;default:true;index" json:"available"` // shown on the public menu
	SortOrder    int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (MenuItem) TableName() string {
	return "menu_items"
}
