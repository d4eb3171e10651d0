package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant is a tenant venue.
type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // primary key
	Name        string         `gorm:"not null;index" json:"name"`           // display name
	Status      string         `gorm:"default:'ACTIVE';index" json:"status"` // ACTIVE / INACTIVE
	Cuisine     string         `gorm:"default:''" json:"cuisine"`            // cuisine label
	Address     string         `gorm:"default:''" json:"address"`
	Phone       string         `gorm:"default:''" json:"phone"`
	Description string         `gorm:"type:text" json:"description"`
	Offer       string         `gorm:"default:''" json:"offer"`                   // current headline offer
	BudgetTier  string         `gorm:"default:''" json:"budget_tier"`             // €, €€, €€€
	VisitCount  int64          `gorm:"not null;default:0" json:"visit_count"`     // total validated visits
	OwnerUserID *uint          `gorm:"index" json:"owner_user_id"`                // optional owning account
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Restaurant) TableName() string {
	return "restaurants"
}
