package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an end customer account (diner).
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`              // primary key
	Email              string         `gorm:"uniqueIndex;not null" json:"email"` // login email
	PasswordHash       string         `gorm:"not null" json:"-"`                 // bcrypt hash, never serialized
	DisplayName        string         `gorm:"default:''" json:"display_name"`    // public name
	Locale             string         `gorm:"default:'fr'" json:"locale"`        // preferred locale
	Status             string         `gorm:"default:'active'" json:"status"`    // account status
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`       // bump to invalidate all tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                    // tokens issued before this are rejected
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
