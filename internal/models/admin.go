package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a back-office operator account.
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                         // primary key
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`         // login name
	PasswordHash       string         `gorm:"not null" json:"-"`                            // bcrypt hash, never serialized
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // bump to invalidate all tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // tokens issued before this are rejected
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // super admin bypasses RBAC
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}
