package gorm

import (
	"time"

	"gorm.io/gorm"
)

// Credential is the identity provider's account record, deliberately separate
// from the User profile. The credential id is the canonical identity id that
// profiles are keyed by.
type Credential struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	FullName     string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Credential) TableName() string {
	return "credentials"
}

func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}
