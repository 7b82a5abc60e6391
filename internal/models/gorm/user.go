package gorm

import (
	"time"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/constants"
)

// User is the application profile record. It is linked to the identity
// provider's credential by id; the email is only a repair fallback when the
// two fall out of sync.
type User struct {
	ID               string               `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Email            string               `gorm:"column:email;uniqueIndex" json:"email"`
	FullName         string               `gorm:"column:full_name" json:"full_name"`
	Phone            *string              `gorm:"column:phone" json:"phone,omitempty"`
	Location         *string              `gorm:"column:location" json:"location,omitempty"`
	Bio              *string              `gorm:"column:bio" json:"bio,omitempty"`
	AvatarURL        *string              `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Role             constants.Role       `gorm:"column:role;type:text;default:member" json:"role"`
	Status           constants.UserStatus `gorm:"column:status;type:text;default:pending" json:"status"`
	ReasonForJoining *string              `gorm:"column:reason_for_joining" json:"reason_for_joining,omitempty"`
	FaithJourney     *string              `gorm:"column:faith_journey" json:"faith_journey,omitempty"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	LastActivity     *time.Time           `gorm:"column:last_activity" json:"last_activity,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
