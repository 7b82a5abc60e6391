package gorm

import (
	"time"

	"gorm.io/gorm"
)

// Notification is created as a side effect of mutations elsewhere (reactions,
// comments, RSVPs, approvals) and delivered to the recipient over the
// realtime channel in addition to the list endpoint.
type Notification struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Type      string    `gorm:"column:type" json:"type"`
	Title     string    `gorm:"column:title" json:"title"`
	Message   string    `gorm:"column:message" json:"message"`
	ActionURL *string   `gorm:"column:action_url" json:"action_url,omitempty"`
	IsRead    bool      `gorm:"column:is_read;default:false" json:"is_read"`
	ActorID   *string   `gorm:"column:actor_id;type:uuid" json:"actor_id,omitempty"`
	Context   Context   `gorm:"column:context;type:text" json:"context,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return nil
}
