package gorm

import (
	"time"

	"gorm.io/gorm"
)

// PrayerStatus mirrors the Postgres ENUM 'prayer_status'. Only the author may
// move a request between statuses.
type PrayerStatus string

const (
	PrayerNeedsPrayer PrayerStatus = "needs_prayer"
	PrayerOngoing     PrayerStatus = "ongoing"
	PrayerAnswered    PrayerStatus = "answered"
)

// PrayerUrgency mirrors the Postgres ENUM 'prayer_urgency'
type PrayerUrgency string

const (
	UrgencyNormal        PrayerUrgency = "normal"
	UrgencyUrgent        PrayerUrgency = "urgent"
	UrgencyTimeSensitive PrayerUrgency = "time_sensitive"
)

// PrayerResponseType mirrors the Postgres ENUM 'prayer_response_type'
type PrayerResponseType string

const (
	ResponsePrayed     PrayerResponseType = "prayed"
	ResponseEncouraged PrayerResponseType = "encouraged"
)

type PrayerRequest struct {
	ID          string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	AuthorID    string         `gorm:"column:author_id;type:uuid;index" json:"author_id"`
	Title       string         `gorm:"column:title" json:"title"`
	Content     string         `gorm:"column:content" json:"content"`
	Category    string         `gorm:"column:category;index" json:"category"`
	Status      PrayerStatus   `gorm:"column:status;type:text;default:needs_prayer" json:"status"`
	Urgency     PrayerUrgency  `gorm:"column:urgency;type:text;default:normal" json:"urgency"`
	IsAnonymous bool           `gorm:"column:is_anonymous;default:false" json:"is_anonymous"`
	Visibility  PostVisibility `gorm:"column:visibility;type:text;default:public" json:"visibility"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Author  *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Prayers []PrayerResponse `gorm:"foreignKey:PrayerRequestID" json:"prayers,omitempty"`
	Updates []PrayerUpdate   `gorm:"foreignKey:PrayerRequestID" json:"updates,omitempty"`
}

// TableName specifies the table name for GORM
func (PrayerRequest) TableName() string {
	return "prayer_requests"
}

func (p *PrayerRequest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// PrayerResponse holds one row per (request, user, type).
type PrayerResponse struct {
	ID              string             `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PrayerRequestID string             `gorm:"column:prayer_request_id;type:uuid;uniqueIndex:idx_prayer_response" json:"prayer_request_id"`
	UserID          string             `gorm:"column:user_id;type:uuid;uniqueIndex:idx_prayer_response" json:"user_id"`
	Type            PrayerResponseType `gorm:"column:type;type:text;uniqueIndex:idx_prayer_response" json:"type"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (PrayerResponse) TableName() string {
	return "prayer_responses"
}

func (r *PrayerResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

// PrayerUpdate is an append-only status narrative written by the author.
type PrayerUpdate struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PrayerRequestID string    `gorm:"column:prayer_request_id;type:uuid;index" json:"prayer_request_id"`
	Content         string    `gorm:"column:content" json:"content"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (PrayerUpdate) TableName() string {
	return "prayer_updates"
}

func (u *PrayerUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
