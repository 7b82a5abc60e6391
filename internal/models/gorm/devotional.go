package gorm

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// DevotionalReactionType mirrors the Postgres ENUM 'devotional_reaction_type'
type DevotionalReactionType string

const (
	DevotionalLove     DevotionalReactionType = "love"
	DevotionalBookmark DevotionalReactionType = "bookmark"
	DevotionalShare    DevotionalReactionType = "share"
)

// Scripture is the passage a devotional is anchored on.
type Scripture struct {
	Verse     string `json:"verse"`
	Reference string `json:"reference"`
	Version   string `json:"version"`
}

func (s Scripture) Value() (driver.Value, error) { return jsonValue(s) }
func (s *Scripture) Scan(src interface{}) error  { return jsonScan(src, s) }

type Devotional struct {
	ID          string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Title       string     `gorm:"column:title" json:"title"`
	Date        time.Time  `gorm:"column:date;index" json:"date"`
	Scripture   Scripture  `gorm:"column:scripture;type:text" json:"scripture"`
	Content     string     `gorm:"column:content" json:"content"`
	AuthorID    string     `gorm:"column:author_id;type:uuid" json:"author_id"`
	Tags        StringList `gorm:"column:tags;type:text" json:"tags,omitempty"`
	ReadingTime int        `gorm:"column:reading_time" json:"reading_time"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Author    *User                `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Reactions []DevotionalReaction `gorm:"foreignKey:DevotionalID" json:"reactions,omitempty"`
}

// TableName specifies the table name for GORM
func (Devotional) TableName() string {
	return "devotionals"
}

func (d *Devotional) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = newID()
	}
	return nil
}

// DevotionalReaction holds one row per (devotional, user, type).
type DevotionalReaction struct {
	ID           string                 `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	DevotionalID string                 `gorm:"column:devotional_id;type:uuid;uniqueIndex:idx_devotional_reaction" json:"devotional_id"`
	UserID       string                 `gorm:"column:user_id;type:uuid;uniqueIndex:idx_devotional_reaction" json:"user_id"`
	Type         DevotionalReactionType `gorm:"column:type;type:text;uniqueIndex:idx_devotional_reaction" json:"type"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (DevotionalReaction) TableName() string {
	return "devotional_reactions"
}

func (r *DevotionalReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

// DevotionalSubscriber receives the daily devotional digest by email.
type DevotionalSubscriber struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Email          string    `gorm:"column:email;uniqueIndex" json:"email"`
	TimePreference string    `gorm:"column:time_preference;default:morning" json:"time_preference"`
	Timezone       string    `gorm:"column:timezone;default:UTC" json:"timezone"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (DevotionalSubscriber) TableName() string {
	return "devotional_subscribers"
}

func (s *DevotionalSubscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	return nil
}
