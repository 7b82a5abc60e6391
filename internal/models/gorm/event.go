package gorm

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// RSVPStatus mirrors the Postgres ENUM 'rsvp_status'
type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPMaybe        RSVPStatus = "maybe"
	RSVPNotAttending RSVPStatus = "not_attending"
)

// EventLocation is the physical venue descriptor.
type EventLocation struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

func (l EventLocation) Value() (driver.Value, error) { return jsonValue(l) }
func (l *EventLocation) Scan(src interface{}) error  { return jsonScan(src, l) }

// OnlineMeeting is filled in by the create-meeting function for virtual events.
type OnlineMeeting struct {
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	MeetingID string `json:"meeting_id"`
}

func (m OnlineMeeting) Value() (driver.Value, error) { return jsonValue(m) }
func (m *OnlineMeeting) Scan(src interface{}) error  { return jsonScan(src, m) }

type Event struct {
	ID            string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Title         string         `gorm:"column:title" json:"title"`
	Description   string         `gorm:"column:description" json:"description"`
	StartTime     time.Time      `gorm:"column:start_time;index" json:"start_time"`
	EndTime       time.Time      `gorm:"column:end_time" json:"end_time"`
	Location      *EventLocation `gorm:"column:location;type:text" json:"location,omitempty"`
	OnlineMeeting *OnlineMeeting `gorm:"column:online_meeting;type:text" json:"online_meeting,omitempty"`
	OrganizerID   string         `gorm:"column:organizer_id;type:uuid" json:"organizer_id"`
	Category      string         `gorm:"column:category;index" json:"category"`
	MaxAttendees  *int           `gorm:"column:max_attendees" json:"max_attendees,omitempty"`
	ImageURL      *string        `gorm:"column:image_url" json:"image_url,omitempty"`
	Tags          StringList     `gorm:"column:tags;type:text" json:"tags,omitempty"`
	GroupID       *string        `gorm:"column:group_id;type:uuid" json:"group_id,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Organizer *User       `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	RSVPs     []EventRSVP `gorm:"foreignKey:EventID" json:"rsvps,omitempty"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = newID()
	}
	return nil
}

// EventRSVP holds one row per (event, user); status is last-write-wins.
type EventRSVP struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	EventID   string     `gorm:"column:event_id;type:uuid;uniqueIndex:idx_event_rsvp" json:"event_id"`
	UserID    string     `gorm:"column:user_id;type:uuid;uniqueIndex:idx_event_rsvp" json:"user_id"`
	Status    RSVPStatus `gorm:"column:status;type:text" json:"status"`
	Note      *string    `gorm:"column:note" json:"note,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (EventRSVP) TableName() string {
	return "event_rsvps"
}

func (r *EventRSVP) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}
