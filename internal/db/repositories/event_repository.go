package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	models "lifewithchrist/community/internal/models/gorm"
)

// EventTimeWindow selects upcoming or past events relative to now.
type EventTimeWindow string

const (
	WindowAll      EventTimeWindow = ""
	WindowUpcoming EventTimeWindow = "upcoming"
	WindowPast     EventTimeWindow = "past"
)

// EventFilter narrows the event list; zero values mean "no filter".
type EventFilter struct {
	Category string
	Window   EventTimeWindow
}

// EventRepository manages events and RSVPs
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events in chronological order with organizer and RSVPs
// expanded.
func (r *EventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	var events []models.Event

	q := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("RSVPs").
		Order("start_time ASC")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	switch filter.Window {
	case WindowUpcoming:
		q = q.Where("start_time >= ?", time.Now())
	case WindowPast:
		q = q.Where("start_time < ?", time.Now())
	}

	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// GetByID returns one event with relations expanded
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event

	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("RSVPs", func(db *gorm.DB) *gorm.DB {
			return db.Preload("User")
		}).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	return &event, nil
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// UpsertRSVP keeps one RSVP row per (event, user): a second submission
// updates status and note on the existing row, last write wins.
func (r *EventRepository) UpsertRSVP(ctx context.Context, rsvp *models.EventRSVP) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.EventRSVP
		err := tx.Where("event_id = ? AND user_id = ?", rsvp.EventID, rsvp.UserID).
			First(&existing).Error

		if err == nil {
			updates := map[string]interface{}{
				"status": rsvp.Status,
				"note":   rsvp.Note,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update RSVP: %w", err)
			}
			rsvp.ID = existing.ID
			rsvp.CreatedAt = existing.CreatedAt
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check RSVP: %w", err)
		}

		if err := tx.Create(rsvp).Error; err != nil {
			return fmt.Errorf("failed to create RSVP: %w", err)
		}
		return nil
	})
	return err
}

// SetOnlineMeeting stores the meeting descriptor returned by the
// create-meeting function
func (r *EventRepository) SetOnlineMeeting(ctx context.Context, eventID string, meeting *models.OnlineMeeting) error {
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("online_meeting", meeting).Error
	if err != nil {
		return fmt.Errorf("failed to store online meeting: %w", err)
	}
	return nil
}

// CountRSVPs returns the number of attending RSVPs for capacity checks
func (r *EventRepository) CountRSVPs(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventRSVP{}).
		Where("event_id = ? AND status = ?", eventID, models.RSVPAttending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count RSVPs: %w", err)
	}
	return count, nil
}
