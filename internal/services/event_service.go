package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
	"lifewithchrist/community/internal/providers"
)

// EventRepo is the slice of the event repository the service needs.
type EventRepo interface {
	List(ctx context.Context, filter repositories.EventFilter) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	UpsertRSVP(ctx context.Context, rsvp *models.EventRSVP) error
	SetOnlineMeeting(ctx context.Context, eventID string, meeting *models.OnlineMeeting) error
	CountRSVPs(ctx context.Context, eventID string) (int64, error)
}

// EventService implements church events and RSVPs.
type EventService struct {
	events    EventRepo
	functions providers.FunctionInvoker
	notifier  Notifier
}

func NewEventService(events EventRepo, functions providers.FunctionInvoker, notifier Notifier) *EventService {
	return &EventService{
		events:    events,
		functions: functions,
		notifier:  notifier,
	}
}

// List returns events, optionally narrowed by category and time window.
func (s *EventService) List(ctx context.Context, filter repositories.EventFilter) ([]models.Event, error) {
	return s.events.List(ctx, filter)
}

// Get returns one event with its RSVP roster.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

// Create schedules an event. When an online meeting is requested the hosted
// create-meeting function provisions it; a provisioning failure does not fail
// the event, an organizer can retry from the event page.
func (s *EventService) Create(ctx context.Context, organizerID string, req *requests.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		OrganizerID:  organizerID,
		Category:     req.Category,
		MaxAttendees: req.MaxAttendees,
		GroupID:      req.GroupID,
		Tags:         req.Tags,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	if req.OnlineMeeting && s.functions != nil {
		s.provisionMeeting(ctx, event)
	}

	return s.events.GetByID(ctx, event.ID)
}

// RSVP records the caller's reply. One row per (event, user); replying again
// overwrites status and note. Capacity is enforced only when moving into the
// attending state.
func (s *EventService) RSVP(ctx context.Context, eventID, userID string, req *requests.RSVPRequest) (*models.Event, error) {
	status := models.RSVPStatus(req.Status)
	switch status {
	case models.RSVPAttending, models.RSVPMaybe, models.RSVPNotAttending:
	default:
		return nil, fmt.Errorf("%w: unknown RSVP status %q", ErrInvalidInput, req.Status)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if status == models.RSVPAttending && event.MaxAttendees != nil {
		if full, err := s.wouldExceedCapacity(ctx, event, userID); err != nil {
			return nil, err
		} else if full {
			return nil, ErrEventFull
		}
	}

	rsvp := &models.EventRSVP{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
		Note:    req.Note,
	}
	if err := s.events.UpsertRSVP(ctx, rsvp); err != nil {
		return nil, err
	}

	if status == models.RSVPAttending && event.OrganizerID != userID {
		s.notifier.Notify(ctx, &models.Notification{
			UserID:  event.OrganizerID,
			Type:    "event_rsvp",
			Title:   "New RSVP",
			Message: fmt.Sprintf("Someone is attending %s", event.Title),
			ActorID: &userID,
			Context: models.Context{"event_id": eventID},
		})
	}

	return s.events.GetByID(ctx, eventID)
}

// ProvisionMeeting retries online meeting creation for an existing event.
func (s *EventService) ProvisionMeeting(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.provisionMeeting(ctx, event)
	return s.events.GetByID(ctx, eventID)
}

func (s *EventService) provisionMeeting(ctx context.Context, event *models.Event) {
	result, _, err := s.functions.Invoke(ctx, constants.FnCreateMeeting, map[string]interface{}{
		"event_id":   event.ID,
		"title":      event.Title,
		"start_time": event.StartTime,
		"end_time":   event.EndTime,
	})
	if err != nil {
		logging.Warn("Online meeting provisioning failed",
			"event_id", event.ID, "error", err.Error())
		return
	}

	meeting := &models.OnlineMeeting{}
	if v, ok := result["platform"].(string); ok {
		meeting.Platform = v
	}
	if v, ok := result["url"].(string); ok {
		meeting.URL = v
	}
	if v, ok := result["meeting_id"].(string); ok {
		meeting.MeetingID = v
	}
	if meeting.URL == "" {
		logging.Warn("Create-meeting function returned no join URL", "event_id", event.ID)
		return
	}

	if err := s.events.SetOnlineMeeting(ctx, event.ID, meeting); err != nil {
		logging.Error("Failed to store online meeting", "event_id", event.ID, "error", err.Error())
	}
}

// wouldExceedCapacity checks whether adding this user as attending would
// overflow the event. A user who already holds an attending row is never
// blocked from re-submitting.
func (s *EventService) wouldExceedCapacity(ctx context.Context, event *models.Event, userID string) (bool, error) {
	for _, r := range event.RSVPs {
		if r.UserID == userID && r.Status == models.RSVPAttending {
			return false, nil
		}
	}

	count, err := s.events.CountRSVPs(ctx, event.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count >= int64(*event.MaxAttendees), nil
}
