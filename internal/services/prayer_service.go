package services

import (
	"context"
	"fmt"

	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

// PrayerRepo is the slice of the prayer repository the service needs.
type PrayerRepo interface {
	List(ctx context.Context, filter repositories.PrayerFilter) ([]models.PrayerRequest, error)
	GetByID(ctx context.Context, id string) (*models.PrayerRequest, error)
	Create(ctx context.Context, request *models.PrayerRequest) error
	ToggleResponse(ctx context.Context, requestID, userID string, responseType models.PrayerResponseType) (bool, error)
	UpdateStatusByAuthor(ctx context.Context, requestID, authorID string, status models.PrayerStatus) (int64, error)
	AddUpdate(ctx context.Context, update *models.PrayerUpdate) error
}

// PrayerService implements the prayer wall.
type PrayerService struct {
	prayers  PrayerRepo
	notifier Notifier
}

func NewPrayerService(prayers PrayerRepo, notifier Notifier) *PrayerService {
	return &PrayerService{
		prayers:  prayers,
		notifier: notifier,
	}
}

// List returns prayer requests, optionally narrowed by status or category.
func (s *PrayerService) List(ctx context.Context, filter repositories.PrayerFilter) ([]models.PrayerRequest, error) {
	return s.prayers.List(ctx, filter)
}

// Get returns one prayer request with its responses and updates.
func (s *PrayerService) Get(ctx context.Context, id string) (*models.PrayerRequest, error) {
	return s.prayers.GetByID(ctx, id)
}

// Create posts a new prayer request.
func (s *PrayerService) Create(ctx context.Context, authorID string, req *requests.CreatePrayerRequest) (*models.PrayerRequest, error) {
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	request := &models.PrayerRequest{
		AuthorID:    authorID,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Status:      models.PrayerNeedsPrayer,
		Urgency:     models.UrgencyNormal,
		IsAnonymous: req.IsAnonymous,
		Visibility:  models.VisibilityPublic,
	}
	if req.Urgency != "" {
		switch u := models.PrayerUrgency(req.Urgency); u {
		case models.UrgencyNormal, models.UrgencyUrgent, models.UrgencyTimeSensitive:
			request.Urgency = u
		default:
			return nil, fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, req.Urgency)
		}
	}
	if req.Visibility != "" {
		switch v := models.PostVisibility(req.Visibility); v {
		case models.VisibilityPublic, models.VisibilityGroups, models.VisibilityLeaders:
			request.Visibility = v
		default:
			return nil, fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, req.Visibility)
		}
	}

	if err := s.prayers.Create(ctx, request); err != nil {
		return nil, err
	}

	return s.prayers.GetByID(ctx, request.ID)
}

// ToggleResponse records or withdraws an "I prayed" style response. The
// author is notified only when a response lands; anonymous requests still
// reach their author.
func (s *PrayerService) ToggleResponse(ctx context.Context, requestID, userID string, responseType models.PrayerResponseType) (*models.PrayerRequest, error) {
	switch responseType {
	case models.ResponsePrayed, models.ResponseEncouraged:
	default:
		return nil, fmt.Errorf("%w: unknown response type %q", ErrInvalidInput, string(responseType))
	}

	request, err := s.prayers.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	active, err := s.prayers.ToggleResponse(ctx, requestID, userID, responseType)
	if err != nil {
		return nil, err
	}

	if active && request.AuthorID != userID {
		s.notifier.Notify(ctx, &models.Notification{
			UserID:  request.AuthorID,
			Type:    "prayer_response",
			Title:   "Someone prayed",
			Message: fmt.Sprintf("Someone responded to %s", request.Title),
			ActorID: &userID,
			Context: models.Context{"prayer_request_id": requestID, "response": string(responseType)},
		})
	}

	return s.prayers.GetByID(ctx, requestID)
}

// UpdateStatus moves the request between statuses. Only the author may do
// this; a non-author call fails even if the request exists. An optional
// update message is appended to the request's narrative.
func (s *PrayerService) UpdateStatus(ctx context.Context, requestID, callerID string, req *requests.UpdatePrayerStatusRequest) (*models.PrayerRequest, error) {
	status := models.PrayerStatus(req.Status)
	switch status {
	case models.PrayerNeedsPrayer, models.PrayerOngoing, models.PrayerAnswered:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	affected, err := s.prayers.UpdateStatusByAuthor(ctx, requestID, callerID, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Either the request does not exist or the caller is not its author.
		if _, err := s.prayers.GetByID(ctx, requestID); err != nil {
			return nil, err
		}
		return nil, ErrNotAuthor
	}

	if req.UpdateMessage != "" {
		update := &models.PrayerUpdate{
			PrayerRequestID: requestID,
			Content:         req.UpdateMessage,
		}
		if err := s.prayers.AddUpdate(ctx, update); err != nil {
			return nil, err
		}
	}

	return s.prayers.GetByID(ctx, requestID)
}
