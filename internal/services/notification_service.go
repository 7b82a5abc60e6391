package services

import (
	"context"

	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/models/dtos/responses"
	models "lifewithchrist/community/internal/models/gorm"
	"lifewithchrist/community/internal/realtime"
)

// Notifier is the side-effect sink the other services use to fan out
// notifications from their mutations.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification)
}

// NotificationRepo is the slice of the notification repository the service
// needs.
type NotificationRepo interface {
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// NotificationService persists notification rows and pushes them to the
// recipient's realtime channel.
type NotificationService struct {
	repo      NotificationRepo
	publisher realtime.Publisher
	metrics   *metrics.MetricsRegistry
}

var _ Notifier = (*NotificationService)(nil)

func NewNotificationService(repo NotificationRepo, publisher realtime.Publisher, reg *metrics.MetricsRegistry) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		metrics:   reg,
	}
}

// Notify persists the notification and pushes it out. It never fails the
// caller: the triggering mutation has already committed, and a notification
// that could not be written is only lost noise, not lost data.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		logging.Warn("Failed to persist notification",
			"user_id", n.UserID, "type", n.Type, "error", err.Error())
		return
	}

	if s.publisher != nil {
		if err := s.publisher.PublishNotification(ctx, n); err != nil {
			logging.Warn("Failed to push notification",
				"user_id", n.UserID, "type", n.Type, "error", err.Error())
			return
		}
		if s.metrics != nil {
			s.metrics.NotificationsPushed.Inc()
		}
	}
}

// List returns the recipient's recent notifications with the unread counter.
func (s *NotificationService) List(ctx context.Context, userID string) (*responses.NotificationListResponse, error) {
	notifications, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &responses.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   int(unread),
	}, nil
}

// MarkRead marks one notification read for its recipient.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead clears the recipient's unread set.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
