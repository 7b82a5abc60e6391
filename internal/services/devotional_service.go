package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

// DevotionalRepo is the slice of the devotional repository the service needs.
type DevotionalRepo interface {
	List(ctx context.Context, filter repositories.DevotionalFilter) ([]models.Devotional, error)
	GetByID(ctx context.Context, id string) (*models.Devotional, error)
	GetForDate(ctx context.Context, day time.Time) (*models.Devotional, error)
	Create(ctx context.Context, devotional *models.Devotional) error
	ToggleReaction(ctx context.Context, devotionalID, userID string, reactionType models.DevotionalReactionType) (bool, error)
	UpsertSubscriber(ctx context.Context, sub *models.DevotionalSubscriber) error
	DeleteSubscriber(ctx context.Context, email string) error
}

// EmailEnqueuer queues outbound email tasks for the worker.
type EmailEnqueuer interface {
	Enqueue(ctx context.Context, streamName string, task *common.EmailTask) error
}

// DevotionalService implements daily devotionals and the digest subscription.
type DevotionalService struct {
	devotionals DevotionalRepo
	queue       EmailEnqueuer
	metrics     *metrics.MetricsRegistry
}

func NewDevotionalService(devotionals DevotionalRepo, queue EmailEnqueuer, reg *metrics.MetricsRegistry) *DevotionalService {
	return &DevotionalService{
		devotionals: devotionals,
		queue:       queue,
		metrics:     reg,
	}
}

// List returns devotionals, optionally narrowed by tag or search text.
func (s *DevotionalService) List(ctx context.Context, filter repositories.DevotionalFilter) ([]models.Devotional, error) {
	return s.devotionals.List(ctx, filter)
}

// Get returns one devotional.
func (s *DevotionalService) Get(ctx context.Context, id string) (*models.Devotional, error) {
	return s.devotionals.GetByID(ctx, id)
}

// Today returns the devotional for the current day, falling back to the most
// recent one when today's entry has not been published yet.
func (s *DevotionalService) Today(ctx context.Context) (*models.Devotional, error) {
	return s.devotionals.GetForDate(ctx, time.Now())
}

// Create publishes a devotional (leaders and admins only, enforced upstream).
func (s *DevotionalService) Create(ctx context.Context, authorID string, devotional *models.Devotional) (*models.Devotional, error) {
	if devotional.Title == "" || devotional.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	devotional.AuthorID = authorID
	if devotional.Date.IsZero() {
		devotional.Date = time.Now()
	}
	if devotional.ReadingTime == 0 {
		devotional.ReadingTime = estimateReadingTime(devotional.Content)
	}

	if err := s.devotionals.Create(ctx, devotional); err != nil {
		return nil, err
	}

	return s.devotionals.GetByID(ctx, devotional.ID)
}

// ToggleReaction flips a love, bookmark, or share independently of the other
// reaction types.
func (s *DevotionalService) ToggleReaction(ctx context.Context, devotionalID, userID string, reactionType models.DevotionalReactionType) (*models.Devotional, error) {
	switch reactionType {
	case models.DevotionalLove, models.DevotionalBookmark, models.DevotionalShare:
	default:
		return nil, fmt.Errorf("%w: unknown reaction type %q", ErrInvalidInput, string(reactionType))
	}

	if _, err := s.devotionals.ToggleReaction(ctx, devotionalID, userID, reactionType); err != nil {
		return nil, err
	}

	return s.devotionals.GetByID(ctx, devotionalID)
}

// Subscribe registers an email for the daily digest and queues the
// confirmation email. Resubscribing updates the delivery preferences.
func (s *DevotionalService) Subscribe(ctx context.Context, req *requests.SubscribeDevotionalsRequest) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	sub := &models.DevotionalSubscriber{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		TimePreference: req.TimePreference,
		Timezone:       req.Timezone,
	}
	if sub.TimePreference == "" {
		sub.TimePreference = "morning"
	}
	if sub.Timezone == "" {
		sub.Timezone = "UTC"
	}

	if err := s.devotionals.UpsertSubscriber(ctx, sub); err != nil {
		return err
	}

	task := &common.EmailTask{
		Function: constants.FnSubscribeDevotionals,
		Payload: map[string]interface{}{
			"email":           sub.Email,
			"time_preference": sub.TimePreference,
			"timezone":        sub.Timezone,
		},
		Enqueued: time.Now(),
	}
	if err := s.queue.Enqueue(ctx, constants.EmailQueueStream, task); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.EmailsQueued.Inc()
	}

	return nil
}

// Unsubscribe drops the digest subscription for an email. The signed link
// carrying the email has already been validated at the API boundary.
func (s *DevotionalService) Unsubscribe(ctx context.Context, email string) error {
	return s.devotionals.DeleteSubscriber(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// estimateReadingTime assumes roughly 200 words a minute, minimum one minute.
func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
