package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	models "lifewithchrist/community/internal/models/gorm"
)

// DevotionalFilter narrows the devotional list; zero values mean "no filter".
type DevotionalFilter struct {
	Tag    string
	Search string
}

// DevotionalRepository manages devotionals, reactions, and digest subscribers
type DevotionalRepository struct {
	db *gorm.DB
}

func NewDevotionalRepository(db *gorm.DB) *DevotionalRepository {
	return &DevotionalRepository{db: db}
}

// List returns devotionals newest-first with author and reactions expanded
func (r *DevotionalRepository) List(ctx context.Context, filter DevotionalFilter) ([]models.Devotional, error) {
	var devotionals []models.Devotional

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reactions").
		Order("date DESC")

	if filter.Tag != "" {
		q = q.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern)
	}

	if err := q.Find(&devotionals).Error; err != nil {
		return nil, fmt.Errorf("failed to list devotionals: %w", err)
	}

	return devotionals, nil
}

// GetByID returns one devotional with relations expanded
func (r *DevotionalRepository) GetByID(ctx context.Context, id string) (*models.Devotional, error) {
	var devotional models.Devotional

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reactions").
		Where("id = ?", id).
		First(&devotional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch devotional: %w", err)
	}

	return &devotional, nil
}

// GetForDate returns the devotional dated within the given day. When none is
// published for that day it falls back to the most recent one on or before it.
func (r *DevotionalRepository) GetForDate(ctx context.Context, day time.Time) (*models.Devotional, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var devotional models.Devotional
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reactions").
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		First(&devotional).Error
	if err == nil {
		return &devotional, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch devotional for date: %w", err)
	}

	err = r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reactions").
		Where("date < ?", dayEnd).
		Order("date DESC").
		First(&devotional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch latest devotional: %w", err)
	}

	return &devotional, nil
}

// Create inserts a devotional
func (r *DevotionalRepository) Create(ctx context.Context, devotional *models.Devotional) error {
	if err := r.db.WithContext(ctx).Create(devotional).Error; err != nil {
		return fmt.Errorf("failed to create devotional: %w", err)
	}
	return nil
}

// ToggleReaction adds or removes a (user, type) reaction. Unlike post
// reactions these are independent: a bookmark does not clear a love. Returns
// true when the reaction is active after the call.
func (r *DevotionalRepository) ToggleReaction(ctx context.Context, devotionalID, userID string, reactionType models.DevotionalReactionType) (bool, error) {
	var active bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.DevotionalReaction
		err := tx.Where("devotional_id = ? AND user_id = ? AND type = ?", devotionalID, userID, reactionType).
			First(&existing).Error

		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove devotional reaction: %w", err)
			}
			active = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check devotional reaction: %w", err)
		}

		reaction := models.DevotionalReaction{
			DevotionalID: devotionalID,
			UserID:       userID,
			Type:         reactionType,
		}
		if err := tx.Create(&reaction).Error; err != nil {
			return fmt.Errorf("failed to add devotional reaction: %w", err)
		}
		active = true
		return nil
	})

	return active, err
}

// UpsertSubscriber keeps one digest subscription per email, updating the
// delivery preferences on resubscribe.
func (r *DevotionalRepository) UpsertSubscriber(ctx context.Context, sub *models.DevotionalSubscriber) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.DevotionalSubscriber
		err := tx.Where("email = ?", sub.Email).First(&existing).Error

		if err == nil {
			updates := map[string]interface{}{
				"time_preference": sub.TimePreference,
				"timezone":        sub.Timezone,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update subscriber: %w", err)
			}
			sub.ID = existing.ID
			sub.CreatedAt = existing.CreatedAt
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check subscriber: %w", err)
		}

		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscriber: %w", err)
		}
		return nil
	})
	return err
}

// DeleteSubscriber removes a digest subscription. Deleting an email that is
// not subscribed is a no-op.
func (r *DevotionalRepository) DeleteSubscriber(ctx context.Context, email string) error {
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.DevotionalSubscriber{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	return nil
}

// ListSubscribers returns all digest subscribers for the daily job
func (r *DevotionalRepository) ListSubscribers(ctx context.Context) ([]models.DevotionalSubscriber, error) {
	var subs []models.DevotionalSubscriber
	if err := r.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}
