package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	models "lifewithchrist/community/internal/models/gorm"
)

// PrayerFilter narrows the prayer request list; zero values mean "no filter".
type PrayerFilter struct {
	Status   models.PrayerStatus
	Category string
}

// PrayerRepository manages prayer requests, responses, and updates
type PrayerRepository struct {
	db *gorm.DB
}

func NewPrayerRepository(db *gorm.DB) *PrayerRepository {
	return &PrayerRepository{db: db}
}

// List returns prayer requests newest-first with author, responses, and
// updates expanded.
func (r *PrayerRepository) List(ctx context.Context, filter PrayerFilter) ([]models.PrayerRequest, error) {
	var requests []models.PrayerRequest

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Prayers").
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("prayer_updates.created_at ASC")
		}).
		Order("created_at DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list prayer requests: %w", err)
	}

	return requests, nil
}

// GetByID returns one prayer request with relations expanded
func (r *PrayerRepository) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	var request models.PrayerRequest

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Prayers").
		Preload("Updates").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch prayer request: %w", err)
	}

	return &request, nil
}

// Create inserts a prayer request
func (r *PrayerRepository) Create(ctx context.Context, request *models.PrayerRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create prayer request: %w", err)
	}
	return nil
}

// ToggleResponse adds or removes a (user, type) response. A second call with
// the same type returns to the pre-response state. Returns true when a
// response is active after the call.
func (r *PrayerRepository) ToggleResponse(ctx context.Context, requestID, userID string, responseType models.PrayerResponseType) (bool, error) {
	var active bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PrayerResponse
		err := tx.Where("prayer_request_id = ? AND user_id = ? AND type = ?", requestID, userID, responseType).
			First(&existing).Error

		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove prayer response: %w", err)
			}
			active = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check prayer response: %w", err)
		}

		response := models.PrayerResponse{
			PrayerRequestID: requestID,
			UserID:          userID,
			Type:            responseType,
		}
		if err := tx.Create(&response).Error; err != nil {
			return fmt.Errorf("failed to add prayer response: %w", err)
		}
		active = true
		return nil
	})

	return active, err
}

// UpdateStatusByAuthor changes the request status; the author_id predicate
// makes the author-only rule hold even if a caller bypasses the service
// check. Returns the number of rows changed.
func (r *PrayerRepository) UpdateStatusByAuthor(ctx context.Context, requestID, authorID string, status models.PrayerStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PrayerRequest{}).
		Where("id = ? AND author_id = ?", requestID, authorID).
		Update("status", status)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update prayer status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// AddUpdate appends a status narrative entry
func (r *PrayerRepository) AddUpdate(ctx context.Context, update *models.PrayerUpdate) error {
	if err := r.db.WithContext(ctx).Create(update).Error; err != nil {
		return fmt.Errorf("failed to create prayer update: %w", err)
	}
	return nil
}
