package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/constants"
	models "lifewithchrist/community/internal/models/gorm"
)

// UserRepository manages profile records
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a profile by identity id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a profile by email, the repair fallback key
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	return &user, nil
}

// Create inserts a new profile row
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update and returns the stored row, which is
// authoritative for derived and normalized fields.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Rekey moves the profile stored under fromID to toID. Running it again once
// the profile already sits under toID is a no-op.
func (r *UserRepository) Rekey(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", fromID).
		Update("id", toID).Error
	if err != nil {
		return fmt.Errorf("failed to rekey profile: %w", err)
	}
	return nil
}

// ListByStatus returns profiles in a given status, oldest first, for the
// admin approval queue
func (r *UserRepository) ListByStatus(ctx context.Context, status constants.UserStatus) ([]models.User, error) {
	var users []models.User

	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// SetStatus updates a profile's approval status
func (r *UserRepository) SetStatus(ctx context.Context, id string, status constants.UserStatus) (*models.User, error) {
	return r.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}

// SetRole updates a profile's role
func (r *UserRepository) SetRole(ctx context.Context, id string, role constants.Role) (*models.User, error) {
	return r.UpdateFields(ctx, id, map[string]interface{}{"role": role})
}

// TouchActivity stamps last_activity; failures are not fatal to callers
func (r *UserRepository) TouchActivity(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_activity", &now).Error
}
