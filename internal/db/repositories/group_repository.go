package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	models "lifewithchrist/community/internal/models/gorm"
)

// GroupFilter narrows the group list; zero values mean "no filter".
type GroupFilter struct {
	Category string
	Search   string
}

// GroupRepository manages groups and memberships
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// List returns groups newest-first with leader and members expanded
func (r *GroupRepository) List(ctx context.Context, filter GroupFilter) ([]models.Group, error) {
	var groups []models.Group

	q := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		Order("created_at DESC")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if err := q.Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return groups, nil
}

// GetByID returns one group with relations expanded
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group

	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Preload("User")
		}).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	return &group, nil
}

// Create inserts a group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// FindMembership returns the single membership row for (group, user), if any
func (r *GroupRepository) FindMembership(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	var member models.GroupMember

	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}

	return &member, nil
}

// Join inserts a membership row unless one already exists. Repeated joins do
// not create duplicate rows; the existing row is returned unchanged.
func (r *GroupRepository) Join(ctx context.Context, member *models.GroupMember) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.GroupMember
		err := tx.Where("group_id = ? AND user_id = ?", member.GroupID, member.UserID).
			First(&existing).Error

		if err == nil {
			// Already in desired state
			*member = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check membership: %w", err)
		}

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}
		return nil
	})
	return err
}

// Leave removes the membership row for (group, user)
func (r *GroupRepository) Leave(ctx context.Context, groupID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
	if err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}
	return nil
}

// CountMembers returns the number of membership rows for a group
func (r *GroupRepository) CountMembers(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ? AND status = ?", groupID, models.MembershipActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}
