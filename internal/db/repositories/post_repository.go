package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	models "lifewithchrist/community/internal/models/gorm"
)

// PostFilter narrows the post list; zero values mean "no filter".
type PostFilter struct {
	Type    models.PostType
	GroupID string
}

// PostRepository manages community posts, reactions, and comments
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// List returns published posts newest-first with author, reactions, and
// comments expanded.
func (r *PostRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	var posts []models.Post

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reactions").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC").Preload("Author")
		}).
		Where("status = ?", models.PostPublished).
		Order("created_at DESC")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.GroupID != "" {
		q = q.Where("group_id = ?", filter.GroupID)
	}

	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// GetByID returns one post with relations expanded
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reactions").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC").Preload("Author")
		}).
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	return &post, nil
}

// Create inserts a post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// ToggleReaction applies the exclusive reaction rules in one transaction:
// reacting again with the same type removes it; reacting with a different
// type first clears the user's other reaction on the post. Returns true when
// a reaction is active after the call.
func (r *PostRepository) ToggleReaction(ctx context.Context, postID, userID string, reactionType models.ReactionType) (bool, error) {
	var active bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PostReaction
		err := tx.Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, reactionType).
			First(&existing).Error

		if err == nil {
			// Same type twice: remove, back to baseline
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove reaction: %w", err)
			}
			active = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check reaction: %w", err)
		}

		// At most one active reaction type per user per post
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.PostReaction{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous reaction: %w", err)
		}

		reaction := models.PostReaction{
			PostID: postID,
			UserID: userID,
			Type:   reactionType,
		}
		if err := tx.Create(&reaction).Error; err != nil {
			return fmt.Errorf("failed to add reaction: %w", err)
		}
		active = true
		return nil
	})

	return active, err
}

// GetComment returns one comment row.
func (r *PostRepository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}

	return &comment, nil
}

// AddComment inserts a comment; ParentID may point at a top-level comment for
// one level of threading.
func (r *PostRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// SetStatus moderates a post (hide, delete, republish)
func (r *PostRepository) SetStatus(ctx context.Context, id string, status models.PostStatus) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}
	return nil
}
