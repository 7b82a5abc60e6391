package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

// PostRepo is the slice of the post repository the service needs.
type PostRepo interface {
	List(ctx context.Context, filter repositories.PostFilter) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	ToggleReaction(ctx context.Context, postID, userID string, reactionType models.ReactionType) (bool, error)
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	AddComment(ctx context.Context, comment *models.Comment) error
}

// PostService implements the community feed: posts, exclusive reactions, and
// comments, with notification fan-out to the post author.
type PostService struct {
	posts    PostRepo
	notifier Notifier
}

func NewPostService(posts PostRepo, notifier Notifier) *PostService {
	return &PostService{
		posts:    posts,
		notifier: notifier,
	}
}

// List returns the published feed, optionally narrowed by type or group.
func (s *PostService) List(ctx context.Context, filter repositories.PostFilter) ([]models.Post, error) {
	return s.posts.List(ctx, filter)
}

// Get returns one post with its reactions and comments.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create publishes a new post authored by the caller.
func (s *PostService) Create(ctx context.Context, authorID string, req *requests.CreatePostRequest) (*models.Post, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	post := &models.Post{
		AuthorID:  authorID,
		Content:   req.Content,
		Type:      models.PostGeneral,
		MediaURLs: req.MediaURLs,
		GroupID:   req.GroupID,
		Tags:      req.Tags,
		Status:    models.PostPublished,
	}
	if req.Type != "" {
		switch t := models.PostType(req.Type); t {
		case models.PostTestimony, models.PostPrayer, models.PostAnnouncement, models.PostGeneral:
			post.Type = t
		default:
			return nil, fmt.Errorf("%w: unknown post type %q", ErrInvalidInput, req.Type)
		}
	}
	if req.Visibility != "" {
		switch v := models.PostVisibility(req.Visibility); v {
		case models.VisibilityPublic, models.VisibilityGroups, models.VisibilityLeaders:
			post.Visibility = v
		default:
			return nil, fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, req.Visibility)
		}
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.posts.GetByID(ctx, post.ID)
}

// ToggleReaction applies the exclusive reaction toggle and returns the
// refreshed post. The author is notified only when a reaction lands, not when
// one is withdrawn.
func (s *PostService) ToggleReaction(ctx context.Context, postID, userID string, req *requests.ReactRequest) (*models.Post, error) {
	reactionType := models.ReactionType(req.Type)
	switch reactionType {
	case models.ReactionAmen, models.ReactionPray, models.ReactionHeart:
	default:
		return nil, fmt.Errorf("%w: unknown reaction type %q", ErrInvalidInput, req.Type)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	active, err := s.posts.ToggleReaction(ctx, postID, userID, reactionType)
	if err != nil {
		return nil, err
	}

	if active && post.AuthorID != userID {
		s.notifier.Notify(ctx, &models.Notification{
			UserID:  post.AuthorID,
			Type:    "post_reaction",
			Title:   "New reaction",
			Message: fmt.Sprintf("Someone reacted %s to your post", reactionType),
			ActorID: &userID,
			Context: models.Context{"post_id": postID, "reaction": string(reactionType)},
		})
	}

	return s.posts.GetByID(ctx, postID)
}

// AddComment appends a comment and notifies the post author.
func (s *PostService) AddComment(ctx context.Context, postID, authorID string, req *requests.AddCommentRequest) (*models.Post, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Threading stops at one level: a reply must target a top-level comment
	// on the same post.
	if req.ParentID != nil {
		parent, err := s.posts.GetComment(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent comment not found", ErrInvalidInput)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", ErrInvalidInput)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: replies cannot be nested deeper", ErrInvalidInput)
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		s.notifier.Notify(ctx, &models.Notification{
			UserID:  post.AuthorID,
			Type:    "post_comment",
			Title:   "New comment",
			Message: "Someone commented on your post",
			ActorID: &authorID,
			Context: models.Context{"post_id": postID, "comment_id": comment.ID},
		})
	}

	return s.posts.GetByID(ctx, postID)
}
