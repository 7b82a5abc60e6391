package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/models/dtos/requests"
	"lifewithchrist/community/internal/models/entities"
	models "lifewithchrist/community/internal/models/gorm"
)

// AdminUserRepo is the slice of the user repository the admin service needs.
type AdminUserRepo interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByStatus(ctx context.Context, status constants.UserStatus) ([]models.User, error)
	SetStatus(ctx context.Context, id string, status constants.UserStatus) (*models.User, error)
	SetRole(ctx context.Context, id string, role constants.Role) (*models.User, error)
}

// ModerationRepo is the moderation slice of the post repository.
type ModerationRepo interface {
	SetStatus(ctx context.Context, id string, status models.PostStatus) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
}

// StatsRepo is the aggregate query surface behind the dashboard.
type StatsRepo interface {
	MemberCountsByStatus(ctx context.Context) ([]entities.MemberCountRow, error)
	CountGroups(ctx context.Context) (int, error)
	CountUpcomingEvents(ctx context.Context) (int, error)
	CountPublishedPosts(ctx context.Context) (int, error)
	CountOpenPrayers(ctx context.Context) (int, error)
}

// AdminService implements member approval, role management, post moderation,
// and the dashboard.
type AdminService struct {
	users    AdminUserRepo
	posts    ModerationRepo
	stats    StatsRepo
	queue    EmailEnqueuer
	notifier Notifier
	metrics  *metrics.MetricsRegistry
}

func NewAdminService(users AdminUserRepo, posts ModerationRepo, stats StatsRepo, queue EmailEnqueuer, notifier Notifier, reg *metrics.MetricsRegistry) *AdminService {
	return &AdminService{
		users:    users,
		posts:    posts,
		stats:    stats,
		queue:    queue,
		notifier: notifier,
		metrics:  reg,
	}
}

// PendingMembers returns the approval queue, oldest first.
func (s *AdminService) PendingMembers(ctx context.Context) ([]models.User, error) {
	return s.users.ListByStatus(ctx, constants.StatusPending)
}

// SetMemberStatus moves a member between pending, approved, and suspended.
// Approval unlocks sign-in, queues the welcome email, and notifies the
// member.
func (s *AdminService) SetMemberStatus(ctx context.Context, userID string, req *requests.SetUserStatusRequest) (*models.User, error) {
	status := constants.UserStatus(req.Status)
	switch status {
	case constants.StatusPending, constants.StatusApproved, constants.StatusSuspended:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	user, err := s.users.SetStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	if status == constants.StatusApproved {
		s.onApproval(ctx, user)
	}

	return user, nil
}

// SetMemberRole changes a member's role.
func (s *AdminService) SetMemberRole(ctx context.Context, userID string, req *requests.SetUserRoleRequest) (*models.User, error) {
	role := constants.Role(req.Role)
	switch role {
	case constants.RoleMember, constants.RoleLeader, constants.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	return s.users.SetRole(ctx, userID, role)
}

// ModeratePost hides, deletes, or republishes a post.
func (s *AdminService) ModeratePost(ctx context.Context, postID string, req *requests.ModeratePostRequest) (*models.Post, error) {
	status := models.PostStatus(req.Status)
	switch status {
	case models.PostPublished, models.PostHidden, models.PostDeleted:
	default:
		return nil, fmt.Errorf("%w: unknown post status %q", ErrInvalidInput, req.Status)
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.posts.SetStatus(ctx, postID, status); err != nil {
		return nil, err
	}

	return s.posts.GetByID(ctx, postID)
}

// Dashboard runs the aggregate queries concurrently and assembles the
// community summary.
func (s *AdminService) Dashboard(ctx context.Context) (*entities.DashboardSummary, error) {
	summary := &entities.DashboardSummary{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.stats.MemberCountsByStatus(gctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			summary.TotalMembers += row.Count
			switch constants.UserStatus(row.Status) {
			case constants.StatusPending:
				summary.PendingMembers = row.Count
			case constants.StatusApproved:
				summary.ApprovedMembers = row.Count
			case constants.StatusSuspended:
				summary.SuspendedMembers = row.Count
			}
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.stats.CountGroups(gctx)
		summary.TotalGroups = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountUpcomingEvents(gctx)
		summary.UpcomingEvents = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountPublishedPosts(gctx)
		summary.PublishedPosts = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountOpenPrayers(gctx)
		summary.OpenPrayers = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *AdminService) onApproval(ctx context.Context, user *models.User) {
	if s.metrics != nil {
		s.metrics.ApprovalsTotal.Inc()
	}
	logging.Info("Member approved", "user_id", user.ID, "email", user.Email)

	task := &common.EmailTask{
		Function: constants.FnSendWelcomeEmail,
		Payload: map[string]interface{}{
			"email":     user.Email,
			"full_name": user.FullName,
		},
		Enqueued: time.Now(),
	}
	if err := s.queue.Enqueue(ctx, constants.EmailQueueStream, task); err != nil {
		logging.Warn("Failed to queue welcome email", "user_id", user.ID, "error", err.Error())
	} else if s.metrics != nil {
		s.metrics.EmailsQueued.Inc()
	}

	s.notifier.Notify(ctx, &models.Notification{
		UserID:  user.ID,
		Type:    "account_approved",
		Title:   "Welcome!",
		Message: "Your account has been approved. Welcome to the community.",
	})
}

// Interface checks against the concrete repositories.
var (
	_ AdminUserRepo  = (*repositories.UserRepository)(nil)
	_ ModerationRepo = (*repositories.PostRepository)(nil)
	_ StatsRepo      = (*repositories.StatsRepository)(nil)
)
