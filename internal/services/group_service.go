package services

import (
	"context"
	"fmt"

	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

// GroupRepo is the slice of the group repository the service needs.
type GroupRepo interface {
	List(ctx context.Context, filter repositories.GroupFilter) ([]models.Group, error)
	GetByID(ctx context.Context, id string) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Join(ctx context.Context, member *models.GroupMember) error
	Leave(ctx context.Context, groupID, userID string) error
	CountMembers(ctx context.Context, groupID string) (int64, error)
}

// GroupService implements ministry groups and memberships.
type GroupService struct {
	groups   GroupRepo
	notifier Notifier
}

func NewGroupService(groups GroupRepo, notifier Notifier) *GroupService {
	return &GroupService{
		groups:   groups,
		notifier: notifier,
	}
}

// List returns groups, optionally filtered by category or a free-text search
// over name and description.
func (s *GroupService) List(ctx context.Context, filter repositories.GroupFilter) ([]models.Group, error) {
	return s.groups.List(ctx, filter)
}

// Get returns one group with its membership roster.
func (s *GroupService) Get(ctx context.Context, id string) (*models.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// Create opens a new group with the caller as its leader. The leader also
// gets a membership row so the roster is never empty.
func (s *GroupService) Create(ctx context.Context, leaderID string, req *requests.CreateGroupRequest) (*models.Group, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	group := &models.Group{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Privacy:         models.GroupPublic,
		LeaderID:        leaderID,
		MeetingSchedule: req.MeetingSchedule,
		Tags:            req.Tags,
	}
	if req.Privacy != "" {
		switch p := models.GroupPrivacy(req.Privacy); p {
		case models.GroupPublic, models.GroupPrivate, models.GroupInviteOnly:
			group.Privacy = p
		default:
			return nil, fmt.Errorf("%w: unknown privacy %q", ErrInvalidInput, req.Privacy)
		}
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	leaderMember := &models.GroupMember{
		GroupID: group.ID,
		UserID:  leaderID,
		Role:    models.GroupRoleLeader,
		Status:  models.MembershipActive,
	}
	if err := s.groups.Join(ctx, leaderMember); err != nil {
		logging.Warn("Failed to seed leader membership",
			"group_id", group.ID, "user_id", leaderID, "error", err.Error())
	}

	return s.groups.GetByID(ctx, group.ID)
}

// Join adds the caller to the group. Joining a group the caller already
// belongs to is not an error; the existing membership stands.
func (s *GroupService) Join(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	member := &models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.GroupRoleMember,
		Status:  models.MembershipActive,
	}
	if err := s.groups.Join(ctx, member); err != nil {
		return nil, err
	}

	if group.LeaderID != userID {
		s.notifier.Notify(ctx, &models.Notification{
			UserID:  group.LeaderID,
			Type:    "group_join",
			Title:   "New group member",
			Message: fmt.Sprintf("Someone joined %s", group.Name),
			ActorID: &userID,
			Context: models.Context{"group_id": groupID},
		})
	}

	return s.groups.GetByID(ctx, groupID)
}

// Leave removes the caller's membership. Leaving a group the caller is not in
// is a no-op.
func (s *GroupService) Leave(ctx context.Context, groupID, userID string) error {
	return s.groups.Leave(ctx, groupID, userID)
}
