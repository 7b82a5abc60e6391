package services

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/models/dtos/requests"
	"lifewithchrist/community/internal/models/dtos/responses"
	models "lifewithchrist/community/internal/models/gorm"
)

// Phase is where the account state machine currently sits. It starts Unknown,
// passes through Loading during session resolution, and settles on
// Authenticated or Anonymous.
type Phase string

const (
	PhaseUnknown       Phase = "unknown"
	PhaseLoading       Phase = "loading"
	PhaseAuthenticated Phase = "authenticated"
	PhaseAnonymous     Phase = "anonymous"
)

// AccountState is one immutable snapshot of the machine. Profile is non-nil
// only in the Authenticated phase.
type AccountState struct {
	Phase   Phase
	Profile *models.User
	Token   string
}

// AccountUserRepo is the slice of the user repository the account service
// needs.
type AccountUserRepo interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	Rekey(ctx context.Context, fromID, toID string) error
	TouchActivity(ctx context.Context, id string) error
}

// AccountService keeps the login session and the profile record in sync.
// All transitions run under a single writer lock; reads take snapshots.
type AccountService struct {
	mu       sync.Mutex
	state    AccountState
	identity auth.IdentityProvider
	users    AccountUserRepo
	metrics  *metrics.MetricsRegistry
}

func NewAccountService(identity auth.IdentityProvider, users AccountUserRepo, reg *metrics.MetricsRegistry) *AccountService {
	return &AccountService{
		state:    AccountState{Phase: PhaseUnknown},
		identity: identity,
		users:    users,
		metrics:  reg,
	}
}

// State returns a copy of the current account state.
func (s *AccountService) State() AccountState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CheckSession resolves a bearer token to an authenticated state. It never
// returns an error: any failure, including the identity provider being
// unreachable, degrades to the Anonymous phase so callers always land in a
// settled state.
func (s *AccountService) CheckSession(ctx context.Context, token string) AccountState {
	s.mu.Lock()
	s.state = AccountState{Phase: PhaseLoading}
	s.mu.Unlock()

	settle := func(state AccountState) AccountState {
		s.mu.Lock()
		s.state = state
		s.mu.Unlock()
		return state
	}

	if token == "" {
		return settle(AccountState{Phase: PhaseAnonymous})
	}

	session, err := s.identity.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logging.Warn("Session check degraded to anonymous", "error", err.Error())
		}
		return settle(AccountState{Phase: PhaseAnonymous})
	}

	profile, err := s.resolveProfile(ctx, session)
	if err != nil {
		logging.Warn("Profile resolution failed during session check",
			"user_id", session.UserID, "error", err.Error())
		return settle(AccountState{Phase: PhaseAnonymous})
	}

	return settle(AccountState{
		Phase:   PhaseAuthenticated,
		Profile: profile,
		Token:   token,
	})
}

// SignUp registers a credential with the identity provider and creates the
// matching profile row, keyed by the new identity id. New accounts start in
// the pending status and cannot sign in until an admin approves them.
func (s *AccountService) SignUp(ctx context.Context, req *requests.SignUpRequest) (*models.User, error) {
	identityID, err := s.identity.SignUp(ctx, req.Email, req.Password, auth.SignUpMetadata{
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	profile := &models.User{
		ID:       identityID,
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
		Role:     constants.RoleMember,
		Status:   constants.StatusPending,
	}
	if req.ReasonForJoining != "" {
		profile.ReasonForJoining = &req.ReasonForJoining
	}
	if req.FaithJourney != "" {
		profile.FaithJourney = &req.FaithJourney
	}

	if err := s.users.Create(ctx, profile); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SignupsTotal.Inc()
	}
	logging.Info("New member registered", "user_id", profile.ID, "email", profile.Email)

	return profile, nil
}

// SignIn authenticates a credential, resolves the profile, and enforces the
// approval gate: a session opened for a non-approved account is revoked
// before the error is returned, so no half-authenticated state survives.
func (s *AccountService) SignIn(ctx context.Context, req *requests.SignInRequest) (*responses.SessionResponse, error) {
	session, err := s.identity.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.resolveProfile(ctx, session)
	if err != nil {
		s.revoke(ctx, session.Token)
		return nil, err
	}

	if profile.Status != constants.StatusApproved {
		s.revoke(ctx, session.Token)
		return nil, auth.ErrAccountPendingApproval
	}

	if err := s.users.TouchActivity(ctx, profile.ID); err != nil {
		logging.Warn("Failed to stamp last activity", "user_id", profile.ID, "error", err.Error())
	}

	s.mu.Lock()
	s.state = AccountState{
		Phase:   PhaseAuthenticated,
		Profile: profile,
		Token:   session.Token,
	}
	s.mu.Unlock()

	return &responses.SessionResponse{
		Token: session.Token,
		User:  profile,
	}, nil
}

// SignOut always clears the local state. The remote revocation is
// best-effort: if the identity provider is unreachable the session will
// simply expire on its own.
func (s *AccountService) SignOut(ctx context.Context, token string) {
	s.revoke(ctx, token)

	s.mu.Lock()
	s.state = AccountState{Phase: PhaseAnonymous}
	s.mu.Unlock()
}

// UpdateProfile applies a partial edit and returns the stored row.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req *requests.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}

	if len(fields) == 0 {
		return s.users.GetByID(ctx, userID)
	}

	updated, err := s.users.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state.Phase == PhaseAuthenticated && s.state.Profile != nil && s.state.Profile.ID == userID {
		s.state.Profile = updated
	}
	s.mu.Unlock()

	return updated, nil
}

// ResolveProfile loads the profile for a live session, repairing the key if
// needed. The middleware chain uses it to build request claims.
func (s *AccountService) ResolveProfile(ctx context.Context, session *auth.Session) (*models.User, error) {
	return s.resolveProfile(ctx, session)
}

// resolveProfile looks the profile up by identity id first. When that misses
// it falls back to the session email and, if the row sits under a stale id,
// re-keys it to the identity id. The repair is idempotent: once the row is
// stored under the identity id the fallback path is never taken again.
func (s *AccountService) resolveProfile(ctx context.Context, session *auth.Session) (*models.User, error) {
	profile, err := s.users.GetByID(ctx, session.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile, err = s.users.GetByEmail(ctx, session.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrProfileNotFound
		}
		return nil, err
	}

	if profile.ID != session.UserID {
		logging.Info("Repairing profile key",
			"email", session.Email, "from", profile.ID, "to", session.UserID)
		if err := s.users.Rekey(ctx, profile.ID, session.UserID); err != nil {
			return nil, err
		}
		return s.users.GetByID(ctx, session.UserID)
	}

	return profile, nil
}

func (s *AccountService) revoke(ctx context.Context, token string) {
	if err := s.identity.SignOut(ctx, token); err != nil {
		logging.Warn("Failed to revoke session", "error", err.Error())
	}
}
