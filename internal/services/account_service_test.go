package services

import (
	"context"
	"errors"
	"testing"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
)

func TestAccountService_SignUp_StartsPending(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)

	identity := &mockIdentity{
		signUpFunc: func(ctx context.Context, email, password string, meta auth.SignUpMetadata) (string, error) {
			return "identity-123", nil
		},
	}

	svc := NewAccountService(identity, users, nil)

	profile, err := svc.SignUp(context.Background(), &requests.SignUpRequest{
		Email:    "new@example.com",
		Password: "secret",
		FullName: "New Member",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if profile.ID != "identity-123" {
		t.Errorf("Expected profile keyed by identity id, got %s", profile.ID)
	}
	if profile.Status != constants.StatusPending {
		t.Errorf("Expected new account pending, got %s", profile.Status)
	}
	if profile.Role != constants.RoleMember {
		t.Errorf("Expected member role, got %s", profile.Role)
	}
}

func TestAccountService_SignIn_PendingAccountRevoked(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	pending := createTestUser(t, db, "pending@example.com")
	if _, err := users.SetStatus(ctx, pending.ID, constants.StatusPending); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	identity := &mockIdentity{
		signInFunc: func(ctx context.Context, email, password string) (*auth.Session, error) {
			return &auth.Session{UserID: pending.ID, Email: email, Token: "token-1"}, nil
		},
	}

	svc := NewAccountService(identity, users, nil)

	_, err := svc.SignIn(ctx, &requests.SignInRequest{Email: "pending@example.com", Password: "secret"})
	if !errors.Is(err, auth.ErrAccountPendingApproval) {
		t.Fatalf("Expected ErrAccountPendingApproval, got %v", err)
	}
	if identity.signOutCalls != 1 {
		t.Errorf("Expected the session to be revoked, got %d revocations", identity.signOutCalls)
	}

	state := svc.State()
	if state.Phase == PhaseAuthenticated {
		t.Error("Expected no authenticated state to survive a rejected sign-in")
	}
}

func TestAccountService_SignIn_Approved(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	member := createTestUser(t, db, "member@example.com")

	identity := &mockIdentity{
		signInFunc: func(ctx context.Context, email, password string) (*auth.Session, error) {
			return &auth.Session{UserID: member.ID, Email: email, Token: "token-1"}, nil
		},
	}

	svc := NewAccountService(identity, users, nil)

	resp, err := svc.SignIn(ctx, &requests.SignInRequest{Email: "member@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if resp.Token != "token-1" {
		t.Errorf("Expected session token in response, got %q", resp.Token)
	}
	if resp.User == nil || resp.User.ID != member.ID {
		t.Fatal("Expected the resolved profile in the response")
	}

	state := svc.State()
	if state.Phase != PhaseAuthenticated {
		t.Errorf("Expected authenticated phase, got %s", state.Phase)
	}
	if state.Profile == nil || state.Profile.ID != member.ID {
		t.Error("Expected profile in the settled state")
	}

	stored, err := users.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.LastActivity == nil {
		t.Error("Expected last activity to be stamped")
	}
}

func TestAccountService_ResolveProfile_RepairsKey(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	stale := createTestUser(t, db, "moved@example.com")
	newID := "22222222-2222-2222-2222-222222222222"

	identity := &mockIdentity{}
	svc := NewAccountService(identity, users, nil)

	session := &auth.Session{UserID: newID, Email: "moved@example.com"}

	profile, err := svc.ResolveProfile(ctx, session)
	if err != nil {
		t.Fatalf("ResolveProfile failed: %v", err)
	}
	if profile.ID != newID {
		t.Errorf("Expected profile re-keyed to %s, got %s", newID, profile.ID)
	}
	if profile.Email != "moved@example.com" {
		t.Errorf("Expected profile intact after repair, got email %s", profile.Email)
	}

	// The repair is idempotent: the second resolution hits the id path.
	profile, err = svc.ResolveProfile(ctx, session)
	if err != nil {
		t.Fatalf("Second ResolveProfile failed: %v", err)
	}
	if profile.ID != newID {
		t.Errorf("Expected stable id %s, got %s", newID, profile.ID)
	}
	_ = stale
}

func TestAccountService_ResolveProfile_NoProfile(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)

	svc := NewAccountService(&mockIdentity{}, users, nil)

	_, err := svc.ResolveProfile(context.Background(), &auth.Session{
		UserID: "33333333-3333-3333-3333-333333333333",
		Email:  "ghost@example.com",
	})
	if !errors.Is(err, auth.ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}

func TestAccountService_CheckSession_DegradesToAnonymous(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	identity := &mockIdentity{
		getSessionFunc: func(ctx context.Context, token string) (*auth.Session, error) {
			return nil, errors.New("identity provider unreachable")
		},
	}
	svc := NewAccountService(identity, users, nil)

	state := svc.CheckSession(ctx, "some-token")
	if state.Phase != PhaseAnonymous {
		t.Errorf("Expected anonymous on identity failure, got %s", state.Phase)
	}

	state = svc.CheckSession(ctx, "")
	if state.Phase != PhaseAnonymous {
		t.Errorf("Expected anonymous for empty token, got %s", state.Phase)
	}
}

func TestAccountService_CheckSession_Authenticated(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	member := createTestUser(t, db, "member@example.com")

	identity := &mockIdentity{
		getSessionFunc: func(ctx context.Context, token string) (*auth.Session, error) {
			return &auth.Session{UserID: member.ID, Email: member.Email, Token: token}, nil
		},
	}
	svc := NewAccountService(identity, users, nil)

	state := svc.CheckSession(ctx, "token-1")
	if state.Phase != PhaseAuthenticated {
		t.Fatalf("Expected authenticated, got %s", state.Phase)
	}
	if state.Profile == nil || state.Profile.ID != member.ID {
		t.Error("Expected resolved profile in the state")
	}
	if state.Token != "token-1" {
		t.Errorf("Expected token carried in the state, got %q", state.Token)
	}
}

func TestAccountService_SignOut_RevocationFailureStillClearsState(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	member := createTestUser(t, db, "member@example.com")

	identity := &mockIdentity{
		signInFunc: func(ctx context.Context, email, password string) (*auth.Session, error) {
			return &auth.Session{UserID: member.ID, Email: email, Token: "token-1"}, nil
		},
		signOutFunc: func(ctx context.Context, token string) error {
			return errors.New("identity provider unreachable")
		},
	}
	svc := NewAccountService(identity, users, nil)

	if _, err := svc.SignIn(ctx, &requests.SignInRequest{Email: member.Email, Password: "secret"}); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	svc.SignOut(ctx, "token-1")

	if identity.signOutCalls != 1 {
		t.Errorf("Expected one revocation attempt, got %d", identity.signOutCalls)
	}
	state := svc.State()
	if state.Phase != PhaseAnonymous {
		t.Errorf("Expected anonymous after sign-out despite revocation failure, got %s", state.Phase)
	}
	if state.Profile != nil || state.Token != "" {
		t.Error("Expected no profile or token to survive sign-out")
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	users := repositories.NewUserRepository(db)
	ctx := context.Background()

	member := createTestUser(t, db, "member@example.com")
	svc := NewAccountService(&mockIdentity{}, users, nil)

	name := "Renamed Member"
	bio := "Serving in the choir"
	updated, err := svc.UpdateProfile(ctx, member.ID, &requests.UpdateProfileRequest{
		FullName: &name,
		Bio:      &bio,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.FullName != name {
		t.Errorf("Expected updated name, got %s", updated.FullName)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Error("Expected updated bio")
	}

	// An empty edit returns the stored row unchanged
	same, err := svc.UpdateProfile(ctx, member.ID, &requests.UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("Empty UpdateProfile failed: %v", err)
	}
	if same.FullName != name {
		t.Errorf("Expected unchanged row, got name %s", same.FullName)
	}
}
