package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/constants"
	models "lifewithchrist/community/internal/models/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Post{},
		&models.PostReaction{},
		&models.Comment{},
		&models.Group{},
		&models.GroupMember{},
		&models.Event{},
		&models.EventRSVP{},
		&models.PrayerRequest{},
		&models.PrayerResponse{},
		&models.PrayerUpdate{},
		&models.Devotional{},
		&models.DevotionalReaction{},
		&models.DevotionalSubscriber{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		Email:    email,
		FullName: "Test User",
		Role:     constants.RoleMember,
		Status:   constants.StatusApproved,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// mockIdentity implements auth.IdentityProvider with function fields.
type mockIdentity struct {
	signUpFunc     func(ctx context.Context, email, password string, meta auth.SignUpMetadata) (string, error)
	signInFunc     func(ctx context.Context, email, password string) (*auth.Session, error)
	signOutFunc    func(ctx context.Context, token string) error
	getSessionFunc func(ctx context.Context, token string) (*auth.Session, error)

	signOutCalls int
}

func (m *mockIdentity) SignUp(ctx context.Context, email, password string, meta auth.SignUpMetadata) (string, error) {
	return m.signUpFunc(ctx, email, password, meta)
}

func (m *mockIdentity) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	return m.signInFunc(ctx, email, password)
}

func (m *mockIdentity) SignOut(ctx context.Context, token string) error {
	m.signOutCalls++
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, token)
	}
	return nil
}

func (m *mockIdentity) GetSession(ctx context.Context, token string) (*auth.Session, error) {
	return m.getSessionFunc(ctx, token)
}

// mockNotifier records the notifications other services fan out.
type mockNotifier struct {
	sent []*models.Notification
}

func (m *mockNotifier) Notify(ctx context.Context, n *models.Notification) {
	m.sent = append(m.sent, n)
}

// mockEnqueuer records queued email tasks.
type mockEnqueuer struct {
	tasks       []*common.EmailTask
	enqueueFunc func(ctx context.Context, streamName string, task *common.EmailTask) error
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, streamName string, task *common.EmailTask) error {
	m.tasks = append(m.tasks, task)
	if m.enqueueFunc != nil {
		return m.enqueueFunc(ctx, streamName, task)
	}
	return nil
}

// mockInvoker implements providers.FunctionInvoker with a function field.
type mockInvoker struct {
	invokeFunc func(ctx context.Context, name string, payload map[string]interface{}) (map[string]interface{}, int, error)
	calls      []string
}

func (m *mockInvoker) Invoke(ctx context.Context, name string, payload map[string]interface{}) (map[string]interface{}, int, error) {
	m.calls = append(m.calls, name)
	return m.invokeFunc(ctx, name, payload)
}

// mockPublisher records realtime pushes.
type mockPublisher struct {
	published   []*models.Notification
	publishFunc func(ctx context.Context, n *models.Notification) error
}

func (m *mockPublisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	m.published = append(m.published, n)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, n)
	}
	return nil
}
