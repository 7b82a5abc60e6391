package services

import (
	"context"
	"errors"
	"testing"

	"lifewithchrist/community/internal/db/repositories"
	models "lifewithchrist/community/internal/models/gorm"
)

func TestNotificationService_Notify_PersistsAndPublishes(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	publisher := &mockPublisher{}
	svc := NewNotificationService(repo, publisher, nil)
	ctx := context.Background()

	recipient := createTestUser(t, db, "recipient@example.com")

	svc.Notify(ctx, &models.Notification{
		UserID:  recipient.ID,
		Type:    "post_reaction",
		Title:   "New reaction",
		Message: "Someone said amen",
	})

	list, err := svc.List(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(list.Notifications))
	}
	if list.UnreadCount != 1 {
		t.Errorf("Expected unread count 1, got %d", list.UnreadCount)
	}
	if len(publisher.published) != 1 {
		t.Errorf("Expected 1 realtime push, got %d", len(publisher.published))
	}
}

func TestNotificationService_Notify_PublishFailureIsSilent(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	publisher := &mockPublisher{
		publishFunc: func(ctx context.Context, n *models.Notification) error {
			return errors.New("redis down")
		},
	}
	svc := NewNotificationService(repo, publisher, nil)
	ctx := context.Background()

	recipient := createTestUser(t, db, "recipient@example.com")

	// Must not panic or surface the error; the row is still persisted.
	svc.Notify(ctx, &models.Notification{
		UserID:  recipient.ID,
		Type:    "post_comment",
		Title:   "New comment",
		Message: "See the thread",
	})

	list, err := svc.List(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Notifications) != 1 {
		t.Errorf("Expected the row persisted despite push failure, got %d", len(list.Notifications))
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	svc := NewNotificationService(repo, &mockPublisher{}, nil)
	ctx := context.Background()

	recipient := createTestUser(t, db, "recipient@example.com")

	for i := 0; i < 2; i++ {
		svc.Notify(ctx, &models.Notification{
			UserID:  recipient.ID,
			Type:    "group_join",
			Title:   "New member",
			Message: "Someone joined",
		})
	}

	if err := svc.MarkAllRead(ctx, recipient.ID); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	list, err := svc.List(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list.UnreadCount != 0 {
		t.Errorf("Expected 0 unread, got %d", list.UnreadCount)
	}
}
