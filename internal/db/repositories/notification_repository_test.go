package repositories

import (
	"context"
	"testing"

	models "lifewithchrist/community/internal/models/gorm"
)

func TestNotificationRepository_MarkReadScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	notification := &models.Notification{UserID: owner.ID, Type: "post_reaction", Title: "New reaction", Message: "Someone said amen"}
	if err := repo.Create(ctx, notification); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another user cannot mark it read
	if err := repo.MarkRead(ctx, notification.ID, other.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	count, err := repo.UnreadCount(ctx, owner.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected notification still unread, got count %d", count)
	}

	if err := repo.MarkRead(ctx, notification.ID, owner.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	count, err = repo.UnreadCount(ctx, owner.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 unread, got %d", count)
	}
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	for i := 0; i < 3; i++ {
		n := &models.Notification{UserID: owner.ID, Type: "post_comment", Title: "New comment", Message: "See the thread"}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	otherNotification := &models.Notification{UserID: other.ID, Type: "group_join", Title: "New member", Message: "Someone joined"}
	if err := repo.Create(ctx, otherNotification); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.MarkAllRead(ctx, owner.ID); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	count, err := repo.UnreadCount(ctx, owner.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 unread for owner, got %d", count)
	}

	count, err = repo.UnreadCount(ctx, other.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected other user's notification untouched, got %d", count)
	}
}

func TestNotificationRepository_ListForUser_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		n := &models.Notification{UserID: owner.ID, Type: "post_reaction", Title: title, Message: title}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	notifications, err := repo.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(notifications) != 3 {
		t.Fatalf("Expected 3 notifications, got %d", len(notifications))
	}
}
