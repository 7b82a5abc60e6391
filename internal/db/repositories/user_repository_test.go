package repositories

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/constants"
)

func TestUserRepository_Rekey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "member@example.com")
	oldID := user.ID
	newID := "11111111-1111-1111-1111-111111111111"

	if err := repo.Rekey(ctx, oldID, newID); err != nil {
		t.Fatalf("Rekey failed: %v", err)
	}

	moved, err := repo.GetByID(ctx, newID)
	if err != nil {
		t.Fatalf("GetByID after rekey failed: %v", err)
	}
	if moved.Email != "member@example.com" {
		t.Errorf("Expected profile moved intact, got email %s", moved.Email)
	}

	if _, err := repo.GetByID(ctx, oldID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected old id gone, got %v", err)
	}

	// Running the same rekey again is a no-op
	if err := repo.Rekey(ctx, oldID, newID); err != nil {
		t.Errorf("Repeated rekey should not error: %v", err)
	}
	if err := repo.Rekey(ctx, newID, newID); err != nil {
		t.Errorf("Same-id rekey should not error: %v", err)
	}
}

func TestUserRepository_ListByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	approved := createTestUser(t, db, "approved@example.com")
	pending := createTestUser(t, db, "pending@example.com")
	if _, err := repo.SetStatus(ctx, pending.ID, constants.StatusPending); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	users, err := repo.ListByStatus(ctx, constants.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("Expected 1 pending user, got %d", len(users))
	}
	if users[0].ID != pending.ID {
		t.Errorf("Expected pending user, got %s", users[0].ID)
	}
	_ = approved
}

func TestUserRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "member@example.com")

	updated, err := repo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"full_name": "Updated Name",
		"bio":       "New here",
	})
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}
	if updated.FullName != "Updated Name" {
		t.Errorf("Expected updated name, got %s", updated.FullName)
	}
	if updated.Email != "member@example.com" {
		t.Errorf("Expected email untouched, got %s", updated.Email)
	}
}
