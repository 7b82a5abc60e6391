package repositories

import (
	"context"
	"testing"

	models "lifewithchrist/community/internal/models/gorm"
)

func createTestPrayer(t *testing.T, repo *PrayerRepository, authorID string) *models.PrayerRequest {
	request := &models.PrayerRequest{
		AuthorID: authorID,
		Title:    "Healing",
		Content:  "Please pray for my recovery",
		Category: "health",
		Status:   models.PrayerNeedsPrayer,
		Urgency:  models.UrgencyNormal,
	}
	if err := repo.Create(context.Background(), request); err != nil {
		t.Fatalf("Failed to create prayer request: %v", err)
	}
	return request
}

func TestPrayerRepository_ToggleResponse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPrayerRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	supporter := createTestUser(t, db, "supporter@example.com")
	request := createTestPrayer(t, repo, author.ID)

	active, err := repo.ToggleResponse(ctx, request.ID, supporter.ID, models.ResponsePrayed)
	if err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	if !active {
		t.Error("Expected response to be active after first toggle")
	}

	// Encouraged is independent of prayed
	active, err = repo.ToggleResponse(ctx, request.ID, supporter.ID, models.ResponseEncouraged)
	if err != nil {
		t.Fatalf("Encouraged toggle failed: %v", err)
	}
	if !active {
		t.Error("Expected encouraged response to be active")
	}

	var count int64
	db.Model(&models.PrayerResponse{}).Where("prayer_request_id = ? AND user_id = ?", request.ID, supporter.ID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 response rows, got %d", count)
	}

	active, err = repo.ToggleResponse(ctx, request.ID, supporter.ID, models.ResponsePrayed)
	if err != nil {
		t.Fatalf("Second prayed toggle failed: %v", err)
	}
	if active {
		t.Error("Expected prayed response to be removed")
	}

	db.Model(&models.PrayerResponse{}).Where("prayer_request_id = ? AND user_id = ?", request.ID, supporter.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 response row after withdraw, got %d", count)
	}
}

func TestPrayerRepository_UpdateStatusByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPrayerRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	other := createTestUser(t, db, "other@example.com")
	request := createTestPrayer(t, repo, author.ID)

	affected, err := repo.UpdateStatusByAuthor(ctx, request.ID, other.ID, models.PrayerAnswered)
	if err != nil {
		t.Fatalf("UpdateStatusByAuthor failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("Expected 0 rows for non-author, got %d", affected)
	}

	stored, err := repo.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Status != models.PrayerNeedsPrayer {
		t.Errorf("Expected status unchanged, got %s", stored.Status)
	}

	affected, err = repo.UpdateStatusByAuthor(ctx, request.ID, author.ID, models.PrayerAnswered)
	if err != nil {
		t.Fatalf("UpdateStatusByAuthor failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 row for author, got %d", affected)
	}

	stored, err = repo.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Status != models.PrayerAnswered {
		t.Errorf("Expected status answered, got %s", stored.Status)
	}
}

func TestPrayerRepository_List_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPrayerRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	open := createTestPrayer(t, repo, author.ID)
	answered := createTestPrayer(t, repo, author.ID)
	if _, err := repo.UpdateStatusByAuthor(ctx, answered.ID, author.ID, models.PrayerAnswered); err != nil {
		t.Fatalf("UpdateStatusByAuthor failed: %v", err)
	}

	requests, err := repo.List(ctx, PrayerFilter{Status: models.PrayerNeedsPrayer})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(requests))
	}
	if requests[0].ID != open.ID {
		t.Errorf("Expected the open request, got %s", requests[0].ID)
	}
}

func TestPrayerRepository_AddUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPrayerRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	request := createTestPrayer(t, repo, author.ID)

	update := &models.PrayerUpdate{PrayerRequestID: request.ID, Content: "Surgery went well"}
	if err := repo.AddUpdate(ctx, update); err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(stored.Updates) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(stored.Updates))
	}
	if stored.Updates[0].Content != "Surgery went well" {
		t.Errorf("Unexpected update content: %s", stored.Updates[0].Content)
	}
}
