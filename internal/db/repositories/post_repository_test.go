package repositories

import (
	"context"
	"testing"

	models "lifewithchrist/community/internal/models/gorm"
)

func TestPostRepository_ToggleReaction_SameTypeTwice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	reactor := createTestUser(t, db, "reactor@example.com")

	post := &models.Post{AuthorID: author.ID, Content: "Praise report", Status: models.PostPublished}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	active, err := repo.ToggleReaction(ctx, post.ID, reactor.ID, models.ReactionAmen)
	if err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	if !active {
		t.Error("Expected reaction to be active after first toggle")
	}

	active, err = repo.ToggleReaction(ctx, post.ID, reactor.ID, models.ReactionAmen)
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if active {
		t.Error("Expected reaction to be removed after second toggle")
	}

	var count int64
	db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 reaction rows, got %d", count)
	}
}

func TestPostRepository_ToggleReaction_SwitchesType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	reactor := createTestUser(t, db, "reactor@example.com")

	post := &models.Post{AuthorID: author.ID, Content: "Please pray", Status: models.PostPublished}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	if _, err := repo.ToggleReaction(ctx, post.ID, reactor.ID, models.ReactionAmen); err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	active, err := repo.ToggleReaction(ctx, post.ID, reactor.ID, models.ReactionPray)
	if err != nil {
		t.Fatalf("Switch toggle failed: %v", err)
	}
	if !active {
		t.Error("Expected new reaction to be active")
	}

	var reactions []models.PostReaction
	db.Where("post_id = ? AND user_id = ?", post.ID, reactor.ID).Find(&reactions)
	if len(reactions) != 1 {
		t.Fatalf("Expected exactly 1 reaction row, got %d", len(reactions))
	}
	if reactions[0].Type != models.ReactionPray {
		t.Errorf("Expected reaction type pray, got %s", reactions[0].Type)
	}
}

func TestPostRepository_List_OnlyPublished(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")

	published := &models.Post{AuthorID: author.ID, Content: "visible", Status: models.PostPublished}
	hidden := &models.Post{AuthorID: author.ID, Content: "hidden", Status: models.PostHidden}
	if err := repo.Create(ctx, published); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	if err := repo.Create(ctx, hidden); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	posts, err := repo.List(ctx, PostFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	if posts[0].ID != published.ID {
		t.Errorf("Expected the published post, got %s", posts[0].ID)
	}
}

func TestPostRepository_SetStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	post := &models.Post{AuthorID: author.ID, Content: "off topic", Status: models.PostPublished}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	if err := repo.SetStatus(ctx, post.ID, models.PostHidden); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Status != models.PostHidden {
		t.Errorf("Expected status hidden, got %s", stored.Status)
	}
}
