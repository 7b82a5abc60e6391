package services

import (
	"context"
	"errors"
	"testing"

	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

func TestPostService_Create_Defaults(t *testing.T) {
	db := setupTestDB(t)
	posts := repositories.NewPostRepository(db)
	notifier := &mockNotifier{}
	svc := NewPostService(posts, notifier)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")

	post, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "God is good"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.Type != models.PostGeneral {
		t.Errorf("Expected default type general, got %s", post.Type)
	}
	if post.Status != models.PostPublished {
		t.Errorf("Expected published status, got %s", post.Status)
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(repositories.NewPostRepository(db), &mockNotifier{})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")

	_, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: ""})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty content, got %v", err)
	}

	_, err = svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "hi", Type: "rant"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown type, got %v", err)
	}
}

func TestPostService_ToggleReaction_NotifiesAuthorOnce(t *testing.T) {
	db := setupTestDB(t)
	posts := repositories.NewPostRepository(db)
	notifier := &mockNotifier{}
	svc := NewPostService(posts, notifier)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	reactor := createTestUser(t, db, "reactor@example.com")

	created, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "Testimony"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Landing a reaction notifies the author
	if _, err := svc.ToggleReaction(ctx, created.ID, reactor.ID, &requests.ReactRequest{Type: "amen"}); err != nil {
		t.Fatalf("ToggleReaction failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].UserID != author.ID {
		t.Errorf("Expected the author notified, got %s", notifier.sent[0].UserID)
	}
	if notifier.sent[0].Type != "post_reaction" {
		t.Errorf("Expected post_reaction type, got %s", notifier.sent[0].Type)
	}

	// Withdrawing it does not
	if _, err := svc.ToggleReaction(ctx, created.ID, reactor.ID, &requests.ReactRequest{Type: "amen"}); err != nil {
		t.Fatalf("ToggleReaction failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("Expected no notification on withdraw, got %d total", len(notifier.sent))
	}
}

func TestPostService_ToggleReaction_SelfReactionSilent(t *testing.T) {
	db := setupTestDB(t)
	notifier := &mockNotifier{}
	svc := NewPostService(repositories.NewPostRepository(db), notifier)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	created, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "My own post"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.ToggleReaction(ctx, created.ID, author.ID, &requests.ReactRequest{Type: "heart"}); err != nil {
		t.Fatalf("ToggleReaction failed: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("Expected no self-notification, got %d", len(notifier.sent))
	}
}

func TestPostService_AddComment(t *testing.T) {
	db := setupTestDB(t)
	notifier := &mockNotifier{}
	svc := NewPostService(repositories.NewPostRepository(db), notifier)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	commenter := createTestUser(t, db, "commenter@example.com")

	created, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "Prayer meeting tonight"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	post, err := svc.AddComment(ctx, created.ID, commenter.ID, &requests.AddCommentRequest{Content: "I'll be there"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(post.Comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(post.Comments))
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != "post_comment" {
		t.Errorf("Expected a post_comment notification for the author")
	}
}

func TestPostService_AddComment_OneLevelOfThreading(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(repositories.NewPostRepository(db), &mockNotifier{})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	replier := createTestUser(t, db, "replier@example.com")

	created, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "Announcement"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	post, err := svc.AddComment(ctx, created.ID, author.ID, &requests.AddCommentRequest{Content: "Top level"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	topLevel := post.Comments[0].ID

	// A reply to a top-level comment is fine
	post, err = svc.AddComment(ctx, created.ID, replier.ID, &requests.AddCommentRequest{
		Content:  "A reply",
		ParentID: &topLevel,
	})
	if err != nil {
		t.Fatalf("AddComment reply failed: %v", err)
	}

	var reply string
	for _, c := range post.Comments {
		if c.ParentID != nil {
			reply = c.ID
		}
	}
	if reply == "" {
		t.Fatal("Expected the reply to be stored with its parent id")
	}

	// A reply to a reply is not
	_, err = svc.AddComment(ctx, created.ID, author.ID, &requests.AddCommentRequest{
		Content:  "Too deep",
		ParentID: &reply,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a nested reply, got %v", err)
	}
}

func TestPostService_AddComment_ParentValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(repositories.NewPostRepository(db), &mockNotifier{})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")

	first, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "First post"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, author.ID, &requests.CreatePostRequest{Content: "Second post"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	withComment, err := svc.AddComment(ctx, first.ID, author.ID, &requests.AddCommentRequest{Content: "On the first"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	foreign := withComment.Comments[0].ID

	// Parent from another post
	_, err = svc.AddComment(ctx, second.ID, author.ID, &requests.AddCommentRequest{
		Content:  "Cross-post reply",
		ParentID: &foreign,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a cross-post parent, got %v", err)
	}

	// Parent that does not exist
	missing := "00000000-0000-0000-0000-000000000000"
	_, err = svc.AddComment(ctx, second.ID, author.ID, &requests.AddCommentRequest{
		Content:  "Orphan reply",
		ParentID: &missing,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a missing parent, got %v", err)
	}
}
