package services

import (
	"context"
	"testing"

	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

func TestGroupService_Create_SeedsLeaderMembership(t *testing.T) {
	db := setupTestDB(t)
	groups := repositories.NewGroupRepository(db)
	svc := NewGroupService(groups, &mockNotifier{})
	ctx := context.Background()

	leader := createTestUser(t, db, "leader@example.com")

	group, err := svc.Create(ctx, leader.ID, &requests.CreateGroupRequest{
		Name:     "Men's Fellowship",
		Category: "fellowship",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if group.LeaderID != leader.ID {
		t.Errorf("Expected caller as leader, got %s", group.LeaderID)
	}
	if len(group.Members) != 1 {
		t.Fatalf("Expected the leader seeded as a member, got %d members", len(group.Members))
	}
	if group.Members[0].Role != models.GroupRoleLeader {
		t.Errorf("Expected leader role on seeded membership, got %s", group.Members[0].Role)
	}
}

func TestGroupService_Join_NotifiesLeader(t *testing.T) {
	db := setupTestDB(t)
	groups := repositories.NewGroupRepository(db)
	notifier := &mockNotifier{}
	svc := NewGroupService(groups, notifier)
	ctx := context.Background()

	leader := createTestUser(t, db, "leader@example.com")
	member := createTestUser(t, db, "member@example.com")

	group, err := svc.Create(ctx, leader.ID, &requests.CreateGroupRequest{Name: "Youth"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	joined, err := svc.Join(ctx, group.ID, member.ID)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if len(joined.Members) != 2 {
		t.Errorf("Expected 2 members, got %d", len(joined.Members))
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].UserID != leader.ID || notifier.sent[0].Type != "group_join" {
		t.Error("Expected a group_join notification for the leader")
	}

	// Joining again keeps the existing membership and stays quiet about dupes
	again, err := svc.Join(ctx, group.ID, member.ID)
	if err != nil {
		t.Fatalf("Second join failed: %v", err)
	}
	if len(again.Members) != 2 {
		t.Errorf("Expected membership unchanged, got %d members", len(again.Members))
	}
}

func TestGroupService_Leave(t *testing.T) {
	db := setupTestDB(t)
	groups := repositories.NewGroupRepository(db)
	svc := NewGroupService(groups, &mockNotifier{})
	ctx := context.Background()

	leader := createTestUser(t, db, "leader@example.com")
	member := createTestUser(t, db, "member@example.com")

	group, err := svc.Create(ctx, leader.ID, &requests.CreateGroupRequest{Name: "Outreach"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Join(ctx, group.ID, member.ID); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	if err := svc.Leave(ctx, group.ID, member.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}

	got, err := svc.Get(ctx, group.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Members) != 1 {
		t.Errorf("Expected only the leader left, got %d members", len(got.Members))
	}
}
