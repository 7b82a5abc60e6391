package repositories

import (
	"context"
	"testing"

	models "lifewithchrist/community/internal/models/gorm"
)

func TestGroupRepository_Join_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	leader := createTestUser(t, db, "leader@example.com")
	member := createTestUser(t, db, "member@example.com")

	group := &models.Group{Name: "Young Adults", LeaderID: leader.ID, Privacy: models.GroupPublic}
	if err := repo.Create(ctx, group); err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	first := &models.GroupMember{GroupID: group.ID, UserID: member.ID, Role: models.GroupRoleMember, Status: models.MembershipActive}
	if err := repo.Join(ctx, first); err != nil {
		t.Fatalf("First join failed: %v", err)
	}

	second := &models.GroupMember{GroupID: group.ID, UserID: member.ID, Role: models.GroupRoleMember, Status: models.MembershipActive}
	if err := repo.Join(ctx, second); err != nil {
		t.Fatalf("Second join should not error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected second join to return the existing row, got %s vs %s", second.ID, first.ID)
	}

	var count int64
	db.Model(&models.GroupMember{}).Where("group_id = ? AND user_id = ?", group.ID, member.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 membership row, got %d", count)
	}
}

func TestGroupRepository_LeaveAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	leader := createTestUser(t, db, "leader@example.com")
	member := createTestUser(t, db, "member@example.com")

	group := &models.Group{Name: "Choir", LeaderID: leader.ID, Privacy: models.GroupPublic}
	if err := repo.Create(ctx, group); err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	join := &models.GroupMember{GroupID: group.ID, UserID: member.ID, Role: models.GroupRoleMember, Status: models.MembershipActive}
	if err := repo.Join(ctx, join); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	count, err := repo.CountMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("CountMembers failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 member, got %d", count)
	}

	if err := repo.Leave(ctx, group.ID, member.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}

	count, err = repo.CountMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("CountMembers failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 members after leave, got %d", count)
	}

	// Leaving again is a no-op
	if err := repo.Leave(ctx, group.ID, member.ID); err != nil {
		t.Fatalf("Second leave should not error: %v", err)
	}
}

func TestGroupRepository_List_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	leader := createTestUser(t, db, "leader@example.com")

	groups := []*models.Group{
		{Name: "Bible Study", Description: "Weekly scripture study", LeaderID: leader.ID},
		{Name: "Worship Team", Description: "Sunday worship", LeaderID: leader.ID},
	}
	for _, g := range groups {
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("Failed to create group: %v", err)
		}
	}

	found, err := repo.List(ctx, GroupFilter{Search: "bible"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(found))
	}
	if found[0].Name != "Bible Study" {
		t.Errorf("Expected Bible Study, got %s", found[0].Name)
	}
}
