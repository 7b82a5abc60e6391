package gorm

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The repository and service tests migrate these models onto sqlite, so the
// schema tags must stay dialect-neutral. Ids come from the BeforeCreate
// hooks, not column defaults.
func TestAutoMigrateAllModels(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&User{},
		&Credential{},
		&Post{},
		&PostReaction{},
		&Comment{},
		&Group{},
		&GroupMember{},
		&Event{},
		&EventRSVP{},
		&PrayerRequest{},
		&PrayerResponse{},
		&PrayerUpdate{},
		&Devotional{},
		&DevotionalReaction{},
		&DevotionalSubscriber{},
		&Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	user := &User{Email: "member@example.com", FullName: "Member"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == "" {
		t.Error("Expected the create hook to assign an id")
	}
}
