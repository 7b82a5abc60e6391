package repositories

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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
