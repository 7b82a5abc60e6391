package responses

import (
	models "lifewithchrist/community/internal/models/gorm"
)

// SessionResponse is returned by sign-in and session restore.
type SessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// NotificationListResponse bundles the list with its unread counter so the
// client can render the badge without a second round trip.
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}
