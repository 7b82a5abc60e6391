package requests

import (
	"time"

	models "lifewithchrist/community/internal/models/gorm"
)

type CreatePostRequest struct {
	Content    string   `json:"content"`
	Type       string   `json:"type"`
	MediaURLs  []string `json:"media_urls,omitempty"`
	Visibility string   `json:"visibility,omitempty"`
	GroupID    *string  `json:"group_id,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type ReactRequest struct {
	Type string `json:"type"`
}

type AddCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

type CreateGroupRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Category        string                  `json:"category"`
	Privacy         string                  `json:"privacy,omitempty"`
	MeetingSchedule *models.MeetingSchedule `json:"meeting_schedule,omitempty"`
	Tags            []string                `json:"tags,omitempty"`
}

type CreateEventRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	StartTime     time.Time             `json:"start_time"`
	EndTime       time.Time             `json:"end_time"`
	Location      *models.EventLocation `json:"location,omitempty"`
	OnlineMeeting bool                  `json:"online_meeting,omitempty"`
	Category      string                `json:"category"`
	MaxAttendees  *int                  `json:"max_attendees,omitempty"`
	GroupID       *string               `json:"group_id,omitempty"`
	Tags          []string              `json:"tags,omitempty"`
}

type RSVPRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

type CreatePrayerRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency,omitempty"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

type UpdatePrayerStatusRequest struct {
	Status        string `json:"status"`
	UpdateMessage string `json:"update_message,omitempty"`
}

type SubscribeDevotionalsRequest struct {
	Email          string `json:"email"`
	TimePreference string `json:"time_preference,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
}

type SetUserStatusRequest struct {
	Status string `json:"status"`
}

type SetUserRoleRequest struct {
	Role string `json:"role"`
}

type ModeratePostRequest struct {
	Status string `json:"status"`
}
