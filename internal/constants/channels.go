package constants

import "fmt"

// Redis stream consumed by the email worker.
const EmailQueueStream = "email_queue"

// Function names exposed by the hosted functions runtime.
const (
	FnSendWelcomeEmail     = "send-welcome-email"
	FnSubscribeDevotionals = "subscribe-devotionals"
	FnCreateMeeting        = "create-meeting"
	FnSendDevotionalDigest = "send-devotional-digest"
)

// Action bound into the single-use unsubscribe links in digest emails.
const LinkActionUnsubscribe = "unsubscribe-devotionals"

// NotificationChannel returns the pub/sub channel that carries realtime
// notification inserts for a single recipient.
func NotificationChannel(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}
