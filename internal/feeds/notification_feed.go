package feeds

import (
	"sync"

	"lifewithchrist/community/internal/logging"
	models "lifewithchrist/community/internal/models/gorm"
)

// NotificationSource is an open push stream of notifications for one
// recipient. realtime.Subscription satisfies it.
type NotificationSource interface {
	Notifications() <-chan models.Notification
	Close() error
}

// NotificationFeed is the notification variant of Feed: on top of the fetched
// list it consumes a realtime source, prepending pushed notifications and
// counting unread ones. The attached source lives until Close.
type NotificationFeed struct {
	*Feed[models.Notification]

	mu     sync.Mutex
	unread int
	source NotificationSource
	stop   chan struct{}

	closeOnce sync.Once
}

func NewNotificationFeed(fetch FetchFunc[models.Notification], notice NoticeFunc) *NotificationFeed {
	return &NotificationFeed{
		Feed: New(fetch, notice),
		stop: make(chan struct{}),
	}
}

// Attach starts consuming the source. A previously attached source is closed
// first, so switching users never leaves a stale subscription delivering into
// the feed.
func (f *NotificationFeed) Attach(source NotificationSource) {
	f.mu.Lock()
	prev := f.source
	f.source = source
	f.mu.Unlock()

	if prev != nil {
		if err := prev.Close(); err != nil {
			logging.Warn("Failed to close previous notification source", "error", err.Error())
		}
	}

	go func() {
		for {
			select {
			case <-f.stop:
				return
			case n, ok := <-source.Notifications():
				if !ok {
					return
				}
				f.Prepend(n)
				f.mu.Lock()
				f.unread++
				f.mu.Unlock()
			}
		}
	}()
}

// Unread returns the count of pushed-in notifications not yet acknowledged.
func (f *NotificationFeed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// MarkAllRead zeroes the unread counter. The server rows are marked read
// separately through the notification service.
func (f *NotificationFeed) MarkAllRead() {
	f.mu.Lock()
	f.unread = 0
	f.mu.Unlock()
}

// Close tears down the attached source and the underlying feed. Safe to call
// more than once.
func (f *NotificationFeed) Close() {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		source := f.source
		f.source = nil
		f.mu.Unlock()

		close(f.stop)
		if source != nil {
			if err := source.Close(); err != nil {
				logging.Warn("Failed to close notification source", "error", err.Error())
			}
		}
		f.Feed.Close()
	})
}
