package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/logging"
	models "lifewithchrist/community/internal/models/gorm"
)

// Publisher pushes newly created notifications to the recipient's channel.
// Services depend on this interface so tests can drop in a no-op.
type Publisher interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}

// RedisPublisher is the production Publisher on Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

var _ Publisher = (*RedisPublisher)(nil)

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// PublishNotification sends the notification to notifications:<user_id>.
// Delivery is best-effort; the row is already persisted and will be picked up
// by the next list fetch if no subscriber is listening.
func (p *RedisPublisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	channel := constants.NotificationChannel(n.UserID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Subscription is an open push channel for one recipient. Close must be
// called when the consumer goes away, or on user change, to avoid duplicate
// delivery.
type Subscription struct {
	pubsub *redis.PubSub
	out    chan models.Notification
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Notifications is the stream of inbound notifications for the subscriber.
func (s *Subscription) Notifications() <-chan models.Notification {
	return s.out
}

// Close tears down the channel subscription and stops the pump goroutine.
// Safe to call more than once; later calls return the first result.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.pubsub.Close()
	})
	return s.closeErr
}

// Subscriber opens per-user notification subscriptions.
type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe opens the recipient's channel and pumps decoded notifications
// until Close is called or the context ends.
func (s *Subscriber) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	channel := constants.NotificationChannel(userID)
	pubsub := s.client.Subscribe(ctx, channel)

	// Force the subscription to be established before returning so callers
	// never miss messages published right after Subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		out:    make(chan models.Notification, 16),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.out)
		ch := pubsub.Channel()
		for {
			select {
			case <-sub.done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var n models.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					logging.Warn("Dropping malformed realtime notification", "channel", channel, "error", err.Error())
					continue
				}
				select {
				case sub.out <- n:
				case <-sub.done:
					return
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return sub, nil
}
