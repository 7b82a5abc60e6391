package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EmailQueueService provides the outbound email queue using Redis Streams.
// Mutations enqueue tasks; the email worker consumes them and calls the
// hosted functions runtime, so a slow email provider never blocks a request.
type EmailQueueService struct {
	client *redis.Client
}

func NewEmailQueueService(client *redis.Client) *EmailQueueService {
	return &EmailQueueService{
		client: client,
	}
}

// EmailTask is one outbound email to be delivered by a hosted function.
type EmailTask struct {
	Function string                 `json:"function"`
	Payload  map[string]interface{} `json:"payload"`
	Enqueued time.Time              `json:"enqueued"`
}

// Enqueue adds an email task to the stream.
// XADD stream_name * data <json>
func (s *EmailQueueService) Enqueue(ctx context.Context, streamName string, task *EmailTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal email task: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	return nil
}

// Dequeue reads one task from the stream using a consumer group.
// Returns (task, messageID, error); a nil task means the block timed out.
func (s *EmailQueueService) Dequeue(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*EmailTask, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			// No messages available (timeout)
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, "", fmt.Errorf("invalid message format: data field missing")
	}

	var task EmailTask
	if err := json.Unmarshal([]byte(dataStr), &task); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal email task: %w", err)
	}

	return &task, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *EmailQueueService) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *EmailQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists" {
		return nil
	}
	return err
}

// QueueLength returns the number of messages in the stream
func (s *EmailQueueService) QueueLength(ctx context.Context, streamName string) (int64, error) {
	length, err := s.client.XLen(ctx, streamName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}
