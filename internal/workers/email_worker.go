package workers

import (
	"context"
	"log"
	"time"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/providers"
)

const emailConsumerGroup = "email-workers"

// EmailWorker drains the email queue stream and delivers each task through
// the hosted functions runtime.
type EmailWorker struct {
	workerID  string
	queue     *common.EmailQueueService
	functions providers.FunctionInvoker
}

// NewEmailWorker creates a new email queue worker
func NewEmailWorker(workerID string, queue *common.EmailQueueService, functions providers.FunctionInvoker) *EmailWorker {
	return &EmailWorker{
		workerID:  workerID,
		queue:     queue,
		functions: functions,
	}
}

// Start consumes the queue until the context ends.
func (w *EmailWorker) Start(ctx context.Context) {
	log.Printf("[%s] Starting email worker", w.workerID)

	if err := w.queue.CreateConsumerGroup(ctx, constants.EmailQueueStream, emailConsumerGroup); err != nil {
		log.Printf("[%s] Warning - failed to create consumer group: %v", w.workerID, err)
	}

	processedCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Shutting down. Processed: %d, Errors: %d", w.workerID, processedCount, errorCount)
			return
		default:
			task, messageID, err := w.queue.Dequeue(ctx, constants.EmailQueueStream, emailConsumerGroup, w.workerID, 5*time.Second)
			if err != nil {
				log.Printf("[%s] Dequeue error: %v", w.workerID, err)
				errorCount++
				time.Sleep(time.Second)
				continue
			}
			if task == nil {
				continue
			}

			if err := w.deliver(ctx, task); err != nil {
				// Left unacked; the message stays pending for redelivery
				log.Printf("[%s] Delivery failed for %s: %v", w.workerID, task.Function, err)
				errorCount++
				continue
			}

			if err := w.queue.Ack(ctx, constants.EmailQueueStream, emailConsumerGroup, messageID); err != nil {
				log.Printf("[%s] Ack failed for message %s: %v", w.workerID, messageID, err)
				errorCount++
				continue
			}
			processedCount++
		}
	}
}

func (w *EmailWorker) deliver(ctx context.Context, task *common.EmailTask) error {
	start := time.Now()

	_, status, err := w.functions.Invoke(ctx, task.Function, task.Payload)
	if err != nil {
		return err
	}

	log.Printf("[%s] Delivered %s (status %d) in %s",
		w.workerID, task.Function, status, time.Since(start).Truncate(time.Millisecond))
	return nil
}
