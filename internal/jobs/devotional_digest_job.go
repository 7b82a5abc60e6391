package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/metrics"
	models "lifewithchrist/community/internal/models/gorm"
)

// DevotionalDigestJob queues one digest email per subscriber, carrying
// today's devotional and a single-use unsubscribe link.
type DevotionalDigestJob struct {
	devotionals *repositories.DevotionalRepository
	queue       *common.EmailQueueService
	linkSigner  *common.LinkSignerService
	metrics     *metrics.MetricsRegistry
}

// NewDevotionalDigestJob creates a new digest job
func NewDevotionalDigestJob(
	devotionals *repositories.DevotionalRepository,
	queue *common.EmailQueueService,
	linkSigner *common.LinkSignerService,
	metricsReg *metrics.MetricsRegistry,
) *DevotionalDigestJob {
	return &DevotionalDigestJob{
		devotionals: devotionals,
		queue:       queue,
		linkSigner:  linkSigner,
		metrics:     metricsReg,
	}
}

// Run queues the digest once. Returns the number of emails queued.
func (j *DevotionalDigestJob) Run(ctx context.Context) (int, error) {
	start := time.Now()
	log.Printf("[DevotionalDigestJob] Starting digest run at %s", start.Format(time.RFC3339))

	defer func() {
		if j.metrics != nil {
			j.metrics.DigestJobDuration.WithLabelValues("devotional_digest").Observe(time.Since(start).Seconds())
		}
	}()

	var devotional *models.Devotional
	err := common.RetryRead(ctx, 3, 500*time.Millisecond, func() error {
		var loadErr error
		devotional, loadErr = j.devotionals.GetForDate(ctx, time.Now())
		return loadErr
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load today's devotional: %w", err)
	}

	subscribers, err := j.devotionals.ListSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		log.Printf("[DevotionalDigestJob] No subscribers, nothing to queue")
		return 0, nil
	}

	queued := 0
	for _, sub := range subscribers {
		unsubToken, err := j.linkSigner.GenerateLink(sub.Email, constants.LinkActionUnsubscribe, 7*24*time.Hour)
		if err != nil {
			log.Printf("[DevotionalDigestJob] Failed to sign unsubscribe link for %s: %v", sub.Email, err)
			continue
		}

		task := &common.EmailTask{
			Function: constants.FnSendDevotionalDigest,
			Payload: map[string]interface{}{
				"email":             sub.Email,
				"timezone":          sub.Timezone,
				"time_preference":   sub.TimePreference,
				"devotional_id":     devotional.ID,
				"title":             devotional.Title,
				"scripture":         devotional.Scripture,
				"unsubscribe_token": unsubToken,
			},
			Enqueued: time.Now(),
		}
		if err := j.queue.Enqueue(ctx, constants.EmailQueueStream, task); err != nil {
			log.Printf("[DevotionalDigestJob] Failed to queue digest for %s: %v", sub.Email, err)
			continue
		}
		if j.metrics != nil {
			j.metrics.EmailsQueued.Inc()
		}
		queued++
	}

	log.Printf("[DevotionalDigestJob] Queued %d/%d digests in %s",
		queued, len(subscribers), time.Since(start).Truncate(time.Millisecond))
	return queued, nil
}

// RunScheduled runs the digest on a fixed interval until the context ends.
func (j *DevotionalDigestJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[DevotionalDigestJob] Scheduler stopped")
			return
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				log.Printf("[DevotionalDigestJob] Run failed: %v", err)
			}
		}
	}
}
