package jobs

import (
	"context"
	"time"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/metrics"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	devotionals *repositories.DevotionalRepository,
	queue *common.EmailQueueService,
	linkSigner *common.LinkSignerService,
	metricsReg *metrics.MetricsRegistry,
) *DevotionalDigestJob {
	digestJob := NewDevotionalDigestJob(devotionals, queue, linkSigner, metricsReg)

	// Queue the devotional digest once a day
	go digestJob.RunScheduled(ctx, 24*time.Hour)

	return digestJob
}
