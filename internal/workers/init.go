package workers

import (
	"context"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/providers"
)

type WorkersContainer struct {
	Email *EmailWorker
}

// InitWorkers starts the background workers.
func InitWorkers(
	ctx context.Context,
	queue *common.EmailQueueService,
	functions providers.FunctionInvoker,
) *WorkersContainer {
	emailWorker := NewEmailWorker("email-worker", queue, functions)

	go emailWorker.Start(ctx)

	return &WorkersContainer{
		Email: emailWorker,
	}
}
