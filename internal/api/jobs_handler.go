package api

import (
	"log"
	"net/http"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/jobs"
)

// JobsHandler handles manual job triggering endpoints
type JobsHandler struct {
	digestJob *jobs.DevotionalDigestJob
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(digestJob *jobs.DevotionalDigestJob) *JobsHandler {
	return &JobsHandler{
		digestJob: digestJob,
	}
}

// TriggerDevotionalDigest handles POST /admin/jobs/devotional-digest,
// queueing the digest outside its daily schedule.
func (h *JobsHandler) TriggerDevotionalDigest() http.HandlerFunc {
	type result struct {
		Queued int `json:"queued"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		log.Printf("[JobsHandler] Devotional digest manually triggered by %s", claims.UserID())

		queued, err := h.digestJob.Run(r.Context())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &result{Queued: queued})
	}
}
