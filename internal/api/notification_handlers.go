package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/logging"
)

// ListNotificationsHandler handles GET /notifications: the 50 most recent
// rows plus the unread counter.
func (h *Handlers) ListNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		list, err := h.deps.Services.Notifications.List(r.Context(), claims.UserID())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, list)
	}
}

// MarkNotificationReadHandler handles POST /notifications/{notificationID}/read.
func (h *Handlers) MarkNotificationReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		if err := h.deps.Services.Notifications.MarkRead(r.Context(), chi.URLParam(r, "notificationID"), claims.UserID()); err != nil {
			respondWithServiceError(w, err)
			return
		}

		msg := "Marked read"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

// MarkAllNotificationsReadHandler handles POST /notifications/read-all.
func (h *Handlers) MarkAllNotificationsReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		if err := h.deps.Services.Notifications.MarkAllRead(r.Context(), claims.UserID()); err != nil {
			respondWithServiceError(w, err)
			return
		}

		msg := "All marked read"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

// StreamNotificationsHandler handles GET /notifications/stream: a
// server-sent-events feed of the caller's realtime notification channel. The
// subscription is closed when the client disconnects, so a user switching
// accounts never receives another user's events.
func (h *Handlers) StreamNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			respondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
			return
		}

		sub, err := h.deps.Subscriber.Subscribe(r.Context(), claims.UserID())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		defer func() {
			if err := sub.Close(); err != nil {
				logging.Warn("Failed to close notification subscription",
					"user_id", claims.UserID(), "error", err.Error())
			}
		}()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case n, ok := <-sub.Notifications():
				if !ok {
					return
				}
				payload, err := json.Marshal(n)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
