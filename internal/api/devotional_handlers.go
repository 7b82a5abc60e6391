package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

const todaysDevotionalCacheKey = "devotional:today"

// ListDevotionalsHandler handles GET /devotionals with optional tag and
// search filters.
func (h *Handlers) ListDevotionalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repositories.DevotionalFilter{
			Tag:    r.URL.Query().Get("tag"),
			Search: r.URL.Query().Get("search"),
		}

		devotionals, err := h.deps.Services.Devotionals.List(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &devotionals)
	}
}

// TodaysDevotionalHandler handles GET /devotionals/today. The result is
// cached briefly since every member hits this on the home screen.
func (h *Handlers) TodaysDevotionalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		val, err := h.deps.Services.Cache.GetOrSet(todaysDevotionalCacheKey, 5*time.Minute, func() (any, error) {
			return h.deps.Services.Devotionals.Today(r.Context())
		})
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		devotional, ok := val.(*models.Devotional)
		if !ok {
			respondWithError(w, http.StatusInternalServerError, constants.MsgRemoteUnavailable)
			return
		}
		respondWithSuccess(w, http.StatusOK, devotional)
	}
}

// GetDevotionalHandler handles GET /devotionals/{devotionalID}.
func (h *Handlers) GetDevotionalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devotional, err := h.deps.Services.Devotionals.Get(r.Context(), chi.URLParam(r, "devotionalID"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, devotional)
	}
}

// CreateDevotionalHandler handles POST /devotionals (leaders and admins).
func (h *Handlers) CreateDevotionalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var devotional models.Devotional
		if !decodeJSON(w, r, &devotional) {
			return
		}

		created, err := h.deps.Services.Devotionals.Create(r.Context(), claims.UserID(), &devotional)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		// A new entry may become today's devotional immediately
		h.deps.Services.Cache.Delete(todaysDevotionalCacheKey)

		respondWithSuccess(w, http.StatusCreated, created)
	}
}

// ReactToDevotionalHandler handles POST /devotionals/{devotionalID}/reactions.
func (h *Handlers) ReactToDevotionalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.ReactRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		devotional, err := h.deps.Services.Devotionals.ToggleReaction(
			r.Context(), chi.URLParam(r, "devotionalID"), claims.UserID(), models.DevotionalReactionType(req.Type))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, devotional)
	}
}

// SubscribeDevotionalsHandler handles POST /devotionals/subscribe. It is
// public: digest subscribers do not need an account.
func (h *Handlers) SubscribeDevotionalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SubscribeDevotionalsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := h.deps.Services.Devotionals.Subscribe(r.Context(), &req); err != nil {
			respondWithServiceError(w, err)
			return
		}

		msg := "Subscribed to daily devotionals"
		respondWithSuccess(w, http.StatusCreated, &msg)
	}
}

// UnsubscribeDevotionalsHandler handles GET /devotionals/unsubscribe. The
// token is the single-use signed link embedded in digest emails.
func (h *Handlers) UnsubscribeDevotionalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			respondWithError(w, http.StatusBadRequest, "Missing token")
			return
		}

		link, err := h.deps.Services.LinkSigner.ValidateLink(r.Context(), token)
		if err != nil || link.Action != constants.LinkActionUnsubscribe {
			respondWithError(w, http.StatusBadRequest, "Invalid or expired link")
			return
		}

		if err := h.deps.Services.Devotionals.Unsubscribe(r.Context(), link.Subject); err != nil {
			respondWithServiceError(w, err)
			return
		}
		if err := h.deps.Services.LinkSigner.MarkLinkUsed(r.Context(), link); err != nil {
			respondWithServiceError(w, err)
			return
		}

		msg := "Unsubscribed from daily devotionals"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}
