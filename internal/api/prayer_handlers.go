package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

// ListPrayersHandler handles GET /prayers with optional status and category
// filters.
func (h *Handlers) ListPrayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repositories.PrayerFilter{
			Status:   models.PrayerStatus(r.URL.Query().Get("status")),
			Category: r.URL.Query().Get("category"),
		}

		prayers, err := h.deps.Services.Prayers.List(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &prayers)
	}
}

// CreatePrayerHandler handles POST /prayers.
func (h *Handlers) CreatePrayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.CreatePrayerRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		prayer, err := h.deps.Services.Prayers.Create(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, prayer)
	}
}

// RespondToPrayerHandler handles POST /prayers/{prayerID}/respond. The type
// query parameter defaults to "prayed"; calling again with the same type
// withdraws the response.
func (h *Handlers) RespondToPrayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		responseType := models.PrayerResponseType(r.URL.Query().Get("type"))
		if responseType == "" {
			responseType = models.ResponsePrayed
		}

		prayer, err := h.deps.Services.Prayers.ToggleResponse(r.Context(), chi.URLParam(r, "prayerID"), claims.UserID(), responseType)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, prayer)
	}
}

// UpdatePrayerStatusHandler handles PATCH /prayers/{prayerID}/status.
// Author-only.
func (h *Handlers) UpdatePrayerStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.UpdatePrayerStatusRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		prayer, err := h.deps.Services.Prayers.UpdateStatus(r.Context(), chi.URLParam(r, "prayerID"), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, prayer)
	}
}
