package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
)

// ListEventsHandler handles GET /events with optional category and window
// (upcoming or past) filters.
func (h *Handlers) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repositories.EventFilter{
			Category: r.URL.Query().Get("category"),
			Window:   repositories.EventTimeWindow(r.URL.Query().Get("window")),
		}

		events, err := h.deps.Services.Events.List(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &events)
	}
}

// GetEventHandler handles GET /events/{eventID}.
func (h *Handlers) GetEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := h.deps.Services.Events.Get(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, event)
	}
}

// CreateEventHandler handles POST /events (leaders and admins).
func (h *Handlers) CreateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.CreateEventRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		event, err := h.deps.Services.Events.Create(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, event)
	}
}

// RSVPHandler handles POST /events/{eventID}/rsvp. A repeat submission
// overwrites the caller's previous reply.
func (h *Handlers) RSVPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.RSVPRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		event, err := h.deps.Services.Events.RSVP(r.Context(), chi.URLParam(r, "eventID"), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, event)
	}
}

// ProvisionMeetingHandler handles POST /events/{eventID}/meeting, retrying
// online meeting creation for an event that does not have one yet.
func (h *Handlers) ProvisionMeetingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := h.deps.Services.Events.ProvisionMeeting(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, event)
	}
}
