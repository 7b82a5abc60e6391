package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
)

// ListGroupsHandler handles GET /groups with optional category and search.
func (h *Handlers) ListGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repositories.GroupFilter{
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}

		groups, err := h.deps.Services.Groups.List(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &groups)
	}
}

// GetGroupHandler handles GET /groups/{groupID}.
func (h *Handlers) GetGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := h.deps.Services.Groups.Get(r.Context(), chi.URLParam(r, "groupID"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, group)
	}
}

// CreateGroupHandler handles POST /groups (leaders and admins).
func (h *Handlers) CreateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.CreateGroupRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		group, err := h.deps.Services.Groups.Create(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, group)
	}
}

// JoinGroupHandler handles POST /groups/{groupID}/join. Joining twice is not
// an error.
func (h *Handlers) JoinGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		group, err := h.deps.Services.Groups.Join(r.Context(), chi.URLParam(r, "groupID"), claims.UserID())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, group)
	}
}

// LeaveGroupHandler handles POST /groups/{groupID}/leave.
func (h *Handlers) LeaveGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		if err := h.deps.Services.Groups.Leave(r.Context(), chi.URLParam(r, "groupID"), claims.UserID()); err != nil {
			respondWithServiceError(w, err)
			return
		}

		msg := "Left group"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}
