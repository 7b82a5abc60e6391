package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/models/dtos/requests"
)

// PendingMembersHandler handles GET /admin/members/pending.
func (h *Handlers) PendingMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := h.deps.Services.Admin.PendingMembers(r.Context())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &members)
	}
}

// SetMemberStatusHandler handles PATCH /admin/members/{userID}/status.
func (h *Handlers) SetMemberStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SetUserStatusRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := h.deps.Services.Admin.SetMemberStatus(r.Context(), chi.URLParam(r, "userID"), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, user)
	}
}

// SetMemberRoleHandler handles PATCH /admin/members/{userID}/role.
func (h *Handlers) SetMemberRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SetUserRoleRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := h.deps.Services.Admin.SetMemberRole(r.Context(), chi.URLParam(r, "userID"), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, user)
	}
}

// ModeratePostHandler handles PATCH /admin/posts/{postID}/status.
func (h *Handlers) ModeratePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.ModeratePostRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		post, err := h.deps.Services.Admin.ModeratePost(r.Context(), chi.URLParam(r, "postID"), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, post)
	}
}

// DashboardHandler handles GET /admin/dashboard.
func (h *Handlers) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.deps.Services.Admin.Dashboard(r.Context())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, summary)
	}
}
