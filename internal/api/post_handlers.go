package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/models/dtos/requests"
	models "lifewithchrist/community/internal/models/gorm"
)

// ListPostsHandler handles GET /posts with optional type and group_id filters.
func (h *Handlers) ListPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repositories.PostFilter{
			Type:    models.PostType(r.URL.Query().Get("type")),
			GroupID: r.URL.Query().Get("group_id"),
		}

		posts, err := h.deps.Services.Posts.List(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &posts)
	}
}

// GetPostHandler handles GET /posts/{postID}.
func (h *Handlers) GetPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.deps.Services.Posts.Get(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, post)
	}
}

// CreatePostHandler handles POST /posts.
func (h *Handlers) CreatePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.CreatePostRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		post, err := h.deps.Services.Posts.Create(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, post)
	}
}

// ReactToPostHandler handles POST /posts/{postID}/reactions.
func (h *Handlers) ReactToPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.ReactRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		post, err := h.deps.Services.Posts.ToggleReaction(r.Context(), chi.URLParam(r, "postID"), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, post)
	}
}

// AddCommentHandler handles POST /posts/{postID}/comments.
func (h *Handlers) AddCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.AddCommentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		post, err := h.deps.Services.Posts.AddComment(r.Context(), chi.URLParam(r, "postID"), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, post)
	}
}
