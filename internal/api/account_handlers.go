package api

import (
	"net/http"
	"strings"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/models/dtos/requests"
)

// SignUpHandler handles POST /auth/signup. New accounts land in the pending
// status; the response carries the profile but no session.
func (h *Handlers) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SignUpRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" || req.FullName == "" {
			respondWithError(w, http.StatusBadRequest, "Email, password, and full name are required")
			return
		}

		profile, err := h.deps.Services.Account.SignUp(r.Context(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, profile)
	}
}

// SignInHandler handles POST /auth/signin.
func (h *Handlers) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SignInRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		session, err := h.deps.Services.Account.SignIn(r.Context(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, session)
	}
}

// SignOutHandler handles POST /auth/signout. It succeeds even when the token
// is stale; the caller is signed out either way.
func (h *Handlers) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		h.deps.Services.Account.SignOut(r.Context(), token)

		msg := "Signed out"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

// SessionHandler handles GET /auth/session: it restores the account state
// from a stored token. The response distinguishes an authenticated profile
// from a settled anonymous state; it is never an error.
func (h *Handlers) SessionHandler() http.HandlerFunc {
	type sessionState struct {
		Phase string      `json:"phase"`
		User  interface{} `json:"user,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		state := h.deps.Services.Account.CheckSession(r.Context(), bearerToken(r))

		resp := sessionState{Phase: string(state.Phase)}
		if state.Profile != nil {
			resp.User = state.Profile
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// MeHandler handles GET /me for authenticated callers.
func (h *Handlers) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		profile, err := h.deps.Repo.Users.GetByID(r.Context(), claims.UserID())
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, profile)
	}
}

// UpdateProfileHandler handles PATCH /me.
func (h *Handlers) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		var req requests.UpdateProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		profile, err := h.deps.Services.Account.UpdateProfile(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, profile)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
