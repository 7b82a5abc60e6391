package middleware

import (
	"net/http"
	"strings"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/services"
)

// AuthMiddleware resolves the bearer token to a live session and its profile,
// attaching the claims to the request context. Requests without a valid
// session never reach the handlers behind it.
func AuthMiddleware(identity auth.IdentityProvider, account *services.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			session, err := identity.GetSession(r.Context(), token)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid or expired session", http.StatusUnauthorized)
				return
			}

			profile, err := account.ResolveProfile(r.Context(), session)
			if err != nil {
				http.Error(w, constants.MsgProfileNotFound, http.StatusUnauthorized)
				return
			}

			claims := &auth.SessionClaims{
				UserUUID:    profile.ID,
				EmailValue:  profile.Email,
				RoleValue:   profile.Role,
				StatusValue: profile.Status,
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
