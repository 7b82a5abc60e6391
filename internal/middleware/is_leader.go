package middleware

import (
	"net/http"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
)

// IsLeaderMiddleware admits leaders and admins.
func IsLeaderMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			switch claims.Role() {
			case constants.RoleLeader.String(), constants.RoleAdmin.String():
				next.ServeHTTP(w, r)
			default:
				http.Error(w, constants.MsgLeaderRequired, http.StatusForbidden)
			}
		})
	}
}
