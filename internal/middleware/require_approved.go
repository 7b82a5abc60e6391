package middleware

import (
	"net/http"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
)

// RequireApprovedMiddleware gates member-only routes on the approval status.
// Pending and suspended accounts authenticate fine but see nothing behind it.
func RequireApprovedMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			switch claims.Status() {
			case constants.StatusApproved.String():
				next.ServeHTTP(w, r)
			case constants.StatusSuspended.String():
				http.Error(w, constants.MsgAccountSuspended, http.StatusForbidden)
			default:
				http.Error(w, constants.MsgApprovalRequired, http.StatusForbidden)
			}
		})
	}
}
