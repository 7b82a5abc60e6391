package middleware

import (
	"net/http"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
)

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil || claims.Role() != constants.RoleAdmin.String() {
				http.Error(w, constants.MsgAdminRequired, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
