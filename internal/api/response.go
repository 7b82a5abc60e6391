package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/constants"
	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/models/dtos/responses"
	"lifewithchrist/community/internal/services"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithServiceError maps the service failure taxonomy onto HTTP status
// codes. Unrecognized errors are logged and generalized so internals never
// leak to clients.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, services.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrNotAuthor):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEventFull):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, constants.MsgInvalidCredentials)
	case errors.Is(err, auth.ErrAccountPendingApproval):
		respondWithError(w, http.StatusForbidden, constants.MsgAccountPending)
	case errors.Is(err, auth.ErrProfileNotFound):
		respondWithError(w, http.StatusNotFound, constants.MsgProfileNotFound)
	default:
		logging.Error("Unhandled service error", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgRemoteUnavailable)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
