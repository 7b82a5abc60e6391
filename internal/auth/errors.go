package auth

import "errors"

// Failure taxonomy surfaced by the identity provider and the account service.
// Only ErrInvalidCredentials and ErrAccountPendingApproval are rendered to
// users verbatim; the rest are logged and generalized at the API boundary.
var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountPendingApproval = errors.New("account pending approval")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrRemoteUnavailable      = errors.New("remote service unavailable")
)
