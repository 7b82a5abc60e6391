package constants

// User-facing messages returned through the API envelope. Everything else is
// logged server-side and generalized before it reaches a client.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgAccountPending     = "Account pending approval"
	MsgAccountSuspended   = "This account has been suspended"
	MsgProfileNotFound    = "No profile exists for this account"
	MsgRemoteUnavailable  = "Something went wrong. Please try again."
	MsgAdminRequired      = "This action requires administrator privileges"
	MsgLeaderRequired     = "This action requires leader privileges"
	MsgApprovalRequired   = "Your account is still being reviewed by our community leaders"
)
