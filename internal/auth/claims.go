package auth

import "lifewithchrist/community/internal/constants"

// UserClaims is what the middleware chain attaches to the request context
// after resolving a session to a profile.
type UserClaims interface {
	UserID() string
	Email() string
	Role() string
	Status() string
	Source() string
}

// SessionClaims are claims backed by a bearer-token session.
type SessionClaims struct {
	UserUUID    string
	EmailValue  string
	RoleValue   constants.Role
	StatusValue constants.UserStatus
}

func (c *SessionClaims) UserID() string { return c.UserUUID }
func (c *SessionClaims) Email() string  { return c.EmailValue }
func (c *SessionClaims) Role() string   { return c.RoleValue.String() }
func (c *SessionClaims) Status() string { return c.StatusValue.String() }
func (c *SessionClaims) Source() string { return "SESSION" }
