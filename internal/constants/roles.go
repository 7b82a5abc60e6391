package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role mirrors the Postgres ENUM 'user_role'
type Role string

const (
	RoleMember Role = "member"
	RoleLeader Role = "leader"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string { return string(r) }

// UserStatus mirrors the Postgres ENUM 'user_status'. A session is only
// usable once the status reaches StatusApproved.
type UserStatus string

const (
	StatusPending   UserStatus = "pending"
	StatusApproved  UserStatus = "approved"
	StatusSuspended UserStatus = "suspended"
)

func (s UserStatus) String() string { return string(s) }

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("Role: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }

// Scan implements the sql.Scanner interface
func (s *UserStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = UserStatus(v)
	case []byte:
		*s = UserStatus(v)
	default:
		return fmt.Errorf("UserStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s UserStatus) Value() (driver.Value, error) { return string(s), nil }
