package domain

// Role of the calling user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleClient Role = "client"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleClient
}

// Actor the authenticated caller
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
