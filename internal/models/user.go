package models

// UserRole represents the roles a dashboard user can act as.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User represents an account stored in the users table.
type User struct {
	ID       string   `db:"id" json:"id"`
	Username string   `db:"username" json:"username"`
	Role     UserRole `db:"role" json:"role"`
}
