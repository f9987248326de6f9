package models

// Session carries the caller's identity for a single request.
type Session struct {
	UserID string
	Role   UserRole
}

// Anonymous reports whether no role was supplied.
func (s *Session) Anonymous() bool {
	return s == nil || s.Role == ""
}
