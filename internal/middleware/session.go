package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ieve-api/internal/models"
)

// Session headers sent by the dashboards.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// ContextSessionKey is the gin context key storing the request session.
const ContextSessionKey = "session"

// Session attaches the caller identity from the session headers. Requests
// without headers get an anonymous session; unknown roles are ignored.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := &models.Session{
			UserID: strings.TrimSpace(c.GetHeader(HeaderUserID)),
		}
		role := models.UserRole(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		if role.Valid() {
			session.Role = role
		}
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session, or an anonymous
// one.
func CurrentSession(c *gin.Context) *models.Session {
	if value, ok := c.Get(ContextSessionKey); ok {
		if session, ok := value.(*models.Session); ok {
			return session
		}
	}
	return &models.Session{}
}
