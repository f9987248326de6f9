package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ieve-api/internal/models"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
	"github.com/noah-isme/ieve-api/pkg/response"
)

// RBAC restricts a route to the given session roles. When enforce is false
// every request passes.
func RBAC(enforce bool, allowed ...models.UserRole) gin.HandlerFunc {
	allowedRoles := make(map[models.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		if !enforce {
			c.Next()
			return
		}
		session := CurrentSession(c)
		if _, ok := allowedRoles[session.Role]; ok {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
	}
}
