package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/metrics"
	"github.com/streamnexus/nexusbackend/models"
)

// Predicate decides whether an authenticated user may proceed.
type Predicate func(*models.User) bool

func IsAdmin(u *models.User) bool { return u != nil && u.IsAdmin }

// Authorize must run after Authenticate. A missing user is treated as an
// authentication failure, a failed predicate as 403.
func Authorize(allow Predicate, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			m.RecordAuthFailure("missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": invalidTokenMessage})
			return
		}
		if !allow(user) {
			m.RecordAuthFailure("forbidden")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
			return
		}
		c.Next()
	}
}

func RequireAdmin(m *metrics.Metrics) gin.HandlerFunc {
	return Authorize(IsAdmin, m)
}
