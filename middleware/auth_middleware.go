package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/metrics"
	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const (
	userKey   = "user"
	claimsKey = "claims"
)

const invalidTokenMessage = "Invalid or missing token"

// TokenVerifier is the part of utils.TokenService the gate needs.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*utils.Claims, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// Authenticate requires `Authorization: Bearer <token>`, verifies the token
// and loads its user. Every failure gets the same 401 body; the reason only
// reaches the log and the auth_failures_total counter.
func Authenticate(tokens TokenVerifier, users UserFinder, logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	reject := func(c *gin.Context, reason string, err error) {
		m.RecordAuthFailure(reason)
		logger.Info("authentication rejected",
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", RequestID(c)),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": invalidTokenMessage})
	}

	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, "missing", nil)
			return
		}

		claims, err := tokens.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			reason := utils.TokenFailureReason(err)
			if reason == "error" {
				logger.Error("token verification failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			reject(c, reason, err)
			return
		}

		id, err := bson.ObjectIDFromHex(claims.UserID)
		if err != nil {
			reject(c, "malformed", err)
			return
		}
		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				reject(c, "user_not_found", err)
				return
			}
			logger.Error("load authenticated user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if claims.TokenVersion != user.TokenVersion {
			reject(c, "revoked", utils.ErrTokenRevoked)
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// bearerToken accepts exactly one "Bearer" scheme followed by a single
// space and a non-empty token with no further whitespace.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
