package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickit/config"
	"github.com/DhavalSuthar-24/crickit/pkg/responses"
	"github.com/DhavalSuthar-24/crickit/pkg/token"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "bearer"
	ContextScorerIDKey      = "scorer_id"
	ContextScorerNameKey    = "scorer_name"
)

// AuthMiddleware validates the bearer token on scoring mutations.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeaderKey)
		if authHeader == "" {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || strings.ToLower(fields[0]) != authorizationTypeBearer {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format. Expected 'Bearer <token>'")
			return
		}

		claims, err := token.ValidateJWT(fields[1], config.GetConfig().JWT.Secret)
		if err != nil {
			responses.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(ContextScorerIDKey, claims.ScorerID)
		c.Set(ContextScorerNameKey, claims.Name)
		c.Next()
	}
}

// GetScorerIDFromContext extracts the authenticated scorer's id set by AuthMiddleware.
func GetScorerIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextScorerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
