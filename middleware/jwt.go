package middleware

import (
	"bitwise74/auth-api/pkg/security"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewJWTMiddleware validates the bearer access token on protected routes.
// Validity is decided entirely by signature and embedded expiry; there is
// no server-side lookup for access tokens.
func NewJWTMiddleware() gin.HandlerFunc {
	secret := []byte(viper.GetString("jwt.secret"))

	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No authorization header",
				"requestID": requestID,
			})
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid authorization header",
				"requestID": requestID,
			})
			return
		}

		claims, err := security.ParseAccessToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse access token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRoles gates a route to callers holding at least one of the given
// roles. Must run after the JWT middleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		claims, ok := c.MustGet("claims").(*security.AccessClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})
			return
		}

		for _, want := range roles {
			for _, have := range claims.Roles {
				if want == have {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "insufficient_role",
			"requestID": requestID,
		})
	}
}
