package middleware

import (
	"crypto/subtle"
	"strings"

	"petsitter/models"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware admits requests bearing the configured admin token. An empty
// configured token locks the admin API.
func AdminAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok || adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(tokenString), []byte(adminToken)) != 1 {
			utils.RespondError(c, utils.NewUnauthorizedError("Unauthorized admin access"))
			c.Abort()
			return
		}

		c.Set(ContextRole, string(models.RoleAdmin))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
