package middleware

import (
	"context"

	"petsitter/models"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

// Keys the auth middleware sets on the gin context.
const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
)

// SessionVerifier checks a bearer token against the account's current session.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*utils.SessionClaims, error)
}

// JWTAuthMiddleware requires a valid member or sitter session and, when roles are given,
// one of those roles.
func JWTAuthMiddleware(verifier SessionVerifier, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, utils.NewUnauthorizedError("Missing or invalid Authorization header"))
			c.Abort()
			return
		}

		claims, err := verifier.VerifySession(c.Request.Context(), tokenString)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			utils.RespondError(c, utils.NewForbiddenError("this endpoint is not available to a "+claims.Role))
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func hasRole(role string, roles []models.Role) bool {
	for _, r := range roles {
		if string(r) == role {
			return true
		}
	}
	return false
}
