package handlers

import (
	"petsitter/middleware"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

// sessionAccountID is the account the auth middleware authenticated.
func sessionAccountID(c *gin.Context) string {
	return c.GetString(middleware.ContextAccountID)
}

// pairWithSession checks a client-supplied member_id or sitter_id against the session and
// defaults it when omitted.
func pairWithSession(c *gin.Context, field, claimed string) (string, error) {
	id := sessionAccountID(c)
	if id == "" {
		return "", utils.NewUnauthorizedError("Insufficient authorization")
	}
	if claimed != "" && claimed != id {
		return "", utils.NewForbiddenError(field + " does not match the signed-in account")
	}
	return id, nil
}

func badRequest(c *gin.Context, err error) {
	utils.RespondError(c, utils.NewValidationError("invalid input: "+err.Error()))
}
