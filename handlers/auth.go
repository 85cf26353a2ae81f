package handlers

import (
	"net/http"

	"petsitter/models"
	"petsitter/services/user"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Accounts user.AccountService
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Accounts.Register(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		getLogger(c).Info("login failed", zap.String("email", input.Email))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Accounts.Logout(c.Request.Context(), sessionAccountID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// UpdateFCMTokenHandler handles PUT /api/auth/fcm-token.
func (h *AuthHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Accounts.UpdateFCMToken(c.Request.Context(), sessionAccountID(c), input.FCMToken); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	account, err := h.Accounts.GetAccount(c.Request.Context(), sessionAccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}
