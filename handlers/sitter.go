package handlers

import (
	"net/http"

	"petsitter/models"
	"petsitter/services/sitter"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

type SitterHandler struct {
	Sitters sitter.SitterService
}

// AddServiceHandler handles POST /api/sitter/services.
func (h *SitterHandler) AddServiceHandler(c *gin.Context) {
	var input models.SitterService
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	sitterID, err := pairWithSession(c, "sitter_id", input.SitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	view, err := h.Sitters.AddService(c.Request.Context(), sitterID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ListServicesHandler handles GET /api/sitter/services for the signed-in sitter and
// GET /api/sitters/:id/services for members browsing.
func (h *SitterHandler) ListServicesHandler(c *gin.Context) {
	sitterID := c.Param("id")
	if sitterID == "" {
		sitterID = sessionAccountID(c)
	}
	views, err := h.Sitters.ListServices(c.Request.Context(), sitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// DeleteServiceHandler handles DELETE /api/sitter/services/:id.
func (h *SitterHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Sitters.DeleteService(c.Request.Context(), c.Param("id"), sessionAccountID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// AddPaymentMethodHandler handles POST /api/sitter/payment-methods.
func (h *SitterHandler) AddPaymentMethodHandler(c *gin.Context) {
	var input models.PaymentMethod
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	sitterID, err := pairWithSession(c, "sitter_id", input.SitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	pm, err := h.Sitters.AddPaymentMethod(c.Request.Context(), sitterID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pm)
}

// ListPaymentMethodsHandler handles GET /api/sitter/payment-methods.
func (h *SitterHandler) ListPaymentMethodsHandler(c *gin.Context) {
	methods, err := h.Sitters.ListPaymentMethods(c.Request.Context(), sessionAccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

// DeletePaymentMethodHandler handles DELETE /api/sitter/payment-methods/:id.
func (h *SitterHandler) DeletePaymentMethodHandler(c *gin.Context) {
	if err := h.Sitters.DeletePaymentMethod(c.Request.Context(), c.Param("id"), sessionAccountID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}

// PrimaryPaymentMethodHandler handles GET /api/sitters/:id/payment-method.
func (h *SitterHandler) PrimaryPaymentMethodHandler(c *gin.Context) {
	pm, err := h.Sitters.PrimaryPaymentMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pm)
}

// IncomeStatsHandler handles GET /api/sitter/income-stats.
func (h *SitterHandler) IncomeStatsHandler(c *gin.Context) {
	stats, err := h.Sitters.IncomeStats(c.Request.Context(), sessionAccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
