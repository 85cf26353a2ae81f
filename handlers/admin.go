package handlers

import (
	"net/http"
	"strconv"
	"time"

	"petsitter/models"
	"petsitter/services/admin"
	"petsitter/services/booking"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Admin    admin.AdminService
	Bookings booking.BookingService
}

// ListSlipsHandler handles GET /api/admin/booking-slips?status=.
func (h *AdminHandler) ListSlipsHandler(c *gin.Context) {
	slips, err := h.Bookings.ListSlips(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingSlips": slips})
}

// SetSlipStatusHandler handles PUT /api/admin/booking-slips.
func (h *AdminHandler) SetSlipStatusHandler(c *gin.Context) {
	var input struct {
		BookingID         string               `json:"booking_id" binding:"required"`
		PaymentStatus     models.PaymentStatus `json:"payment_status" binding:"required"`
		ExpectedUpdatedAt *time.Time           `json:"expected_updated_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Bookings.SetPaymentStatus(c.Request.Context(), input.BookingID, input.PaymentStatus, input.ExpectedUpdatedAt)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("payment status set by admin",
		zap.String("bookingID", b.ID),
		zap.String("paymentStatus", string(b.PaymentStatus)),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully", "booking": b})
}

// DeleteSlipHandler handles DELETE /api/admin/booking-slips/:booking_id?confirm=true.
func (h *AdminHandler) DeleteSlipHandler(c *gin.Context) {
	confirm, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.Bookings.DeleteBooking(c.Request.Context(), c.Param("booking_id"), confirm); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// ListSittersHandler handles GET /api/admin/sitters?status=.
func (h *AdminHandler) ListSittersHandler(c *gin.Context) {
	sitters, err := h.Admin.ListSitters(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": sitters})
}

// UpdateSitterStatusHandler handles POST /api/admin/sitters/update-status.
func (h *AdminHandler) UpdateSitterStatusHandler(c *gin.Context) {
	var input struct {
		SitterID string                    `json:"sitter_id" binding:"required"`
		Status   models.VerificationStatus `json:"status"`
		// Older dashboard builds sent the field under its column name.
		VerificationStatus models.VerificationStatus `json:"verification_status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	status := input.Status
	if status == "" {
		status = input.VerificationStatus
	}
	if status == "" {
		utils.RespondError(c, utils.NewValidationError("status is required"))
		return
	}
	account, err := h.Admin.SetSitterVerification(c.Request.Context(), input.SitterID, status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sitter status updated successfully", "sitter": account})
}
