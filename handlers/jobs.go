package handlers

import (
	"net/http"

	"petsitter/models"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

// ListJobsHandler handles GET /api/sitter/jobs?status=.
func (h *BookingHandler) ListJobsHandler(c *gin.Context) {
	views, err := h.Bookings.ListForSitter(c.Request.Context(), sessionAccountID(c), models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// AcceptJobHandler handles POST /api/sitter/jobs/accept. An overlap answers 409 with the
// conflicting booking id.
func (h *BookingHandler) AcceptJobHandler(c *gin.Context) {
	var input bookingActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	sitterID, err := pairWithSession(c, "sitter_id", input.SitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.Bookings.AcceptJob(c.Request.Context(), input.BookingID, sitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !res.Accepted {
		utils.RespondError(c, res.Err())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job accepted", "booking": res.Booking})
}

// CancelJobHandler handles POST /api/sitter/jobs/cancel.
func (h *BookingHandler) CancelJobHandler(c *gin.Context) {
	var input bookingActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	sitterID, err := pairWithSession(c, "sitter_id", input.SitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	b, err := h.Bookings.CancelJob(c.Request.Context(), input.BookingID, sitterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job cancelled", "booking": b})
}
