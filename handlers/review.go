package handlers

import (
	"net/http"

	"petsitter/models"
	"petsitter/services/review"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Reviews review.ReviewService
}

// SubmitReviewHandler handles POST /api/review.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	memberID, err := pairWithSession(c, "member_id", input.MemberID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	input.MemberID = memberID

	r, err := h.Reviews.SubmitReview(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": r})
}

// AverageRatingHandler handles GET /api/reviews/sitter/:id.
func (h *ReviewHandler) AverageRatingHandler(c *gin.Context) {
	avg, err := h.Reviews.AverageRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageRating": avg})
}

// ListSitterReviewsHandler handles GET /api/reviews/sitter/:id/list.
func (h *ReviewHandler) ListSitterReviewsHandler(c *gin.Context) {
	list, err := h.Reviews.ListBySitter(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
