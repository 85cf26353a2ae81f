package handlers

import (
	"io"
	"net/http"
	"strings"

	"petsitter/models"
	"petsitter/services/booking"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxSlipBytes bounds the payment slip image size.
const MaxSlipBytes = 5 << 20

type BookingHandler struct {
	Bookings booking.BookingService
}

type bookingActionInput struct {
	BookingID string `json:"booking_id" binding:"required"`
	MemberID  string `json:"member_id"`
	SitterID  string `json:"sitter_id"`
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
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

	b, err := h.Bookings.CreateBooking(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking_id": b.ID, "booking": b})
}

// GetBookingHandler handles GET /api/bookings/:id for the booking's member or sitter.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	view, err := h.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	caller := sessionAccountID(c)
	if view.MemberID != caller && view.SitterID != caller {
		utils.RespondError(c, utils.NewForbiddenError("booking does not belong to this account"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListMemberBookingsHandler handles GET /api/member/bookings.
func (h *BookingHandler) ListMemberBookingsHandler(c *gin.Context) {
	views, err := h.Bookings.ListForMember(c.Request.Context(), sessionAccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// MemberCancelHandler handles POST /api/member/cancel-service.
func (h *BookingHandler) MemberCancelHandler(c *gin.Context) {
	var input bookingActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	memberID, err := pairWithSession(c, "member_id", input.MemberID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	b, err := h.Bookings.MemberCancel(c.Request.Context(), input.BookingID, memberID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": b})
}

// UploadSlipHandler handles POST /api/bookings/upload-payment-slip (multipart booking_id + image).
func (h *BookingHandler) UploadSlipHandler(c *gin.Context) {
	logger := getLogger(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxSlipBytes+(1<<20))

	bookingID := strings.TrimSpace(c.PostForm("booking_id"))
	if bookingID == "" {
		utils.RespondError(c, utils.NewValidationError("booking_id is required"))
		return
	}
	memberID, err := pairWithSession(c, "member_id", c.PostForm("member_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	image, err := readSlip(c)
	if err != nil {
		logger.Info("rejected slip upload", zap.String("bookingID", bookingID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}

	b, err := h.Bookings.UploadSlip(c.Request.Context(), bookingID, memberID, image)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment slip uploaded", "slip_image": b.SlipImage, "booking": b})
}

func readSlip(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, utils.NewValidationError("image is required")
	}
	if fileHeader.Size > MaxSlipBytes {
		return nil, utils.NewValidationError("image must be at most 5 MB")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, utils.NewValidationError("could not read image")
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, MaxSlipBytes+1))
	if err != nil {
		return nil, utils.NewValidationError("could not read image")
	}
	if len(image) > MaxSlipBytes {
		return nil, utils.NewValidationError("image must be at most 5 MB")
	}
	if len(image) == 0 {
		return nil, utils.NewValidationError("image is required")
	}
	if !strings.HasPrefix(http.DetectContentType(image), "image/") {
		return nil, utils.NewValidationError("image must be a JPEG, PNG or WebP file")
	}
	return image, nil
}
