package models

import "time"

// BookingStatus is the sitter-acceptance axis of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// PaymentStatus is the payment axis of a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending" // slip uploaded, awaiting admin review
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

// PaymentStatuses lists every value an admin may set.
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentUnpaid}

// Valid reports whether s is one of the four payment statuses.
func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is the system of record for a member/sitter engagement.
type Booking struct {
	ID              string        `bson:"id" json:"booking_id"`
	MemberID        string        `bson:"member_id" json:"member_id"`
	SitterID        string        `bson:"sitter_id" json:"sitter_id"`
	PetTypeID       string        `bson:"pet_type_id" json:"pet_type_id"`
	SitterServiceID string        `bson:"sitter_service_id" json:"sitter_service_id"`
	ServiceTypeID   string        `bson:"service_type_id" json:"service_type_id"`
	StartTime       time.Time     `bson:"start_time" json:"start_time"`
	EndTime         time.Time     `bson:"end_time" json:"end_time"`
	TotalPrice      float64       `bson:"total_price" json:"total_price"`
	PetQuantity     int           `bson:"pet_quantity" json:"pet_quantity"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus `bson:"payment_status" json:"payment_status"`
	SlipImage       string        `bson:"slip_image" json:"slip_image"`
	SlipPublicID    string        `bson:"slip_public_id,omitempty" json:"-"`
	SlipUploadedAt  *time.Time    `bson:"slip_uploaded_at,omitempty" json:"slip_uploaded_at,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingView is a booking as returned to clients, with has_review joined in at read time.
type BookingView struct {
	Booking   `bson:",inline"`
	HasReview bool `json:"has_review"`
}

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2) share any instant.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// BookingInput is the create-booking payload.
type BookingInput struct {
	MemberID        string  `json:"member_id"`
	SitterID        string  `json:"sitter_id" binding:"required"`
	PetTypeID       string  `json:"pet_type_id" binding:"required"`
	SitterServiceID string  `json:"sitter_service_id" binding:"required"`
	ServiceTypeID   string  `json:"service_type_id" binding:"required"`
	StartTime       string  `json:"start_time" binding:"required"`
	EndTime         string  `json:"end_time" binding:"required"`
	TotalPrice      float64 `json:"total_price"`
	PetQuantity     int     `json:"pet_quantity"`
}

// SlipRecord is the admin review-queue projection of a booking.
type SlipRecord struct {
	BookingID     string        `bson:"id" json:"booking_id"`
	MemberID      string        `bson:"member_id" json:"member_id"`
	SitterID      string        `bson:"sitter_id" json:"sitter_id"`
	TotalPrice    float64       `bson:"total_price" json:"total_price"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`
	SlipImage     string        `bson:"slip_image" json:"slip_image"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}
