package models

import "time"

// Review is a member's rating of a completed, paid booking. At most one per booking.
type Review struct {
	ID         string    `bson:"id" json:"review_id"`
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	MemberID   string    `bson:"member_id" json:"member_id"`
	SitterID   string    `bson:"sitter_id" json:"sitter_id"`
	Rating     int       `bson:"rating" json:"rating"`
	ReviewText string    `bson:"review_text" json:"review_text"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// ReviewInput is the submit-review payload.
type ReviewInput struct {
	BookingID  string `json:"booking_id" binding:"required"`
	MemberID   string `json:"member_id"`
	SitterID   string `json:"sitter_id" binding:"required"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// SitterReviews is the reviews screen payload for one sitter.
type SitterReviews struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
}
