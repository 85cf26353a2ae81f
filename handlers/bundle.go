package handlers

import (
	"petsitter/middleware"
	"petsitter/services/admin"
	"petsitter/services/booking"
	"petsitter/services/review"
	"petsitter/services/sitter"
	"petsitter/services/taxonomy"
	"petsitter/services/user"
)

// HandlerBundle groups all endpoint handlers and what the router needs to protect them.
type HandlerBundle struct {
	Sessions   middleware.SessionVerifier
	AdminToken string

	Auth     *AuthHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
	Taxonomy *TaxonomyHandler
	Sitter   *SitterHandler
	Admin    *AdminHandler
}

// Services are the dependencies of the handler bundle.
type Services struct {
	Accounts user.AccountService
	Bookings booking.BookingService
	Reviews  review.ReviewService
	Taxonomy taxonomy.TaxonomyService
	Sitters  sitter.SitterService
	Admin    admin.AdminService
}

func NewHandlerBundle(svc Services, adminToken string) *HandlerBundle {
	return &HandlerBundle{
		Sessions:   svc.Accounts,
		AdminToken: adminToken,
		Auth:       &AuthHandler{Accounts: svc.Accounts},
		Booking:    &BookingHandler{Bookings: svc.Bookings},
		Review:     &ReviewHandler{Reviews: svc.Reviews},
		Taxonomy:   &TaxonomyHandler{Taxonomy: svc.Taxonomy},
		Sitter:     &SitterHandler{Sitters: svc.Sitters},
		Admin:      &AdminHandler{Admin: svc.Admin, Bookings: svc.Bookings},
	}
}
