package memory

import (
	bookingRepo "petsitter/database/repository/booking"
	reviewRepo "petsitter/database/repository/review"
	sitterRepo "petsitter/database/repository/sitter"
	taxonomyRepo "petsitter/database/repository/taxonomy"
	userRepo "petsitter/database/repository/user"
)

var (
	_ bookingRepo.BookingRepository   = (*BookingRepo)(nil)
	_ reviewRepo.ReviewRepository     = (*ReviewRepo)(nil)
	_ taxonomyRepo.TaxonomyRepository = (*TaxonomyRepo)(nil)
	_ sitterRepo.SitterRepository     = (*SitterRepo)(nil)
	_ userRepo.AccountRepository      = (*AccountRepo)(nil)
)
