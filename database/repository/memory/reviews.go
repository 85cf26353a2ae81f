package memory

import (
	"context"
	"sort"

	"petsitter/database"
	"petsitter/models"
)

type reviewRow struct {
	models.Review
	seq int64
}

// ReviewRepo is an in-memory reviewRepo.ReviewRepository. Reviews are keyed by booking
// id, which gives the same one-review-per-booking guarantee as the unique index.
type ReviewRepo struct{ s *Store }

func NewReviewRepo(s *Store) *ReviewRepo { return &ReviewRepo{s: s} }

func (r *ReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[review.BookingID]; ok {
		return database.ErrDuplicate
	}
	r.s.reviews[review.BookingID] = reviewRow{Review: *review, seq: r.s.next()}
	return nil
}

func (r *ReviewRepo) bySitter(sitterID string) []reviewRow {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := []reviewRow{}
	for _, row := range r.s.reviews {
		if row.SitterID == sitterID {
			rows = append(rows, row)
		}
	}
	return rows
}

func (r *ReviewRepo) ListBySitter(_ context.Context, sitterID string) ([]models.Review, error) {
	rows := r.bySitter(sitterID)
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Review)
	}
	return out, nil
}

func (r *ReviewRepo) AverageForSitter(_ context.Context, sitterID string) (float64, int64, error) {
	rows := r.bySitter(sitterID)
	if len(rows) == 0 {
		return 0, 0, nil
	}
	total := 0
	for _, row := range rows {
		total += row.Rating
	}
	return float64(total) / float64(len(rows)), int64(len(rows)), nil
}

func (r *ReviewRepo) ReviewedBookings(_ context.Context, bookingIDs []string) (map[string]bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		if _, ok := r.s.reviews[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r *ReviewRepo) DeleteByBooking(_ context.Context, bookingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.reviews, bookingID)
	return nil
}
