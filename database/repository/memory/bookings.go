package memory

import (
	"context"
	"sort"
	"time"

	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	"petsitter/models"
)

type bookingRow struct {
	models.Booking
	seq int64
}

// BookingRepo is an in-memory bookingRepo.BookingRepository.
type BookingRepo struct{ s *Store }

func NewBookingRepo(s *Store) *BookingRepo { return &BookingRepo{s: s} }

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; ok {
		return database.ErrDuplicate
	}
	r.s.bookings[b.ID] = bookingRow{Booking: *b, seq: r.s.next()}
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	b := row.Booking
	return &b, nil
}

func (r *BookingRepo) filter(keep func(models.Booking) bool) []bookingRow {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := []bookingRow{}
	for _, row := range r.s.bookings {
		if keep(row.Booking) {
			rows = append(rows, row)
		}
	}
	return rows
}

func newestFirst(rows []bookingRow) []models.Booking {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Booking)
	}
	return out
}

func (r *BookingRepo) ListByMember(_ context.Context, memberID string) ([]models.Booking, error) {
	return newestFirst(r.filter(func(b models.Booking) bool { return b.MemberID == memberID })), nil
}

func (r *BookingRepo) ListBySitter(_ context.Context, sitterID string, status models.BookingStatus) ([]models.Booking, error) {
	return newestFirst(r.filter(func(b models.Booking) bool {
		return b.SitterID == sitterID && (status == "" || b.Status == status)
	})), nil
}

func (r *BookingRepo) ListPaidBySitter(_ context.Context, sitterID string) ([]models.Booking, error) {
	out := newestFirst(r.filter(func(b models.Booking) bool {
		return b.SitterID == sitterID && b.PaymentStatus == models.PaymentPaid && b.Status != models.BookingCancelled
	}))
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *BookingRepo) ListSlips(_ context.Context, status models.PaymentStatus) ([]models.SlipRecord, error) {
	bookings := newestFirst(r.filter(func(b models.Booking) bool {
		return status == "" || b.PaymentStatus == status
	}))
	slips := make([]models.SlipRecord, 0, len(bookings))
	for _, b := range bookings {
		slips = append(slips, models.SlipRecord{
			BookingID:     b.ID,
			MemberID:      b.MemberID,
			SitterID:      b.SitterID,
			TotalPrice:    b.TotalPrice,
			PaymentStatus: b.PaymentStatus,
			SlipImage:     b.SlipImage,
			CreatedAt:     b.CreatedAt,
			UpdatedAt:     b.UpdatedAt,
		})
	}
	return slips, nil
}

func (r *BookingRepo) FindOverlapping(_ context.Context, sitterID, excludeID string, start, end time.Time) (*models.Booking, error) {
	rows := r.filter(func(b models.Booking) bool {
		return b.SitterID == sitterID && b.ID != excludeID && b.Status == models.BookingConfirmed &&
			models.Overlaps(start, end, b.StartTime, b.EndTime)
	})
	if len(rows) == 0 {
		return nil, nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StartTime.Before(rows[j].StartTime) })
	b := rows[0].Booking
	return &b, nil
}

func (r *BookingRepo) UpdateState(_ context.Context, id string, guard bookingRepo.StateGuard, change bookingRepo.StateChange) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if row.Status != guard.Status || row.PaymentStatus != guard.PaymentStatus {
		return nil, database.ErrStaleWrite
	}
	if guard.UpdatedAt != nil && !row.UpdatedAt.Equal(*guard.UpdatedAt) {
		return nil, database.ErrStaleWrite
	}

	row.Status = change.Status
	row.PaymentStatus = change.PaymentStatus
	row.UpdatedAt = change.UpdatedAt
	if change.Slip != nil {
		uploadedAt := change.Slip.UploadedAt
		row.SlipImage = change.Slip.ImageURL
		row.SlipPublicID = change.Slip.PublicID
		row.SlipUploadedAt = &uploadedAt
	}
	r.s.bookings[id] = row

	b := row.Booking
	return &b, nil
}

func (r *BookingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *BookingRepo) DeleteWithReview(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.s.bookings, id)
	delete(r.s.reviews, id)
	return nil
}

func (r *BookingRepo) HasReference(_ context.Context, field, id string) (bool, error) {
	rows := r.filter(func(b models.Booking) bool {
		switch field {
		case bookingRepo.FieldPetTypeID:
			return b.PetTypeID == id
		case bookingRepo.FieldServiceTypeID:
			return b.ServiceTypeID == id
		}
		return false
	})
	return len(rows) > 0, nil
}

func (r *BookingRepo) WithSitterLock(ctx context.Context, sitterID string, fn func(ctx context.Context) error) error {
	l := r.s.sitterLock(sitterID)
	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}
