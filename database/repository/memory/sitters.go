package memory

import (
	"context"
	"sort"

	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	"petsitter/models"
)

type sitterServiceRow struct{ models.SitterService }

type paymentMethodRow struct {
	models.PaymentMethod
	seq int64
}

// SitterRepo is an in-memory sitterRepo.SitterRepository.
type SitterRepo struct{ s *Store }

func NewSitterRepo(s *Store) *SitterRepo { return &SitterRepo{s: s} }

func (r *SitterRepo) CreateService(_ context.Context, svc *models.SitterService) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sitterServices[svc.ID]; ok {
		return database.ErrDuplicate
	}
	r.s.sitterServices[svc.ID] = sitterServiceRow{*svc}
	return nil
}

func (r *SitterRepo) GetService(_ context.Context, id string) (*models.SitterService, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.sitterServices[id]
	if !ok {
		return nil, nil
	}
	svc := row.SitterService
	return &svc, nil
}

func (r *SitterRepo) ListServices(_ context.Context, sitterID string) ([]models.SitterService, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.SitterService{}
	for _, row := range r.s.sitterServices {
		if row.SitterID == sitterID {
			out = append(out, row.SitterService)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobName < out[j].JobName })
	return out, nil
}

func (r *SitterRepo) DeleteService(_ context.Context, id, sitterID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.sitterServices[id]
	if !ok || row.SitterID != sitterID {
		return database.ErrNotFound
	}
	delete(r.s.sitterServices, id)
	return nil
}

func (r *SitterRepo) HasServiceReference(_ context.Context, field, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.sitterServices {
		switch {
		case field == bookingRepo.FieldPetTypeID && row.PetTypeID == id,
			field == bookingRepo.FieldServiceTypeID && row.ServiceTypeID == id:
			return true, nil
		}
	}
	return false, nil
}

func (r *SitterRepo) CreatePaymentMethod(_ context.Context, pm *models.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.paymentMethods[pm.ID]; ok {
		return database.ErrDuplicate
	}
	r.s.paymentMethods[pm.ID] = paymentMethodRow{PaymentMethod: *pm, seq: r.s.next()}
	return nil
}

func (r *SitterRepo) ListPaymentMethods(_ context.Context, sitterID string) ([]models.PaymentMethod, error) {
	r.s.mu.RLock()
	rows := []paymentMethodRow{}
	for _, row := range r.s.paymentMethods {
		if row.SitterID == sitterID {
			rows = append(rows, row)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]models.PaymentMethod, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.PaymentMethod)
	}
	return out, nil
}

func (r *SitterRepo) DeletePaymentMethod(_ context.Context, id, sitterID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.paymentMethods[id]
	if !ok || row.SitterID != sitterID {
		return database.ErrNotFound
	}
	delete(r.s.paymentMethods, id)
	return nil
}
