package memory

import (
	"context"
	"sort"

	"petsitter/database"
	"petsitter/models"
)

type petTypeRow struct{ models.PetType }
type serviceTypeRow struct{ models.ServiceType }

// TaxonomyRepo is an in-memory taxonomyRepo.TaxonomyRepository.
type TaxonomyRepo struct{ s *Store }

func NewTaxonomyRepo(s *Store) *TaxonomyRepo { return &TaxonomyRepo{s: s} }

func (r *TaxonomyRepo) CreatePetType(_ context.Context, pt *models.PetType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.petTypes[pt.ID]; ok {
		return database.ErrDuplicate
	}
	r.s.petTypes[pt.ID] = petTypeRow{*pt}
	return nil
}

func (r *TaxonomyRepo) ListPetTypes(_ context.Context) ([]models.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.PetType, 0, len(r.s.petTypes))
	for _, row := range r.s.petTypes {
		out = append(out, row.PetType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName < out[j].TypeName })
	return out, nil
}

func (r *TaxonomyRepo) GetPetType(_ context.Context, id string) (*models.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.petTypes[id]
	if !ok {
		return nil, nil
	}
	pt := row.PetType
	return &pt, nil
}

func (r *TaxonomyRepo) UpdatePetType(_ context.Context, pt *models.PetType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.petTypes[pt.ID]; !ok {
		return database.ErrNotFound
	}
	r.s.petTypes[pt.ID] = petTypeRow{*pt}
	return nil
}

func (r *TaxonomyRepo) DeletePetType(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.petTypes[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.s.petTypes, id)
	return nil
}

func (r *TaxonomyRepo) CreateServiceType(_ context.Context, st *models.ServiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.serviceTypes[st.ID]; ok {
		return database.ErrDuplicate
	}
	r.s.serviceTypes[st.ID] = serviceTypeRow{*st}
	return nil
}

func (r *TaxonomyRepo) ListServiceTypes(_ context.Context) ([]models.ServiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.ServiceType, 0, len(r.s.serviceTypes))
	for _, row := range r.s.serviceTypes {
		out = append(out, row.ServiceType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShortName < out[j].ShortName })
	return out, nil
}

func (r *TaxonomyRepo) GetServiceType(_ context.Context, id string) (*models.ServiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.serviceTypes[id]
	if !ok {
		return nil, nil
	}
	st := row.ServiceType
	return &st, nil
}

func (r *TaxonomyRepo) UpdateServiceType(_ context.Context, st *models.ServiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.serviceTypes[st.ID]; !ok {
		return database.ErrNotFound
	}
	r.s.serviceTypes[st.ID] = serviceTypeRow{*st}
	return nil
}

func (r *TaxonomyRepo) DeleteServiceType(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.serviceTypes[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.s.serviceTypes, id)
	return nil
}
