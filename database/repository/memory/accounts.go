package memory

import (
	"context"
	"sort"
	"time"

	"petsitter/database"
	"petsitter/models"
)

type accountRow struct{ models.Account }

// AccountRepo is an in-memory userRepo.AccountRepository.
type AccountRepo struct{ s *Store }

func NewAccountRepo(s *Store) *AccountRepo { return &AccountRepo{s: s} }

func (r *AccountRepo) Create(_ context.Context, a *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.accounts {
		if row.Email == a.Email {
			return database.ErrDuplicate
		}
	}
	if _, ok := r.s.accounts[a.ID]; ok {
		return database.ErrDuplicate
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.accounts[a.ID] = accountRow{*a}
	return nil
}

func (r *AccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	a := row.Account
	return &a, nil
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.accounts {
		if row.Email == email {
			a := row.Account
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) ListSitters(_ context.Context, status models.VerificationStatus) ([]models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Account{}
	for _, row := range r.s.accounts {
		if row.Role == models.RoleSitter && (status == "" || row.VerificationStatus == status) {
			a := row.Account
			a.PasswordHash, a.TokenHash, a.FCMToken = "", "", ""
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *AccountRepo) SetVerificationStatus(_ context.Context, id string, status models.VerificationStatus) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.accounts[id]
	if !ok || row.Role != models.RoleSitter {
		return nil, database.ErrNotFound
	}
	row.VerificationStatus = status
	row.UpdatedAt = time.Now()
	r.s.accounts[id] = row
	a := row.Account
	a.PasswordHash, a.TokenHash, a.FCMToken = "", "", ""
	return &a, nil
}

func (r *AccountRepo) update(id string, apply func(*models.Account)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.accounts[id]
	if !ok {
		return database.ErrNotFound
	}
	apply(&row.Account)
	row.UpdatedAt = time.Now()
	r.s.accounts[id] = row
	return nil
}

func (r *AccountRepo) SetFCMToken(_ context.Context, id, token string) error {
	return r.update(id, func(a *models.Account) { a.FCMToken = token })
}

func (r *AccountRepo) SetTokenHash(_ context.Context, id, tokenHash string) error {
	return r.update(id, func(a *models.Account) { a.TokenHash = tokenHash })
}
