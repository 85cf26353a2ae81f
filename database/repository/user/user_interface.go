package userRepo

import (
	"context"

	"petsitter/models"
)

// AccountRepository defines methods for member and sitter account data access.
type AccountRepository interface {
	// Create inserts a new account. A taken email fails with database.ErrDuplicate.
	Create(ctx context.Context, account *models.Account) error
	// GetByID retrieves an account by its unique ID, or nil.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetByEmail retrieves an account by its email address, or nil.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// ListSitters returns sitter accounts; an empty status means all.
	ListSitters(ctx context.Context, status models.VerificationStatus) ([]models.Account, error)
	// SetVerificationStatus updates a sitter's verification status and returns the account.
	SetVerificationStatus(ctx context.Context, id string, status models.VerificationStatus) (*models.Account, error)
	// SetFCMToken stores the device push token of an account.
	SetFCMToken(ctx context.Context, id, token string) error
	// SetTokenHash records the hash of the account's current session token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
}
