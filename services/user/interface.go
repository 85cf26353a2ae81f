package user

import (
	"context"
	"time"

	userRepo "petsitter/database/repository/user"
	"petsitter/models"
	"petsitter/utils"

	"go.uber.org/zap"
)

// AccountService registers members and sitters and pairs bearer tokens with accounts.
type AccountService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, accountID string) error
	// VerifySession validates a bearer token and checks it is the account's current session.
	VerifySession(ctx context.Context, token string) (*utils.SessionClaims, error)
	UpdateFCMToken(ctx context.Context, accountID, fcmToken string) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
}

// DefaultAccountService is the production implementation. Sessions may be nil, in which
// case every verification reads the account.
type DefaultAccountService struct {
	Repo     userRepo.AccountRepository
	Sessions SessionCache
	TokenTTL time.Duration
	Logger   *zap.Logger
}
