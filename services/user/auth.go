package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"petsitter/database"
	"petsitter/models"
	"petsitter/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 72 * time.Hour

var errInvalidCredentials = utils.NewUnauthorizedError("invalid email or password")

func (s *DefaultAccountService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return defaultTokenTTL
}

// Register creates a member or sitter account and signs it in. Sitters start unverified.
func (s *DefaultAccountService) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error) {
	if in.Role != models.RoleMember && in.Role != models.RoleSitter {
		return nil, utils.NewValidationError("role must be member or sitter")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Name) == "" {
		return nil, utils.NewValidationError("email and name are required")
	}
	if len(in.Password) < 8 {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to hash password", err)
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Role:         in.Role,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
	}
	if in.Role == models.RoleSitter {
		account.VerificationStatus = models.VerificationPending
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflictError("email is already registered")
		}
		return nil, utils.NewUnavailableError("failed to create account", err)
	}

	s.Logger.Info("account registered", zap.String("accountID", account.ID), zap.String("role", string(account.Role)))
	return s.issue(ctx, account)
}

func (s *DefaultAccountService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	account, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load account", err)
	}
	if account == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return s.issue(ctx, account)
}

// issue signs a new token and makes it the account's only valid session.
func (s *DefaultAccountService) issue(ctx context.Context, account *models.Account) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, string(account.Role), s.ttl())
	if err != nil {
		return nil, utils.NewUnavailableError("failed to sign token", err)
	}
	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, account.ID, hash); err != nil {
		return nil, utils.NewUnavailableError("failed to store session", err)
	}
	if s.Sessions != nil {
		if err := s.Sessions.Store(ctx, account.ID, hash, s.ttl()); err != nil {
			s.Logger.Warn("failed to cache session", zap.String("accountID", account.ID), zap.Error(err))
		}
	}

	return &models.AuthResponse{
		ID:    account.ID,
		Role:  account.Role,
		Name:  account.Name,
		Email: account.Email,
		Token: token,
	}, nil
}

func (s *DefaultAccountService) Logout(ctx context.Context, accountID string) error {
	if err := s.Repo.SetTokenHash(ctx, accountID, ""); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError("Account not found")
		}
		return utils.NewUnavailableError("failed to end session", err)
	}
	if s.Sessions != nil {
		if err := s.Sessions.Forget(ctx, accountID); err != nil {
			s.Logger.Warn("failed to drop cached session", zap.String("accountID", accountID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultAccountService) VerifySession(ctx context.Context, token string) (*utils.SessionClaims, error) {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return nil, utils.NewUnauthorizedError("Insufficient authorization")
	}
	hash := utils.HashToken(token)

	if s.Sessions != nil {
		cached, ok, err := s.Sessions.Lookup(ctx, claims.AccountID)
		if err != nil {
			s.Logger.Warn("session cache lookup failed", zap.String("accountID", claims.AccountID), zap.Error(err))
		} else if ok {
			if cached != hash {
				return nil, utils.NewUnauthorizedError("session has been replaced or revoked")
			}
			return claims, nil
		}
	}

	account, err := s.Repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load account", err)
	}
	if account == nil || string(account.Role) != claims.Role || account.TokenHash != hash {
		return nil, utils.NewUnauthorizedError("session has been replaced or revoked")
	}
	if s.Sessions != nil {
		if err := s.Sessions.Store(ctx, account.ID, hash, s.ttl()); err != nil {
			s.Logger.Warn("failed to cache session", zap.String("accountID", account.ID), zap.Error(err))
		}
	}
	return claims, nil
}
