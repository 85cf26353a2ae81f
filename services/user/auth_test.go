package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"petsitter/database/repository/memory"
	"petsitter/models"
	"petsitter/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapSessions struct {
	mu     sync.Mutex
	hashes map[string]string
}

func (m *mapSessions) Store(_ context.Context, accountID, tokenHash string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hashes[accountID] = tokenHash
	return nil
}

func (m *mapSessions) Lookup(_ context.Context, accountID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hashes[accountID]
	return h, ok, nil
}

func (m *mapSessions) Forget(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hashes, accountID)
	return nil
}

func newService(sessions SessionCache) *DefaultAccountService {
	return &DefaultAccountService{
		Repo:     memory.NewAccountRepo(memory.NewStore()),
		Sessions: sessions,
		TokenTTL: time.Hour,
		Logger:   zap.NewNop(),
	}
}

var sitterInput = models.RegisterInput{
	Role: models.RoleSitter, Email: "Nok@Example.com", Password: "s3cret-pass", Name: "Nok",
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService(nil)

	reg, err := svc.Register(ctx, sitterInput)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSitter, reg.Role)
	assert.Equal(t, "nok@example.com", reg.Email)
	assert.NotEmpty(t, reg.Token)

	account, err := svc.GetAccount(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, account.VerificationStatus)
	assert.NotEqual(t, sitterInput.Password, account.PasswordHash)

	login, err := svc.Login(ctx, "nok@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, login.ID)

	_, err = svc.Login(ctx, "nok@example.com", "wrong-pass")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(nil)

	admin := sitterInput
	admin.Role = models.RoleAdmin
	_, err := svc.Register(ctx, admin)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	short := sitterInput
	short.Password = "short"
	_, err = svc.Register(ctx, short)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.Register(ctx, sitterInput)
	require.NoError(t, err)
	_, err = svc.Register(ctx, sitterInput)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestVerifySession(t *testing.T) {
	for name, sessions := range map[string]SessionCache{
		"without cache": nil,
		"with cache":    &mapSessions{hashes: map[string]string{}},
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := newService(sessions)

			first, err := svc.Register(ctx, sitterInput)
			require.NoError(t, err)
			claims, err := svc.VerifySession(ctx, first.Token)
			require.NoError(t, err)
			assert.Equal(t, first.ID, claims.AccountID)
			assert.Equal(t, "sitter", claims.Role)

			second, err := svc.Login(ctx, sitterInput.Email, sitterInput.Password)
			require.NoError(t, err)
			require.NotEqual(t, first.Token, second.Token)

			_, err = svc.VerifySession(ctx, first.Token)
			assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
			_, err = svc.VerifySession(ctx, second.Token)
			require.NoError(t, err)

			require.NoError(t, svc.Logout(ctx, second.ID))
			_, err = svc.VerifySession(ctx, second.Token)
			assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))

			_, err = svc.VerifySession(ctx, "not-a-jwt")
			assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
		})
	}
}

func TestUpdateFCMToken(t *testing.T) {
	ctx := context.Background()
	svc := newService(nil)
	reg, err := svc.Register(ctx, models.RegisterInput{
		Role: models.RoleMember, Email: "ploy@example.com", Password: "password1", Name: "Ploy",
	})
	require.NoError(t, err)

	assert.Equal(t, utils.KindValidation, utils.KindOf(svc.UpdateFCMToken(ctx, reg.ID, " ")))
	require.NoError(t, svc.UpdateFCMToken(ctx, reg.ID, "device-token"))

	account, err := svc.GetAccount(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-token", account.FCMToken)

	assert.Equal(t, utils.KindNotFound, utils.KindOf(svc.UpdateFCMToken(ctx, "missing", "t")))
}
