package admin

import (
	"context"
	"testing"

	"petsitter/database/repository/memory"
	"petsitter/models"
	"petsitter/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSitterVerification(t *testing.T) {
	ctx := context.Background()
	accounts := memory.NewAccountRepo(memory.NewStore())
	for _, a := range []models.Account{
		{ID: "s1", Role: models.RoleSitter, Email: "a@example.com", VerificationStatus: models.VerificationPending},
		{ID: "s2", Role: models.RoleSitter, Email: "b@example.com", VerificationStatus: models.VerificationApproved},
		{ID: "m1", Role: models.RoleMember, Email: "c@example.com"},
	} {
		a := a
		require.NoError(t, accounts.Create(ctx, &a))
	}
	svc := &DefaultAdminService{Accounts: accounts, Logger: zap.NewNop()}

	all, err := svc.ListSitters(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListSitters(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "s1", pending[0].ID)

	_, err = svc.ListSitters(ctx, "banned")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	updated, err := svc.SetSitterVerification(ctx, "s1", models.VerificationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationApproved, updated.VerificationStatus)

	_, err = svc.SetSitterVerification(ctx, "s1", "maybe")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	_, err = svc.SetSitterVerification(ctx, "m1", models.VerificationApproved)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
