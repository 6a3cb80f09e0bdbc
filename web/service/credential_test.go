package service

import (
	"context"
	"testing"

	"sgi-panel/database"
	"sgi-panel/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCredentialService(t *testing.T) *CredentialService {
	t.Helper()
	database.InitStores("memory")
	return NewCredentialService()
}

func TestSeedCredential(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	rec, created, err := svc.SeedCredential(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.AdminUsername, rec.Username)
	assert.Equal(t, model.RoleAdmin, rec.Role)
	assert.Equal(t, model.StatusActive, rec.Status)
	assert.NotEmpty(t, rec.Id)
	assert.Empty(t, rec.PasswordHash)

	// seeding again is a no-op that reports the existing account
	again, created, err := svc.SeedCredential(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rec.Id, again.Id)

	users, err := svc.ListCredentials(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSeedCredentialSkippedWhenAccountsExist(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	_, err := svc.CreateCredential(ctx, model.Record{
		"USERNAME": "operador",
		"PASSWORD": "clave123",
	})
	require.NoError(t, err)

	_, created, err := svc.SeedCredential(ctx)
	require.NoError(t, err)
	assert.False(t, created, "seed must not run once any credential exists")

	users, err := svc.ListCredentials(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestValidateCredential(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	_, _, err := svc.SeedCredential(ctx)
	require.NoError(t, err)

	// the login username is folded the same way the stored one was
	rec, err := svc.ValidateCredential(ctx, "  admin  ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.AdminUsername, rec.Username)
	assert.Empty(t, rec.PasswordHash)

	// wrong password and unknown user collapse into the same error
	_, err = svc.ValidateCredential(ctx, "admin", "equivocada")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.ValidateCredential(ctx, "fantasma", "admin123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestCreateCredentialNormalizes(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	// the web client sends lower-cased attribute names
	rec, err := svc.CreateCredential(ctx, model.Record{
		"username": " juan.perez ",
		"password": "clave123",
		"estado":   "inactive",
		"notas":    "vendedor",
	})
	require.NoError(t, err)
	assert.Equal(t, "JUAN.PEREZ", rec.Username)
	assert.Equal(t, model.RoleUser, rec.Role, "unrecognized role collapses to USER")
	assert.Equal(t, model.StatusInactive, rec.Status)
	assert.Equal(t, "vendedor", rec.Notes)
	assert.NotEmpty(t, rec.Id)
	assert.Empty(t, rec.PasswordHash)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestCreateCredentialRejections(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	_, err := svc.CreateCredential(ctx, model.Record{"USERNAME": "solo"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.CreateCredential(ctx, model.Record{"PASSWORD": "sola"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateCredential(ctx, model.Record{"USERNAME": "ADMIN", "PASSWORD": "x"})
	require.NoError(t, err)
	// uniqueness is checked on the normalized form
	_, err = svc.CreateCredential(ctx, model.Record{"USERNAME": "admin", "PASSWORD": "y"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	_, err = svc.CreateCredential(ctx, model.Record{"USERNAME": " Admin ", "PASSWORD": "z"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestListCredentialsSanitized(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	for _, name := range []string{"uno", "dos", "tres"} {
		_, err := svc.CreateCredential(ctx, model.Record{"USERNAME": name, "PASSWORD": "clave123"})
		require.NoError(t, err)
	}

	users, err := svc.ListCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
		assert.False(t, u.CreatedAt.IsZero())
	}
}

func TestRemoveCredential(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	rec, err := svc.CreateCredential(ctx, model.Record{"USERNAME": "temporal", "PASSWORD": "clave123"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCredential(ctx, rec.Id))
	_, err = svc.FindCredential(ctx, rec.Id)
	assert.True(t, database.IsNotFound(err))

	// removing again is not an error
	assert.NoError(t, svc.RemoveCredential(ctx, rec.Id))
}

func TestResetMasterPassword(t *testing.T) {
	svc := newTestCredentialService(t)
	ctx := context.Background()

	_, _, err := svc.SeedCredential(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetMasterPassword(ctx, ""), ErrMissingFields)
	require.NoError(t, svc.ResetMasterPassword(ctx, "nueva-clave"))

	_, err = svc.ValidateCredential(ctx, "admin", "admin123")
	assert.ErrorIs(t, err, ErrBadCredentials)
	rec, err := svc.ValidateCredential(ctx, "admin", "nueva-clave")
	require.NoError(t, err)
	assert.Equal(t, model.AdminUsername, rec.Username)
}
