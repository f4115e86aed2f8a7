package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Senegura/TicketSystem/internal/config"
	"github.com/Senegura/TicketSystem/internal/domain"
	"github.com/Senegura/TicketSystem/internal/persistence"
)

func setupTestRepo(t *testing.T) UserRepository {
	t.Helper()
	db, err := persistence.NewSQLite(context.Background(), config.UserStoreConfig{DatabasePath: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db.DB)
}

func testUser(username string) *domain.User {
	return &domain.User{
		Username:      username,
		UserType:      domain.UserTypeCustomer,
		PasswordHash:  "aGFzaA==",
		Iterations:    100000,
		Salt:          "c2FsdA==",
		HashAlgorithm: "SHA256",
	}
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	first := testUser("alice")
	require.NoError(t, repo.Create(ctx, first))
	assert.Positive(t, first.ID)

	second := testUser("bob")
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	first := testUser("alice")
	require.NoError(t, repo.Create(ctx, first))

	dup := testUser("alice")
	dup.PasswordHash = "b3RoZXI="
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// The first registration is unaffected.
	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "aGFzaA==", stored.PasswordHash)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	user := testUser("alice")
	user.UserType = domain.UserTypeAdmin
	require.NoError(t, repo.Create(ctx, user))

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, domain.UserTypeAdmin, stored.UserType)
	assert.Equal(t, user.Iterations, stored.Iterations)
	assert.Equal(t, user.Salt, stored.Salt)
	assert.Equal(t, user.HashAlgorithm, stored.HashAlgorithm)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	user := testUser("alice")
	require.NoError(t, repo.Create(ctx, user))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.Create(ctx, testUser("alice")))
	require.NoError(t, repo.Create(ctx, testUser("bob")))

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	user := testUser("alice")
	require.NoError(t, repo.Create(ctx, user))

	user.UserType = domain.UserTypeUser
	user.PasswordHash = "bmV3aGFzaA=="
	user.Iterations = 200000
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeUser, stored.UserType)
	assert.Equal(t, "bmV3aGFzaA==", stored.PasswordHash)
	assert.Equal(t, 200000, stored.Iterations)

	missing := testUser("ghost")
	missing.ID = 9999
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrUserNotFound)
}

func TestUserRepository_UpdateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(ctx, testUser("alice")))
	bob := testUser("bob")
	require.NoError(t, repo.Create(ctx, bob))

	bob.Username = "alice"
	assert.ErrorIs(t, repo.Update(ctx, bob), ErrDuplicateUsername)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)

	user := testUser("alice")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrUserNotFound)
}
