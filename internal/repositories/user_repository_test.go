package repositories

import (
	"testing"

	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupValidation(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Signup("  ", "123456789")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = repo.Signup("Alice", "12345")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSignupRejectsDuplicateNameOrPhone(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Signup("Alice", "111111111")
	require.NoError(t, err)

	_, err = repo.Signup("Alice", "999999999")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = repo.Signup("Someone Else", "111111111")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Signup("Alice", "111111111")
	require.NoError(t, err)

	user, err := repo.Login("Alice", "111111111")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.Login("Alice", "000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByNameIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Signup("Alice", "111111111")
	require.NoError(t, err)

	user, err := repo.GetUserByName("  aLiCe ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAvatarPathFallsBackToPlaceholder(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.Signup("Alice", "111111111")
	require.NoError(t, err)

	path, err := repo.GetAvatarPath(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAvatarPath, path)

	require.NoError(t, repo.UpdateAvatarPath(user.ID, "avatars/alice.png"))

	path, err = repo.GetAvatarPath(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatars/alice.png", path)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.Signup("Alice", "111111111")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProfile(user.ID, "Alicia", "222222222"))

	updated, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "222222222", updated.PhoneNumber)

	assert.ErrorIs(t, repo.UpdateProfile(99, "Nobody", "333333333"), ErrNotFound)
}

func TestUpdateProfileRejectsTakenNameOrPhone(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Signup("Alice", "111111111")
	require.NoError(t, err)
	bob, err := repo.Signup("Bob", "222222222")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.UpdateProfile(bob.ID, "Alice", "222222222"), ErrAlreadyExists)
	assert.ErrorIs(t, repo.UpdateProfile(bob.ID, "Bob", "111111111"), ErrAlreadyExists)

	// Bob unchanged after the rejected renames.
	unchanged, err := repo.GetUserByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", unchanged.Name)
	assert.Equal(t, "222222222", unchanged.PhoneNumber)
}
