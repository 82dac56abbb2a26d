package repositories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWriteTxPassesSentinelsThrough(t *testing.T) {
	db := newTestDB(t)

	err := writeTx(db, func(tx *gorm.DB) error {
		return ErrAlreadyLiked
	})
	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestWriteTxWrapsDriverErrors(t *testing.T) {
	db := newTestDB(t)

	err := writeTx(db, func(tx *gorm.DB) error {
		return errors.New("syntax error near SELECT")
	})
	assert.ErrorIs(t, err, ErrStore)
}

func TestWriteTxRetriesLockContention(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := writeTx(db, func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWriteTxGivesUpAfterBoundedRetries(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := writeTx(db, func(tx *gorm.DB) error {
		attempts++
		return errors.New("database is locked")
	})
	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, maxWriteRetries+1, attempts)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(errors.New("UNIQUE constraint failed: likes.status_id, likes.user_id")))
	assert.True(t, isDuplicate(errors.New(`duplicate key value violates unique constraint "idx_group_member"`)))
	assert.True(t, isDuplicate(gorm.ErrDuplicatedKey))
	assert.False(t, isDuplicate(errors.New("connection refused")))
}
