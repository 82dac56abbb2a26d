package repositories

import (
	"testing"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationQueuesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")

	require.NoError(t, repo.Enqueue(alice.ID, CategoryGeneric, "Bob accepted your friend request!"))
	require.NoError(t, repo.Enqueue(alice.ID, CategoryMessage, "Bob sent you a message!"))

	generic, err := repo.Unread(alice.ID, CategoryGeneric)
	require.NoError(t, err)
	require.Len(t, generic, 1)
	assert.Equal(t, "Bob accepted your friend request!", generic[0].Message)

	messages, err := repo.Unread(alice.ID, CategoryMessage)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Bob sent you a message!", messages[0].Message)

	// Marking one queue read leaves the other untouched.
	require.NoError(t, repo.MarkAllRead(alice.ID, CategoryGeneric))

	generic, err = repo.Unread(alice.ID, CategoryGeneric)
	require.NoError(t, err)
	assert.Empty(t, generic)

	messages, err = repo.Unread(alice.ID, CategoryMessage)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestUnreadNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")

	older := models.Notification{UserID: alice.ID, Message: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Notification{UserID: alice.ID, Message: "newer", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	entries, err := repo.Unread(alice.ID, CategoryGeneric)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer", entries[0].Message)
	assert.Equal(t, "older", entries[1].Message)
}

func TestUnknownCategoryRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	assert.ErrorIs(t, repo.Enqueue(1, "urgent", "nope"), ErrInvalidInput)

	_, err := repo.Unread(1, "urgent")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkAllReadScopedToUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	bob := seedUser(t, db, "Bob", "222222222")

	require.NoError(t, repo.Enqueue(alice.ID, CategoryMessage, "for alice"))
	require.NoError(t, repo.Enqueue(bob.ID, CategoryMessage, "for bob"))

	require.NoError(t, repo.MarkAllRead(alice.ID, CategoryMessage))

	entries, err := repo.Unread(bob.ID, CategoryMessage)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
