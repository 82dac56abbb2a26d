package repositories

import (
	"testing"

	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFriendshipUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")

	_, err := repo.RequestFriendship(alice.ID, "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestFriendshipNormalizesName(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	seedUser(t, db, "Bob", "222222222")

	request, err := repo.RequestFriendship(alice.ID, "  bob  ")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)
}

func TestDuplicatePendingRequestIsSoftNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	seedUser(t, db, "Bob", "222222222")

	_, err := repo.RequestFriendship(alice.ID, "Bob")
	require.NoError(t, err)

	_, err = repo.RequestFriendship(alice.ID, "Bob")
	assert.ErrorIs(t, err, ErrAlreadyRequested)

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReversePendingRequestIsSoftNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	bob := seedUser(t, db, "Bob", "222222222")

	_, err := repo.RequestFriendship(alice.ID, "Bob")
	require.NoError(t, err)

	_, err = repo.RequestFriendship(bob.ID, "Alice")
	assert.ErrorIs(t, err, ErrAlreadyRequested)

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCrossedRequestsBothReachTerminalState(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	bob := seedUser(t, db, "Bob", "222222222")

	requestAB, err := repo.RequestFriendship(alice.ID, "Bob")
	require.NoError(t, err)

	// A crossed request written before the pending guard could see it.
	requestBA := models.FriendRequest{
		SenderID: bob.ID, ReceiverID: alice.ID, Status: models.RequestPending,
	}
	require.NoError(t, db.Create(&requestBA).Error)

	require.NoError(t, repo.Respond(requestAB.ID, true))
	require.NoError(t, repo.Respond(requestBA.ID, true))

	// Both requests terminal, edges created exactly once.
	for _, id := range []uint{requestAB.ID, requestBA.ID} {
		var request models.FriendRequest
		require.NoError(t, db.First(&request, id).Error)
		assert.Equal(t, models.RequestAccepted, request.Status)
	}
	var edges int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&edges).Error)
	assert.EqualValues(t, 2, edges)
}

func TestRequestFriendshipAlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	bob := seedUser(t, db, "Bob", "222222222")
	befriend(t, db, alice.ID, bob.ID)

	_, err := repo.RequestFriendship(alice.ID, "Bob")
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestAcceptCreatesSymmetricEdges(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	bob := seedUser(t, db, "Bob", "222222222")

	request, err := repo.RequestFriendship(alice.ID, "Bob")
	require.NoError(t, err)
	require.NoError(t, repo.Respond(request.ID, true))

	var edges []models.Friendship
	require.NoError(t, db.Find(&edges).Error)
	require.Len(t, edges, 2)

	pairs := map[[2]uint]bool{}
	for _, e := range edges {
		pairs[[2]uint{e.UserID, e.FriendID}] = true
	}
	assert.True(t, pairs[[2]uint{alice.ID, bob.ID}])
	assert.True(t, pairs[[2]uint{bob.ID, alice.ID}])

	var updated models.FriendRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, models.RequestAccepted, updated.Status)

	// The original sender gets a generic notification.
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&notification).Error)
	assert.Equal(t, "Bob accepted your friend request!", notification.Message)
	assert.False(t, notification.IsRead)
}

func TestRejectIsTerminal(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	seedUser(t, db, "Bob", "222222222")

	request, err := repo.RequestFriendship(alice.ID, "Bob")
	require.NoError(t, err)
	require.NoError(t, repo.Respond(request.ID, false))

	// A second response must not transition a terminal request.
	require.NoError(t, repo.Respond(request.ID, true))

	var updated models.FriendRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, models.RequestRejected, updated.Status)

	var edges int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&edges).Error)
	assert.Zero(t, edges)
}

func TestRespondUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)

	assert.ErrorIs(t, repo.Respond(42, true), ErrNotFound)
}

func TestFriendsListing(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	alice := seedUser(t, db, "Alice", "111111111")
	bob := seedUser(t, db, "Bob", "222222222")
	carol := seedUser(t, db, "Carol", "333333333")
	befriend(t, db, alice.ID, bob.ID)
	befriend(t, db, alice.ID, carol.ID)

	friends, err := repo.Friends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)

	names := map[string]bool{}
	for _, f := range friends {
		names[f.Name] = true
	}
	assert.True(t, names["Bob"])
	assert.True(t, names["Carol"])

	ok, err := repo.AreFriends(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AreFriends(bob.ID, carol.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
