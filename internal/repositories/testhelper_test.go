package repositories

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Group{},
		&models.GroupMember{},
		&models.Message{},
		&models.Status{},
		&models.Like{},
		&models.View{},
		&models.Notification{},
		&models.MessageNotification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, phone string) *models.User {
	t.Helper()
	user := &models.User{Name: name, PhoneNumber: phone}
	require.NoError(t, db.Create(user).Error)
	return user
}

// befriend inserts both edges of a friendship directly.
func befriend(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	require.NoError(t, db.Create(&[]models.Friendship{
		{UserID: a, FriendID: b},
		{UserID: b, FriendID: a},
	}).Error)
}
