package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"gorm.io/gorm"
)

// StatusRepository owns ephemeral status posts with like/view tracking and
// expiry-driven reaping.
type StatusRepository interface {
	Post(userID uint, content string) (*models.Status, error)
	VisibleStatuses(userID uint) ([]models.StatusFeedItem, error)
	Like(statusID, userID uint) error
	TrackView(statusID, userID uint) error
	Likers(statusID uint) ([]string, error)
	Viewers(statusID uint) ([]string, error)
	Delete(ownerID, statusID uint) error
	ReapExpired() (int64, error)
}

type gormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a GORM-backed StatusRepository.
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &gormStatusRepository{db: db}
}

// Post inserts a status that stays visible for 24 hours.
func (r *gormStatusRepository) Post(userID uint, content string) (*models.Status, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	now := time.Now()
	status := &models.Status{
		UserID:         userID,
		Content:        content,
		Timestamp:      now,
		ExpirationTime: now.Add(models.StatusTTL),
	}
	err := writeTx(r.db, func(tx *gorm.DB) error {
		return tx.Create(status).Error
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// VisibleStatuses returns unexpired statuses posted by the user or any of
// their friends, newest first. Expired rows are filtered here regardless of
// whether the reaper has removed them yet.
func (r *gormStatusRepository) VisibleStatuses(userID uint) ([]models.StatusFeedItem, error) {
	var items []models.StatusFeedItem
	err := r.db.Table("statuses s").
		Select("s.id AS status_id, s.user_id, u.name AS user_name, s.content, s.timestamp").
		Joins("JOIN users u ON s.user_id = u.id").
		Where("s.user_id = ? OR s.user_id IN (SELECT friend_id FROM friendships WHERE user_id = ?)",
			userID, userID).
		Where("s.expiration_time > ?", time.Now()).
		Order("s.timestamp DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return items, nil
}

// Like records a like, once. A second like by the same user returns
// ErrAlreadyLiked and writes nothing.
func (r *gormStatusRepository) Like(statusID, userID uint) error {
	return writeTx(r.db, func(tx *gorm.DB) error {
		if err := statusExists(tx, statusID); err != nil {
			return err
		}
		like := models.Like{StatusID: statusID, UserID: userID, CreatedAt: time.Now()}
		if err := tx.Create(&like).Error; err != nil {
			if isDuplicate(err) {
				return ErrAlreadyLiked
			}
			return err
		}
		return nil
	})
}

// TrackView records a view, once. Repeat views are silent no-ops.
func (r *gormStatusRepository) TrackView(statusID, userID uint) error {
	return writeTx(r.db, func(tx *gorm.DB) error {
		if err := statusExists(tx, statusID); err != nil {
			return err
		}
		view := models.View{StatusID: statusID, UserID: userID}
		if err := tx.Create(&view).Error; err != nil {
			if isDuplicate(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (r *gormStatusRepository) Likers(statusID uint) ([]string, error) {
	return r.reactionNames(statusID, "likes")
}

func (r *gormStatusRepository) Viewers(statusID uint) ([]string, error) {
	return r.reactionNames(statusID, "views")
}

func (r *gormStatusRepository) reactionNames(statusID uint, table string) ([]string, error) {
	var names []string
	err := r.db.Table(table+" t").
		Select("u.name").
		Joins("JOIN users u ON t.user_id = u.id").
		Where("t.status_id = ?", statusID).
		Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return names, nil
}

// Delete removes the status only when ownerID matches. Deleting someone
// else's status affects zero rows and reports no error.
func (r *gormStatusRepository) Delete(ownerID, statusID uint) error {
	return writeTx(r.db, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", statusID, ownerID).
			Delete(&models.Status{}).Error; err != nil {
			return err
		}
		return nil
	})
}

// ReapExpired deletes every status past its expiration time and returns how
// many rows went. Reads already filter expired rows; this is storage
// reclamation only.
func (r *gormStatusRepository) ReapExpired() (int64, error) {
	var reaped int64
	err := writeTx(r.db, func(tx *gorm.DB) error {
		res := tx.Where("expiration_time <= ?", time.Now()).Delete(&models.Status{})
		if res.Error != nil {
			return res.Error
		}
		reaped = res.RowsAffected
		return nil
	})
	return reaped, err
}

func statusExists(tx *gorm.DB, statusID uint) error {
	var status models.Status
	if err := tx.First(&status, statusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: status %d", ErrNotFound, statusID)
		}
		return err
	}
	return nil
}
