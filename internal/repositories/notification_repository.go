package repositories

import (
	"fmt"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationCategory selects one of the two per-user unread queues.
type NotificationCategory string

const (
	CategoryGeneric NotificationCategory = "generic"
	CategoryMessage NotificationCategory = "message"
)

// NotificationEntry is a single unread-queue row.
type NotificationEntry struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRepository owns the two independent per-user unread queues.
type NotificationRepository interface {
	Enqueue(userID uint, category NotificationCategory, message string) error
	Unread(userID uint, category NotificationCategory) ([]NotificationEntry, error)
	MarkAllRead(userID uint, category NotificationCategory) error
}

type gormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a GORM-backed NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) Enqueue(userID uint, category NotificationCategory, message string) error {
	now := time.Now()
	return writeTx(r.db, func(tx *gorm.DB) error {
		switch category {
		case CategoryMessage:
			return tx.Create(&models.MessageNotification{
				UserID: userID, Message: message, CreatedAt: now,
			}).Error
		case CategoryGeneric:
			return tx.Create(&models.Notification{
				UserID: userID, Message: message, CreatedAt: now,
			}).Error
		default:
			return fmt.Errorf("%w: unknown notification category %q", ErrInvalidInput, category)
		}
	})
}

// Unread returns unread rows for the category, newest first.
func (r *gormNotificationRepository) Unread(userID uint, category NotificationCategory) ([]NotificationEntry, error) {
	model, err := categoryModel(category)
	if err != nil {
		return nil, err
	}
	var entries []NotificationEntry
	err = r.db.Model(model).
		Select("id, message, created_at").
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return entries, nil
}

// MarkAllRead flips is_read for every unread row of the category.
func (r *gormNotificationRepository) MarkAllRead(userID uint, category NotificationCategory) error {
	model, err := categoryModel(category)
	if err != nil {
		return err
	}
	return writeTx(r.db, func(tx *gorm.DB) error {
		return tx.Model(model).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true).Error
	})
}

func categoryModel(category NotificationCategory) (interface{}, error) {
	switch category {
	case CategoryMessage:
		return &models.MessageNotification{}, nil
	case CategoryGeneric:
		return &models.Notification{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown notification category %q", ErrInvalidInput, category)
	}
}
