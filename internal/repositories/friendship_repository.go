package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"gorm.io/gorm"
)

// PendingRequest is a pending-requests row joined with the sender's name.
type PendingRequest struct {
	RequestID  uint   `json:"request_id"`
	SenderID   uint   `json:"sender_id"`
	SenderName string `json:"sender_name"`
}

// FriendshipRepository owns the friend-request workflow and the symmetric
// friendship graph.
type FriendshipRepository interface {
	RequestFriendship(senderID uint, friendName string) (*models.FriendRequest, error)
	PendingRequests(userID uint) ([]PendingRequest, error)
	Respond(requestID uint, accept bool) error
	Friends(userID uint) ([]models.User, error)
	AreFriends(userID, otherID uint) (bool, error)
}

type gormFriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a GORM-backed FriendshipRepository.
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &gormFriendshipRepository{db: db}
}

// RequestFriendship resolves friendName to a user and inserts a pending
// request. An existing friendship yields ErrAlreadyFriends and a pending
// request between the pair in either direction yields ErrAlreadyRequested;
// both are no-ops with no row written.
func (r *gormFriendshipRepository) RequestFriendship(senderID uint, friendName string) (*models.FriendRequest, error) {
	friendName = strings.TrimSpace(friendName)

	var request *models.FriendRequest
	err := writeTx(r.db, func(tx *gorm.DB) error {
		var receiver models.User
		if err := tx.Where("LOWER(name) = LOWER(?)", friendName).First(&receiver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no user named %q", ErrNotFound, friendName)
			}
			return err
		}

		var edges int64
		if err := tx.Model(&models.Friendship{}).
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				senderID, receiver.ID, receiver.ID, senderID).
			Count(&edges).Error; err != nil {
			return err
		}
		if edges > 0 {
			return ErrAlreadyFriends
		}

		// A pending request in either direction blocks a new one; two
		// crossed requests would otherwise race to create the same edges.
		var pending int64
		if err := tx.Model(&models.FriendRequest{}).
			Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
				senderID, receiver.ID, receiver.ID, senderID, models.RequestPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrAlreadyRequested
		}

		request = &models.FriendRequest{
			SenderID:   senderID,
			ReceiverID: receiver.ID,
			Status:     models.RequestPending,
		}
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// PendingRequests returns all pending requests addressed to userID.
func (r *gormFriendshipRepository) PendingRequests(userID uint) ([]PendingRequest, error) {
	var requests []PendingRequest
	err := r.db.Table("friend_requests fr").
		Select("fr.id AS request_id, u.id AS sender_id, u.name AS sender_name").
		Joins("JOIN users u ON u.id = fr.sender_id").
		Where("fr.receiver_id = ? AND fr.status = ?", userID, models.RequestPending).
		Scan(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return requests, nil
}

// Respond moves a pending request to its terminal state. Acceptance inserts
// both friendship edges and the sender's notification in the same
// transaction. A request already in a terminal state is left untouched.
func (r *gormFriendshipRepository) Respond(requestID uint, accept bool) error {
	return writeTx(r.db, func(tx *gorm.DB) error {
		var request models.FriendRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: friend request %d", ErrNotFound, requestID)
			}
			return err
		}
		if request.Status != models.RequestPending {
			return nil
		}

		if !accept {
			return tx.Model(&request).Update("status", models.RequestRejected).Error
		}

		if err := tx.Model(&request).Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}
		// Crossed requests may have linked the pair already; accepting the
		// second one must still terminate it without duplicating the edges.
		var linked int64
		if err := tx.Model(&models.Friendship{}).
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				request.SenderID, request.ReceiverID, request.ReceiverID, request.SenderID).
			Count(&linked).Error; err != nil {
			return err
		}
		now := time.Now()
		if linked == 0 {
			edges := []models.Friendship{
				{UserID: request.ReceiverID, FriendID: request.SenderID, CreatedAt: now},
				{UserID: request.SenderID, FriendID: request.ReceiverID, CreatedAt: now},
			}
			if err := tx.Create(&edges).Error; err != nil {
				return err
			}
		}

		var receiver models.User
		if err := tx.First(&receiver, request.ReceiverID).Error; err != nil {
			return err
		}
		notification := models.Notification{
			UserID:    request.SenderID,
			Message:   fmt.Sprintf("%s accepted your friend request!", receiver.Name),
			CreatedAt: now,
		}
		return tx.Create(&notification).Error
	})
}

// Friends returns the users linked to userID via the friendship edges.
func (r *gormFriendshipRepository) Friends(userID uint) ([]models.User, error) {
	var friends []models.User
	err := r.db.Table("users u").
		Select("u.*").
		Joins("JOIN friendships f ON u.id = f.friend_id").
		Where("f.user_id = ?", userID).
		Scan(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return friends, nil
}

func (r *gormFriendshipRepository) AreFriends(userID, otherID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, otherID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return count > 0, nil
}
