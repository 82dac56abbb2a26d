package repositories

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultMaxFileBytes caps a file message payload before base64 encoding.
const DefaultMaxFileBytes = 10 << 20

// MessageRepository persists direct and group messages and exposes the
// ordered history and poll-latest read paths.
type MessageRepository interface {
	SendDirect(senderID, receiverID uint, content string) (*models.Message, error)
	SendFile(senderID, receiverID uint, data []byte, kind, fileName string) (*models.Message, error)
	SendGroupMessage(senderID, groupID uint, content string) (*models.Message, error)
	History(userA, userB uint) ([]models.Message, error)
	GroupHistory(groupID uint) ([]models.GroupMessage, error)
	PollLatest(userID, peerID uint) (*models.Message, error)
}

type gormMessageRepository struct {
	db           *gorm.DB
	maxFileBytes int
}

// NewMessageRepository creates a GORM-backed MessageRepository. maxFileBytes
// caps file payloads; pass 0 for the default.
func NewMessageRepository(db *gorm.DB, maxFileBytes int) MessageRepository {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	return &gormMessageRepository{db: db, maxFileBytes: maxFileBytes}
}

// SendDirect appends a text message and enqueues a message notification to
// the receiver, atomically.
func (r *gormMessageRepository) SendDirect(senderID, receiverID uint, content string) (*models.Message, error) {
	message := &models.Message{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		RecipientType: models.RecipientUser,
		Content:       content,
		MessageType:   models.MessageTypeText,
		Timestamp:     time.Now(),
	}
	err := writeTx(r.db, func(tx *gorm.DB) error {
		sender, err := senderName(tx, senderID)
		if err != nil {
			return err
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		notification := models.MessageNotification{
			UserID:    receiverID,
			Message:   fmt.Sprintf("%s sent you a message!", sender),
			CreatedAt: message.Timestamp,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// SendFile stores a binary payload as a {file_name, data} JSON envelope with
// the bytes base64-encoded, under the given message type.
func (r *gormMessageRepository) SendFile(senderID, receiverID uint, data []byte, kind, fileName string) (*models.Message, error) {
	if kind != models.MessageTypeImage && kind != models.MessageTypeDocument {
		return nil, fmt.Errorf("%w: unknown file message type %q", ErrInvalidInput, kind)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file payload", ErrInvalidInput)
	}
	if len(data) > r.maxFileBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), r.maxFileBytes)
	}

	envelope := models.FileEnvelope{
		FileName: fileName,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
	content, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	message := &models.Message{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		RecipientType: models.RecipientUser,
		Content:       string(content),
		MessageType:   kind,
		Timestamp:     time.Now(),
	}
	err = writeTx(r.db, func(tx *gorm.DB) error {
		sender, err := senderName(tx, senderID)
		if err != nil {
			return err
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		notification := models.MessageNotification{
			UserID:    receiverID,
			Message:   fmt.Sprintf("%s sent you a message!", sender),
			CreatedAt: message.Timestamp,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// SendGroupMessage appends a text message addressed to the group and fans a
// notification out to every member except the sender.
func (r *gormMessageRepository) SendGroupMessage(senderID, groupID uint, content string) (*models.Message, error) {
	message := &models.Message{
		SenderID:      senderID,
		ReceiverID:    groupID,
		RecipientType: models.RecipientGroup,
		Content:       content,
		MessageType:   models.MessageTypeText,
		Timestamp:     time.Now(),
	}
	err := writeTx(r.db, func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: group %d", ErrNotFound, groupID)
			}
			return err
		}
		sender, err := senderName(tx, senderID)
		if err != nil {
			return err
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}

		var members []models.GroupMember
		if err := tx.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
			return err
		}
		text := fmt.Sprintf("Group message from %s", sender)
		for _, member := range members {
			if member.MemberID == senderID {
				continue
			}
			notification := models.MessageNotification{
				UserID:    member.MemberID,
				Message:   text,
				CreatedAt: message.Timestamp,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// History returns every direct message between the pair, ascending by
// timestamp. This is the canonical 1:1 thread read path.
func (r *gormMessageRepository) History(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("recipient_type = ?", models.RecipientUser).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return messages, nil
}

// GroupHistory returns all messages addressed to the group joined with the
// sender display name, ascending by timestamp.
func (r *gormMessageRepository) GroupHistory(groupID uint) ([]models.GroupMessage, error) {
	var messages []models.GroupMessage
	err := r.db.Table("messages m").
		Select("m.sender_id, u.name AS sender_name, m.content, m.timestamp").
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.receiver_id = ? AND m.recipient_type = ?", groupID, models.RecipientGroup).
		Order("m.timestamp ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return messages, nil
}

// PollLatest returns the single most recent message between the pair, or
// nil when the conversation is empty.
func (r *gormMessageRepository) PollLatest(userID, peerID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("recipient_type = ?", models.RecipientUser).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("timestamp DESC, id DESC").
		Take(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &message, nil
}

func senderName(tx *gorm.DB, senderID uint) (string, error) {
	var sender models.User
	if err := tx.First(&sender, senderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user %d", ErrNotFound, senderID)
		}
		return "", err
	}
	return sender.Name, nil
}
