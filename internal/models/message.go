package models

import "time"

// Message content kinds. Text lives directly in Content; image and document
// payloads are stored as a FileEnvelope JSON object.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeDocument = "document"
)

// Recipient tags. ReceiverID is a user id for direct messages and a group id
// for group messages; RecipientType is the discriminator between the two.
const (
	RecipientUser  = "user"
	RecipientGroup = "group"
)

// Message is immutable once written. Ordering within a conversation is by
// Timestamp only; two rows with an identical timestamp have no defined order.
type Message struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SenderID      uint      `json:"sender_id" gorm:"index"`
	ReceiverID    uint      `json:"receiver_id" gorm:"index"`
	RecipientType string    `json:"recipient_type" gorm:"type:varchar(10);index"`
	Content       string    `json:"content"`
	MessageType   string    `json:"message_type" gorm:"type:varchar(20);default:'text'"`
	Timestamp     time.Time `json:"timestamp" gorm:"index"`
}

// FileEnvelope is the JSON object stored in Message.Content for file
// messages: the original file name plus its base64-encoded bytes.
type FileEnvelope struct {
	FileName string `json:"file_name"`
	Data     string `json:"data"`
}

// GroupMessage is a group-history row joined with the sender's display name.
type GroupMessage struct {
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

type SendMessageRequest struct {
	SenderID   uint   `json:"sender_id" validate:"required"`
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type SendFileMessageRequest struct {
	SenderID   uint   `json:"sender_id" validate:"required"`
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=image document"`
	FileName   string `json:"file_name" validate:"required"`
	Data       string `json:"data" validate:"required,base64"`
}

type SendGroupMessageRequest struct {
	SenderID uint   `json:"sender_id" validate:"required"`
	Content  string `json:"content" validate:"required"`
}
