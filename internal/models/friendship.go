package models

import (
	"time"

	"gorm.io/gorm"
)

// Friend request lifecycle: pending is the only non-terminal state.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FriendRequest is a directional proposal to establish a friendship
type FriendRequest struct {
	gorm.Model
	SenderID   uint   `json:"sender_id" gorm:"index"`
	ReceiverID uint   `json:"receiver_id" gorm:"index"`
	Status     string `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

// Friendship is one direction of a symmetric edge. Edges are always created
// in pairs: if (a,b) exists then (b,a) exists.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_friend"`
	FriendID  uint      `json:"friend_id" gorm:"index;uniqueIndex:idx_user_friend"`
	CreatedAt time.Time `json:"created_at"`
}

// SendFriendRequestRequest resolves the receiver by display name, the way
// the desktop client asks for friends.
type SendFriendRequestRequest struct {
	FriendName string `json:"friend_name" validate:"required"`
}

// RespondFriendRequestRequest accepts or rejects a pending request.
type RespondFriendRequestRequest struct {
	ResponderID uint  `json:"responder_id" validate:"required"`
	Accept      *bool `json:"accept" validate:"required"`
}
