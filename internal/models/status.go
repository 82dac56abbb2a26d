package models

import "time"

// StatusTTL is how long a status stays visible after posting.
const StatusTTL = 24 * time.Hour

// Status is an ephemeral post visible to the poster and their friends while
// now < ExpirationTime. Reads filter expired rows; the background reaper
// deletes them.
type Status struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp" gorm:"index"`
	ExpirationTime time.Time `json:"expiration_time" gorm:"index"`
}

// Like records a user liking a status, at most once per (status, user).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StatusID  uint      `json:"status_id" gorm:"index;uniqueIndex:idx_status_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_status_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// View records a user viewing a status, at most once per (status, user).
type View struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	StatusID uint `json:"status_id" gorm:"index;uniqueIndex:idx_status_user_view"`
	UserID   uint `json:"user_id" gorm:"index;uniqueIndex:idx_status_user_view"`
}

// StatusFeedItem is a visible-statuses row joined with the poster's name.
type StatusFeedItem struct {
	StatusID  uint      `json:"status_id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type PostStatusRequest struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type StatusReactionRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}
