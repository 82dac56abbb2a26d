package repositories

import "errors"

// Component-boundary error taxonomy. Repositories never let a raw driver
// error escape: everything is either one of these sentinels or an ErrStore
// wrapping the underlying failure.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyExists    = errors.New("already exists")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrAlreadyRequested = errors.New("friend request already pending")
	ErrAlreadyLiked     = errors.New("status already liked")
	ErrAlreadyMember    = errors.New("user is already a group member")
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrPermissionDenied = errors.New("permission denied")
	ErrFileTooLarge     = errors.New("file payload exceeds size limit")
	ErrStore            = errors.New("store error")
)
