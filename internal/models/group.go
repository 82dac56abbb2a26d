package models

import "gorm.io/gorm"

// Group is a named chat group. The creator is the implicit, permanent admin.
type Group struct {
	gorm.Model
	GroupName string `json:"group_name"`
	CreatedBy uint   `json:"created_by" gorm:"index"`
}

// GroupMember attaches a user to a group. The composite unique index rejects
// duplicate membership rows at the schema level.
type GroupMember struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	GroupID  uint `json:"group_id" gorm:"index;uniqueIndex:idx_group_member"`
	MemberID uint `json:"member_id" gorm:"index;uniqueIndex:idx_group_member"`
}

type CreateGroupRequest struct {
	CreatorID uint   `json:"creator_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=50"`
	MemberIDs []uint `json:"member_ids" validate:"required,min=1"`
}

type AddMemberRequest struct {
	RequesterID uint `json:"requester_id" validate:"required"`
	FriendID    uint `json:"friend_id" validate:"required"`
}
