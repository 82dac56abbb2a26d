package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"gorm.io/gorm"
)

// GroupMemberEntry is a members listing row joined with the display name.
type GroupMemberEntry struct {
	MemberID uint   `json:"member_id"`
	Name     string `json:"name"`
}

// GroupCreator identifies a group's permanent admin.
type GroupCreator struct {
	CreatorID   uint   `json:"creator_id"`
	CreatorName string `json:"creator_name"`
}

// GroupRepository owns group creation, membership and creator authority.
type GroupRepository interface {
	CreateGroup(creatorID uint, name string, memberIDs []uint) (*models.Group, error)
	AddMember(groupID, requesterID, friendID uint) error
	GroupsForUser(userID uint) ([]models.Group, error)
	Members(groupID uint) ([]GroupMemberEntry, error)
	Creator(groupID uint) (*GroupCreator, error)
}

type gormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a GORM-backed GroupRepository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &gormGroupRepository{db: db}
}

// CreateGroup creates the group, attaches the given members and enqueues a
// message notification to every added member.
func (r *gormGroupRepository) CreateGroup(creatorID uint, name string, memberIDs []uint) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", ErrInvalidInput)
	}
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: a group needs at least one member", ErrInvalidInput)
	}

	group := &models.Group{GroupName: name, CreatedBy: creatorID}
	err := writeTx(r.db, func(tx *gorm.DB) error {
		var creator models.User
		if err := tx.First(&creator, creatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, creatorID)
			}
			return err
		}

		if err := tx.Create(group).Error; err != nil {
			return err
		}

		now := time.Now()
		message := fmt.Sprintf("%s added you in %s group!", creator.Name, name)
		for _, memberID := range memberIDs {
			member := models.GroupMember{GroupID: group.ID, MemberID: memberID}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			notification := models.MessageNotification{
				UserID:    memberID,
				Message:   message,
				CreatedAt: now,
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
	return group, nil
}

// AddMember attaches friendID to the group. Only the creator may do this;
// a duplicate membership maps to an ErrAlreadyMember no-op.
func (r *gormGroupRepository) AddMember(groupID, requesterID, friendID uint) error {
	return writeTx(r.db, func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: group %d", ErrNotFound, groupID)
			}
			return err
		}
		if group.CreatedBy != requesterID {
			return fmt.Errorf("%w: only the group creator can add members", ErrPermissionDenied)
		}

		member := models.GroupMember{GroupID: groupID, MemberID: friendID}
		if err := tx.Create(&member).Error; err != nil {
			if isDuplicate(err) {
				return ErrAlreadyMember
			}
			return err
		}
		return nil
	})
}

// GroupsForUser returns the de-duplicated union of groups the user created
// and groups they are a member of.
func (r *gormGroupRepository) GroupsForUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Table("groups g").
		Select("DISTINCT g.*").
		Joins("LEFT JOIN group_members gm ON g.id = gm.group_id").
		Where("g.created_by = ? OR gm.member_id = ?", userID, userID).
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return groups, nil
}

func (r *gormGroupRepository) Members(groupID uint) ([]GroupMemberEntry, error) {
	var members []GroupMemberEntry
	err := r.db.Table("group_members gm").
		Select("gm.member_id, u.name").
		Joins("JOIN users u ON u.id = gm.member_id").
		Where("gm.group_id = ?", groupID).
		Scan(&members).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return members, nil
}

func (r *gormGroupRepository) Creator(groupID uint) (*GroupCreator, error) {
	var creator GroupCreator
	err := r.db.Table("groups g").
		Select("g.created_by AS creator_id, u.name AS creator_name").
		Joins("JOIN users u ON g.created_by = u.id").
		Where("g.id = ?", groupID).
		Scan(&creator).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if creator.CreatorID == 0 {
		return nil, fmt.Errorf("%w: group %d", ErrNotFound, groupID)
	}
	return &creator, nil
}
