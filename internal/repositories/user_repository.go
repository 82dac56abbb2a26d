package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ntalk/chatterline/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for identity operations. Name+phone
// identify a user; this is identification, not authentication.
type UserRepository interface {
	Signup(name, phoneNumber string) (*models.User, error)
	Login(name, phoneNumber string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	UpdateProfile(id uint, name, phoneNumber string) error
	GetAvatarPath(id uint) (string, error)
	UpdateAvatarPath(id uint, imagePath string) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Signup validates and inserts a new user. Name and phone number must both
// be unique across all users.
func (r *gormUserRepository) Signup(name, phoneNumber string) (*models.User, error) {
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if name == "" || phoneNumber == "" {
		return nil, fmt.Errorf("%w: name or phone number cannot be empty", ErrInvalidInput)
	}
	if len(phoneNumber) < 9 {
		return nil, fmt.Errorf("%w: phone number must be at least 9 digits", ErrInvalidInput)
	}

	user := &models.User{Name: name, PhoneNumber: phoneNumber}
	err := writeTx(r.db, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("name = ? OR phone_number = ?", name, phoneNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: user with this name or phone number", ErrAlreadyExists)
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns the user matching both name and phone number exactly.
func (r *gormUserRepository) Login(name, phoneNumber string) (*models.User, error) {
	var user models.User
	err := r.db.Where("name = ? AND phone_number = ?", name, phoneNumber).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &user, nil
}

// GetUserByName resolves a display name with whitespace trimmed and case
// folded, matching how the client asks for friends by name.
func (r *gormUserRepository) GetUserByName(name string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &user, nil
}

func (r *gormUserRepository) UpdateProfile(id uint, name, phoneNumber string) error {
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if name == "" || phoneNumber == "" {
		return fmt.Errorf("%w: name or phone number cannot be empty", ErrInvalidInput)
	}
	return writeTx(r.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": name, "phone_number": phoneNumber})
		if res.Error != nil {
			if isDuplicate(res.Error) {
				return fmt.Errorf("%w: user with this name or phone number", ErrAlreadyExists)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetAvatarPath returns the stored profile picture path, or the default
// placeholder when the user never set one.
func (r *gormUserRepository) GetAvatarPath(id uint) (string, error) {
	user, err := r.GetUserByID(id)
	if err != nil {
		return "", err
	}
	if user.ImagePath == "" {
		return models.DefaultAvatarPath, nil
	}
	return user.ImagePath, nil
}

func (r *gormUserRepository) UpdateAvatarPath(id uint, imagePath string) error {
	return writeTx(r.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Update("image_path", imagePath)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
