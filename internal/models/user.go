package models

import "gorm.io/gorm"

// DefaultAvatarPath is returned when a user never set a profile picture.
const DefaultAvatarPath = "assets/logo.jpg"

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex"`
	PhoneNumber string `json:"phone_number" gorm:"uniqueIndex"`
	ImagePath   string `json:"image_path,omitempty"`
}

type SignupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,min=9,max=20"`
}

type LoginRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,min=9,max=20"`
}

type UpdateAvatarRequest struct {
	ImagePath string `json:"image_path" validate:"required"`
}
