package dto

import (
	"encoding/base64"
	"time"

	"github.com/orgstock/inventory-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PhoneNumber  string    `json:"phone_number"`
	IsAdmin      bool      `json:"is_admin"`
	IsActive     bool      `json:"is_active"`
	RegisteredAt time.Time `json:"registered_at"`
	Avatar       string    `json:"avatar,omitempty"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	avatar := ""
	if len(user.Avatar) > 0 {
		avatar = base64.StdEncoding.EncodeToString(user.Avatar)
	}
	return UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		IsAdmin:      user.IsAdmin,
		IsActive:     user.IsActive,
		RegisteredAt: user.RegisteredAt,
		Avatar:       avatar,
	}
}

// ToUserDTOs converts a slice of users to DTOs
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
