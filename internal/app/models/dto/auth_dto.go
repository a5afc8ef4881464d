package dto

import (
	"github.com/edupoint/sis-backend/internal/app/models"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@campus.edu"`
	Password string `json:"password" binding:"required" example:"changeme123"`
}

// RefreshTokenRequest represents a token refresh attempt
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn"`
	RefreshExpiresIn int          `json:"refreshExpiresIn"`
	User             UserResponse `json:"user"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// FromUser converts a user model to its response DTO
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
		IsActive:     user.IsActive,
	}
}
