package dto

import (
	"time"

	"wastemap_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public form of a user. It never carries the password hash.
type UserRes struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	FirstName       *string     `json:"firstName"`
	LastName        *string     `json:"lastName"`
	ProfileImageURL *string     `json:"profileImageUrl"`
	Role            entity.Role `json:"role"`
	IsEmailVerified bool        `json:"isEmailVerified"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}

// FromUser maps an entity to its public form.
func FromUser(u *entity.User) UserRes {
	return UserRes{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
