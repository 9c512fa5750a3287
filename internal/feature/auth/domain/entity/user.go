// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user in the system.
type User struct {
	// ID is an opaque identifier assigned at creation.
	ID string `gorm:"primaryKey;size:255" json:"id"`

	// Email is the login key. It is unique and matched exactly as stored.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash. Nil for accounts without local-password login.
	// It is never serialized.
	Password *string `gorm:"size:255" json:"-"`

	FirstName       *string `gorm:"size:255" json:"firstName"`
	LastName        *string `gorm:"size:255" json:"lastName"`
	ProfileImageURL *string `gorm:"size:1024" json:"profileImageUrl"`

	Role            Role `gorm:"size:20;not null;default:user" json:"role"`
	IsEmailVerified bool `gorm:"not null;default:false" json:"isEmailVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can log in with a local password.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
