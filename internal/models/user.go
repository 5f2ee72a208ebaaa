package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the authorization level of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a tenant account. The role is fixed at creation.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Username    string     `json:"username" gorm:"not null"`
	Password    string     `json:"-"` // bcrypt hash
	Profession  string     `json:"profession,omitempty"`
	Role        Role       `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	FirebaseUID *string    `json:"-" gorm:"uniqueIndex"` // nil for local accounts
	Documents   []Document `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest carries a Firebase ID token to exchange for a local token
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateUserRequest only touches the fields a tenant may edit. Nil means unchanged.
type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Profession *string `json:"profession,omitempty" validate:"omitempty,max=100"`
}

// AuthResponse is returned by every successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
