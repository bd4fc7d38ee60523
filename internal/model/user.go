package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	DisplayName  string    `json:"displayName" bson:"displayName"`
	PhotoURL     string    `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Interests    []string  `json:"interests,omitempty" bson:"interests,omitempty"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserClaims are JWT claims for authenticated users
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account creation
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login or registration
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	DisplayName string   `json:"displayName"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
	PhotoURL    string   `json:"photoUrl"`
}
