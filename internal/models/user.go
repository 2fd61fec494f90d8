package models

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record owned by the auth layer. Every other table
// references it with ON DELETE CASCADE.
type User struct {
	ID                  string  `json:"id" gorm:"primaryKey;size:36"`
	Name                string  `json:"name" gorm:"size:120;not null"`
	Email               string  `json:"email" gorm:"size:190;uniqueIndex;not null"`
	Image               string  `json:"image"`
	HasCustomDeployment bool    `json:"hasCustomDeployment" gorm:"not null;default:false"`
	PasswordHash        string  `json:"-"`
	FirebaseUID         *string `json:"-" gorm:"size:128;uniqueIndex"`
	CreatedAt           int64   `json:"createdAt" gorm:"autoCreateTime:milli"`
	UpdatedAt           int64   `json:"updatedAt" gorm:"autoUpdateTime:milli"`
}

// BeforeCreate assigns a UUID when the caller did not pick one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the display projection embedded in lists.
type UserCompact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
