package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the optional LinkedIn-style attributes of a user. It is
// created lazily on the first update.
type Profile struct {
	ID        string  `json:"id" gorm:"primaryKey;size:36"`
	UserID    string  `json:"userId" gorm:"size:36;uniqueIndex;not null"`
	Headline  *string `json:"headline"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	CreatedAt int64   `json:"createdAt" gorm:"autoCreateTime:milli"`
	UpdatedAt int64   `json:"updatedAt" gorm:"autoUpdateTime:milli"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// UpdateProfileRequest is the PATCH body. Empty fields keep the stored value.
type UpdateProfileRequest struct {
	Headline string `json:"headline"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

// ProfileView is the left join of a user and its (possibly missing) profile.
type ProfileView struct {
	ID        *string `json:"id" gorm:"column:id"`
	UserID    string  `json:"userId" gorm:"column:user_id"`
	Headline  *string `json:"headline" gorm:"column:headline"`
	Bio       *string `json:"bio" gorm:"column:bio"`
	Location  *string `json:"location" gorm:"column:location"`
	Website   *string `json:"website" gorm:"column:website"`
	CreatedAt *int64  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt *int64  `json:"updatedAt" gorm:"column:updated_at"`
	UserName  string  `json:"userName" gorm:"column:user_name"`
	UserEmail string  `json:"userEmail" gorm:"column:user_email"`
	UserImage string  `json:"userImage" gorm:"column:user_image"`
}
