package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLike represents a like on a post. (post_id, user_id) is unique.
type PostLike struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	PostID    string `json:"postId" gorm:"size:36;not null;uniqueIndex:idx_post_user_like"`
	UserID    string `json:"userId" gorm:"size:36;not null;index;uniqueIndex:idx_post_user_like"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (l *PostLike) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
