package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	PostID    string `json:"postId" gorm:"size:36;index;not null"`
	UserID    string `json:"userId" gorm:"size:36;index;not null"`
	Content   string `json:"content" gorm:"type:text;not null"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `json:"updatedAt" gorm:"autoUpdateTime:milli"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CommentRequest is the body for creating or editing a comment
type CommentRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}

// CommentView is a comment joined to its author's display fields.
type CommentView struct {
	ID        string `json:"id" gorm:"column:id"`
	PostID    string `json:"postId" gorm:"column:post_id"`
	Content   string `json:"content" gorm:"column:content"`
	CreatedAt int64  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt int64  `json:"updatedAt" gorm:"column:updated_at"`
	UserID    string `json:"userId" gorm:"column:user_id"`
	UserName  string `json:"userName" gorm:"column:user_name"`
	UserEmail string `json:"userEmail" gorm:"column:user_email"`
	UserImage string `json:"userImage" gorm:"column:user_image"`
	LikeCount int64  `json:"likeCount" gorm:"column:like_count"`
}
