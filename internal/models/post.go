package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a feed post
type Post struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	UserID    string `json:"userId" gorm:"size:36;index;not null"`
	Content   string `json:"content" gorm:"type:text;not null"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli;index"`
	UpdatedAt int64  `json:"updatedAt" gorm:"autoUpdateTime:milli"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}

// PostView is a post joined to its author's display fields.
type PostView struct {
	ID        string `json:"id" gorm:"column:id"`
	Content   string `json:"content" gorm:"column:content"`
	CreatedAt int64  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt int64  `json:"updatedAt" gorm:"column:updated_at"`
	UserID    string `json:"userId" gorm:"column:user_id"`
	UserName  string `json:"userName" gorm:"column:user_name"`
	UserEmail string `json:"userEmail" gorm:"column:user_email"`
	UserImage string `json:"userImage" gorm:"column:user_image"`
}

// FeedPost is a PostView annotated with aggregate counts for the viewer.
type FeedPost struct {
	PostView
	LikeCount            int64 `json:"likeCount" gorm:"column:like_count"`
	CommentCount         int64 `json:"commentCount" gorm:"column:comment_count"`
	IsLikedByCurrentUser bool  `json:"isLikedByCurrentUser" gorm:"column:is_liked_by_current_user"`
}
