package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentLike represents a like on a comment
type CommentLike struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CommentID string `json:"commentId" gorm:"size:36;not null;uniqueIndex:idx_comment_user_like"`
	UserID    string `json:"userId" gorm:"size:36;not null;index;uniqueIndex:idx_comment_user_like"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli"`

	Comment *Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	User    *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (l *CommentLike) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
